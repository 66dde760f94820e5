// Package frontend executes the tiered build strategy for the frontend bundle.
package frontend

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Strategy selects and executes one of the four frontend build tiers.
// Vendor bundles are refreshed by the orchestrator before Build runs, so the
// full-rebuild tier can assume fresh pre-bundles are already in place.
type Strategy struct {
	hasher    ports.TreeHasher
	runner    ports.Runner
	ws        ports.Workspace
	logger    ports.Logger
	telemetry ports.Telemetry
}

// NewStrategy creates a new Strategy.
func NewStrategy(
	hasher ports.TreeHasher,
	runner ports.Runner,
	ws ports.Workspace,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Strategy {
	return &Strategy{
		hasher:    hasher,
		runner:    runner,
		ws:        ws,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Build runs the frontend unit through the tier state machine. force bypasses
// the hash check and forces the full-rebuild tier; depsRebuilt only bypasses
// the hash check, so a rebuilt upstream package triggers an incremental build
// rather than a full one. The manifest entry and backup copy are refreshed
// after any real build, and the manifest lockfile hash is advanced so the
// next run sees the dependency state this build was produced against. The
// caller persists the manifest.
func (s *Strategy) Build(
	ctx context.Context,
	project *domain.Project,
	manifest *domain.Manifest,
	lockfileHash string,
	force bool,
	depsRebuilt bool,
	heapBudgetMB int,
) (domain.UnitResult, error) {
	unit := project.Frontend
	layout := project.Layout.Resolve(project.Root)
	start := time.Now()

	digest, err := s.hasher.HashUnit(project, unit)
	if err != nil {
		return failed(unit.Name, start, err), err
	}

	entry := manifest.Entry(unit.Name)
	distDir := filepath.Join(project.Root, unit.OutputDir)

	in := domain.TierInputs{
		HashMatches:     !force && !depsRebuilt && entry != nil && entry.Hash == digest.Hash,
		DistExists:      s.ws.Exists(distDir),
		BackupExists:    s.ws.Exists(layout.DistBackupDir()),
		LockfileChanged: force || manifest.LockfileHash != lockfileHash,
	}
	tier := domain.DecideTier(in)

	ctx, vtx := s.telemetry.Record(ctx, fmt.Sprintf("frontend [%s]", tier))

	switch tier {
	case domain.TierInstantSkip:
		vtx.Cached()
		return domain.UnitResult{
			Name:     unit.Name,
			Status:   domain.StatusCached,
			Tier:     tier,
			Hash:     digest.Hash,
			Duration: time.Since(start),
		}, nil

	case domain.TierRestore:
		if err := s.ws.CopyDir(layout.DistBackupDir(), distDir); err != nil {
			err = zerr.Wrap(err, "failed to restore frontend output from backup")
			vtx.Complete(err)
			return failed(unit.Name, start, err), err
		}
		vtx.Complete(nil)
		s.logger.Info("frontend output restored from backup, no build needed")
		return domain.UnitResult{
			Name:     unit.Name,
			Status:   domain.StatusRestored,
			Tier:     tier,
			Hash:     digest.Hash,
			Duration: time.Since(start),
		}, nil

	case domain.TierIncremental, domain.TierFullRebuild:
	}

	result, err := s.runBuild(ctx, project, unit, layout, vtx, heapBudgetMB, start, digest, tier)
	if err != nil {
		return result, err
	}

	manifest.Record(unit.Name, digest.Hash, digest.FileCount, result.Duration)
	manifest.LockfileHash = lockfileHash
	return result, nil
}

// runBuild is the shared Tier 2/3 path: restore the transform-intermediate
// cache, invoke the external build command, save the transform cache again
// and refresh the backup copy.
func (s *Strategy) runBuild(
	ctx context.Context,
	project *domain.Project,
	unit *domain.Unit,
	layout domain.Layout,
	vtx ports.Vertex,
	heapBudgetMB int,
	start time.Time,
	digest ports.TreeDigest,
	tier domain.Tier,
) (domain.UnitResult, error) {
	transformDir := ""
	if project.TransformCacheDir != "" {
		transformDir = filepath.Join(project.Root, project.TransformCacheDir)
		if s.ws.Exists(layout.TransformBackupDir()) {
			if err := s.ws.CopyDir(layout.TransformBackupDir(), transformDir); err != nil {
				s.logger.Warn(fmt.Sprintf("could not restore transform cache: %v", err))
			}
		}
	}

	env := []string{fmt.Sprintf("NODE_OPTIONS=--max-old-space-size=%d", heapBudgetMB)}
	if err := s.runner.Run(ctx, filepath.Join(project.Root, unit.Dir), unit.Command, env, vtx.Stdout(), vtx.Stderr()); err != nil {
		vtx.Complete(err)
		return failed(unit.Name, start, err), zerr.Wrap(err, "frontend build failed")
	}

	if transformDir != "" && s.ws.Exists(transformDir) {
		if err := s.ws.CopyDir(transformDir, layout.TransformBackupDir()); err != nil {
			s.logger.Warn(fmt.Sprintf("could not save transform cache: %v", err))
		}
	}

	// The backup refresh is unconditional so the restore tier stays
	// available even if the source later reverts to this exact state.
	distDir := filepath.Join(project.Root, unit.OutputDir)
	if err := s.ws.CopyDir(distDir, layout.DistBackupDir()); err != nil {
		err = zerr.Wrap(err, "failed to refresh frontend backup")
		vtx.Complete(err)
		return failed(unit.Name, start, err), err
	}

	vtx.Complete(nil)
	return domain.UnitResult{
		Name:     unit.Name,
		Status:   domain.StatusBuilt,
		Tier:     tier,
		Hash:     digest.Hash,
		Duration: time.Since(start),
	}, nil
}

func failed(name string, start time.Time, err error) domain.UnitResult {
	return domain.UnitResult{
		Name:     name,
		Status:   domain.StatusFailed,
		Duration: time.Since(start),
		Err:      err,
	}
}

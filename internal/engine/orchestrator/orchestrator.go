// Package orchestrator runs the full build pipeline: packages, API, vendor
// bundles, the tiered frontend build and post-build compression, all under a
// single filesystem lock.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/frontend"
	"go.trai.ch/forge/internal/engine/vendor"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	// lockTimeout bounds how long a run waits for a concurrent build to finish.
	lockTimeout = 10 * time.Minute

	// fallbackAvailableMB is assumed when the memory probe is unavailable.
	fallbackAvailableMB = 8192

	// compressMinSize is the smallest artifact worth gzipping.
	compressMinSize = 1024
)

// compressExtensions are the artifact types compressed after a frontend build.
var compressExtensions = []string{".js", ".css", ".html", ".svg", ".json"}

// Options control one orchestrator run.
type Options struct {
	// Force bypasses every cache check and rebuilds all units.
	Force bool

	// Turbo skips the post-build compression phase.
	Turbo bool

	// Only restricts the run to a single phase. Empty means all phases.
	Only domain.Phase
}

func (o Options) runs(phase domain.Phase) bool {
	return o.Only == "" || o.Only == phase
}

// Orchestrator coordinates the build phases.
type Orchestrator struct {
	hasher    ports.TreeHasher
	store     ports.ManifestStore
	runner    ports.Runner
	locker    ports.Locker
	probe     ports.MemoryProbe
	ws        ports.Workspace
	bundler   *vendor.Bundler
	frontend  *frontend.Strategy
	logger    ports.Logger
	telemetry ports.Telemetry

	// mu serializes manifest mutation during concurrent package builds.
	mu sync.Mutex
}

// New creates a new Orchestrator.
func New(
	hasher ports.TreeHasher,
	store ports.ManifestStore,
	runner ports.Runner,
	locker ports.Locker,
	probe ports.MemoryProbe,
	ws ports.Workspace,
	bundler *vendor.Bundler,
	frontendStrategy *frontend.Strategy,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Orchestrator {
	return &Orchestrator{
		hasher:    hasher,
		store:     store,
		runner:    runner,
		locker:    locker,
		probe:     probe,
		ws:        ws,
		bundler:   bundler,
		frontend:  frontendStrategy,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Run executes the configured phases in order and returns a summary of what
// each unit did. The manifest is persisted after every successful unit and
// once more at the end, so an interrupted run never loses completed work.
func (o *Orchestrator) Run(ctx context.Context, project *domain.Project, opts Options) (*domain.Summary, error) {
	start := time.Now()
	layout := project.Layout.Resolve(project.Root)

	if err := o.locker.Acquire(ctx, layout.LockPath, lockTimeout); err != nil {
		return nil, err
	}
	defer func() {
		if err := o.locker.Release(layout.LockPath); err != nil {
			o.logger.Warn(fmt.Sprintf("failed to release build lock: %v", err))
		}
	}()

	manifest := o.store.Load(layout.ManifestPath())
	lockfileHash := o.lockfileHash(project)

	summary := &domain.Summary{}
	finish := func(err error) (*domain.Summary, error) {
		if saveErr := o.store.Save(layout.ManifestPath(), manifest); saveErr != nil && err == nil {
			err = saveErr
		}
		summary.Duration = time.Since(start)
		return summary, err
	}

	// rebuilt names the packages that actually built this run, so dependent
	// units cascade even when their own sources are unchanged.
	rebuilt := map[string]bool{}

	if opts.runs(domain.PhasePackages) {
		results, built, err := o.buildPackages(ctx, project, manifest, layout, opts)
		summary.Units = append(summary.Units, results...)
		rebuilt = built
		if err != nil {
			return finish(err)
		}
	}

	if opts.runs(domain.PhaseAPI) && project.API != nil {
		budget, err := o.preflight(domain.PhaseAPI)
		if err != nil {
			return finish(err)
		}
		force := opts.Force || dependsOnRebuilt(project.API, rebuilt)
		res, _, err := o.buildUnit(ctx, project, manifest, layout, project.API, budget, force)
		summary.Units = append(summary.Units, res)
		if err != nil {
			return finish(errors.Join(domain.ErrBuildExecutionFailed, err))
		}
	}

	if opts.runs(domain.PhaseFrontend) && project.Frontend != nil {
		refreshed, err := o.bundler.Ensure(ctx, project, lockfileHash, opts.Force)
		if err != nil {
			return finish(err)
		}
		summary.VendorRefreshed = refreshed

		budget, err := o.preflight(domain.PhaseFrontend)
		if err != nil {
			return finish(err)
		}

		depsRebuilt := dependsOnRebuilt(project.Frontend, rebuilt)
		res, err := o.frontend.Build(ctx, project, manifest, lockfileHash, opts.Force, depsRebuilt, budget)
		summary.Units = append(summary.Units, res)
		if err != nil {
			return finish(errors.Join(domain.ErrBuildExecutionFailed, err))
		}

		if !opts.Turbo && res.Status != domain.StatusCached {
			o.compress(ctx, project, summary)
		}
	}

	return finish(nil)
}

// buildPackages builds the workspace packages level by level. Units inside a
// level share no dependencies and run concurrently; a failure stops the next
// level from starting but lets the current level's siblings finish.
func (o *Orchestrator) buildPackages(
	ctx context.Context,
	project *domain.Project,
	manifest *domain.Manifest,
	layout domain.Layout,
	opts Options,
) ([]domain.UnitResult, map[string]bool, error) {
	rebuilt := make(map[string]bool)
	if len(project.Packages) == 0 {
		return nil, rebuilt, nil
	}

	graph := domain.NewGraph()
	for i := range project.Packages {
		if err := graph.AddUnit(&project.Packages[i]); err != nil {
			return nil, rebuilt, err
		}
	}
	if err := graph.Validate(); err != nil {
		return nil, rebuilt, err
	}

	budget, err := o.preflight(domain.PhasePackages)
	if err != nil {
		return nil, rebuilt, err
	}

	var (
		mu      sync.Mutex
		results []domain.UnitResult
	)

	for _, level := range graph.Levels() {
		var eg errgroup.Group
		for _, name := range level {
			unit, ok := graph.Unit(name)
			if !ok {
				return results, rebuilt, zerr.With(domain.ErrUnitNotFound, "unit", name)
			}

			eg.Go(func() error {
				mu.Lock()
				force := opts.Force || dependsOnRebuilt(&unit, rebuilt)
				mu.Unlock()

				res, built, err := o.buildUnit(ctx, project, manifest, layout, &unit, budget, force)

				mu.Lock()
				results = append(results, res)
				if built {
					rebuilt[unit.Name] = true
				}
				mu.Unlock()
				return err
			})
		}
		if err := eg.Wait(); err != nil {
			return results, rebuilt, errors.Join(domain.ErrBuildExecutionFailed, err)
		}
	}

	return results, rebuilt, nil
}

// dependsOnRebuilt reports whether any of the unit's declared dependencies
// actually built this run.
func dependsOnRebuilt(unit *domain.Unit, rebuilt map[string]bool) bool {
	for _, dep := range unit.Dependencies {
		if rebuilt[dep] {
			return true
		}
	}
	return false
}

// buildUnit checks one unit against the manifest and runs its build command
// if needed. It reports whether a real build happened so dependents can
// cascade.
func (o *Orchestrator) buildUnit(
	ctx context.Context,
	project *domain.Project,
	manifest *domain.Manifest,
	layout domain.Layout,
	unit *domain.Unit,
	heapBudgetMB int,
	force bool,
) (domain.UnitResult, bool, error) {
	start := time.Now()

	dir := filepath.Join(project.Root, unit.Dir)
	if !o.ws.Exists(dir) {
		err := zerr.With(domain.ErrUnitDirMissing, "unit", unit.Name)
		return failedResult(unit.Name, start, err), false, err
	}

	digest, err := o.hasher.HashUnit(project, unit)
	if err != nil {
		return failedResult(unit.Name, start, err), false, err
	}

	outputExists := true
	if unit.OutputDir != "" {
		outputExists = o.ws.Exists(filepath.Join(project.Root, unit.OutputDir))
	}

	ctx, vtx := o.telemetry.Record(ctx, unit.Name)

	if !domain.NeedsRebuild(manifest.Entry(unit.Name), digest.Hash, outputExists, force) {
		vtx.Cached()
		return domain.UnitResult{
			Name:     unit.Name,
			Status:   domain.StatusCached,
			Hash:     digest.Hash,
			Duration: time.Since(start),
		}, false, nil
	}

	env := []string{fmt.Sprintf("NODE_OPTIONS=--max-old-space-size=%d", heapBudgetMB)}
	if err := o.runner.Run(ctx, dir, unit.Command, env, vtx.Stdout(), vtx.Stderr()); err != nil {
		err = zerr.With(err, "unit", unit.Name)
		vtx.Complete(err)
		return failedResult(unit.Name, start, err), false, err
	}
	vtx.Complete(nil)

	duration := time.Since(start)
	o.mu.Lock()
	manifest.Record(unit.Name, digest.Hash, digest.FileCount, duration)
	if err := o.store.Save(layout.ManifestPath(), manifest); err != nil {
		o.logger.Warn(fmt.Sprintf("failed to persist manifest after %s: %v", unit.Name, err))
	}
	o.mu.Unlock()

	return domain.UnitResult{
		Name:     unit.Name,
		Status:   domain.StatusBuilt,
		Hash:     digest.Hash,
		Duration: duration,
	}, true, nil
}

// compress gzips large frontend artifacts in place. Compression failures are
// logged, not fatal: the uncompressed artifacts are still valid output.
func (o *Orchestrator) compress(ctx context.Context, project *domain.Project, summary *domain.Summary) {
	_, vtx := o.telemetry.Record(ctx, "compress")

	distDir := filepath.Join(project.Root, project.Frontend.OutputDir)
	count, err := o.ws.CompressDir(distDir, compressExtensions, compressMinSize)
	summary.CompressedFiles = count
	if err != nil {
		o.logger.Warn(fmt.Sprintf("compression incomplete: %v", err))
	}
	vtx.Complete(nil)
}

// preflight checks that a phase has enough memory to start and returns the
// heap budget for its build subprocess. Without a working probe the check is
// skipped and a generous budget assumed.
func (o *Orchestrator) preflight(phase domain.Phase) (int, error) {
	availableMB, err := o.probe.AvailableMB()
	if err != nil {
		o.logger.Warn(fmt.Sprintf("memory probe unavailable, skipping preflight check: %v", err))
		return domain.HeapBudgetMB(phase, fallbackAvailableMB), nil
	}

	if required := domain.RequiredMB(phase); availableMB < required {
		err := zerr.With(domain.ErrInsufficientMemory, "phase", string(phase))
		err = zerr.With(err, "available_mb", availableMB)
		return 0, zerr.With(err, "required_mb", required)
	}
	return domain.HeapBudgetMB(phase, availableMB), nil
}

// lockfileHash hashes the dependency lockfile. A missing lockfile hashes to
// the empty string so first runs and lockfile-less projects behave like a
// cold vendor cache.
func (o *Orchestrator) lockfileHash(project *domain.Project) string {
	if project.Lockfile == "" {
		return ""
	}
	path := filepath.Join(project.Root, project.Lockfile)
	if !o.ws.Exists(path) {
		return ""
	}
	hash, err := o.hasher.HashFile(path)
	if err != nil {
		o.logger.Warn(fmt.Sprintf("failed to hash lockfile: %v", err))
		return ""
	}
	return hash
}

func failedResult(name string, start time.Time, err error) domain.UnitResult {
	return domain.UnitResult{
		Name:     name,
		Status:   domain.StatusFailed,
		Duration: time.Since(start),
		Err:      err,
	}
}

// Package app implements the application layer for forge.
package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// RunOptions control one invocation of the build pipeline.
type RunOptions struct {
	// Force bypasses every cache check and rebuilds all units.
	Force bool

	// Turbo skips the post-build compression phase.
	Turbo bool

	// Only restricts the run to a single phase. Empty means all phases.
	Only domain.Phase
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	orch         *orchestrator.Orchestrator
	store        ports.ManifestStore
	vendorStore  ports.VendorStore
	ws           ports.Workspace
	logger       ports.Logger
	telemetry    ports.Telemetry
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	orch *orchestrator.Orchestrator,
	store ports.ManifestStore,
	vendorStore ports.VendorStore,
	ws ports.Workspace,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		configLoader: loader,
		orch:         orch,
		store:        store,
		vendorStore:  vendorStore,
		ws:           ws,
		logger:       logger,
		telemetry:    telemetry,
	}
}

// Run executes the build pipeline and reports a per-unit summary.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	defer func() {
		if err := a.telemetry.Close(); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to close telemetry: %v", err))
		}
	}()

	project, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	summary, err := a.orch.Run(ctx, project, orchestrator.Options{
		Force: opts.Force,
		Turbo: opts.Turbo,
		Only:  opts.Only,
	})
	if summary != nil {
		a.report(project, summary)
	}
	return err
}

// report logs one line per unit plus run totals.
func (a *App) report(project *domain.Project, s *domain.Summary) {
	for _, u := range s.Units {
		line := fmt.Sprintf("%-24s %s", u.Name, u.Status)
		if project.Frontend != nil && u.Name == project.Frontend.Name && u.Status != domain.StatusFailed {
			line += fmt.Sprintf(" [%s]", u.Tier)
		}
		line += fmt.Sprintf(" (%s)", u.Duration.Round(time.Millisecond))
		if u.Status == domain.StatusFailed {
			line += fmt.Sprintf(": %v", u.Err)
		}
		a.logger.Info(line)
	}

	if s.VendorRefreshed {
		a.logger.Info("vendor bundles refreshed")
	}
	if s.CompressedFiles > 0 {
		a.logger.Info(fmt.Sprintf("compressed %d artifacts", s.CompressedFiles))
	}
	a.logger.Info(fmt.Sprintf("finished in %s (%d units)", s.Duration.Round(time.Millisecond), len(s.Units)))
}

// Stats prints the persisted cache state without building anything.
func (a *App) Stats(_ context.Context) error {
	project, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	layout := project.Layout.Resolve(project.Root)

	manifest := a.store.Load(layout.ManifestPath())
	if len(manifest.Units) == 0 {
		a.logger.Info("cache is cold: no units recorded")
	}

	names := make([]string, 0, len(manifest.Units))
	for name := range manifest.Units {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := manifest.Units[name]
		a.logger.Info(fmt.Sprintf(
			"%-24s hash=%s files=%d built=%s took=%.1fs",
			name, entry.Hash, entry.FileCount,
			entry.BuiltAt.Format(time.RFC3339), entry.DurationSeconds,
		))
	}
	if manifest.LockfileHash != "" {
		a.logger.Info(fmt.Sprintf("lockfile hash: %s", manifest.LockfileHash))
	}

	vendor := a.vendorStore.Load(layout.VendorManifestPath())
	bundleNames := make([]string, 0, len(vendor.Bundles))
	for name := range vendor.Bundles {
		bundleNames = append(bundleNames, name)
	}
	sort.Strings(bundleNames)

	for _, name := range bundleNames {
		b := vendor.Bundles[name]
		if b.Success {
			a.logger.Info(fmt.Sprintf("vendor %-17s ok size=%d took=%dms", name, b.SizeBytes, b.DurationMS))
		} else {
			a.logger.Info(fmt.Sprintf("vendor %-17s failed (%s)", name, b.Reason))
		}
	}

	return nil
}

// Clean removes every cache forge owns: the manifest, the output and
// transform backups and the vendor bundles. The lock sentinel is left alone
// so a concurrent build is not disturbed.
func (a *App) Clean(_ context.Context) error {
	project, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	layout := project.Layout.Resolve(project.Root)

	if err := a.ws.RemoveAll(layout.CacheRoot); err != nil {
		return zerr.Wrap(err, "failed to clear caches")
	}
	a.logger.Info("caches cleared")
	return nil
}

package app_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type appFixture struct {
	loader      *mocks.MockConfigLoader
	store       *mocks.MockManifestStore
	vendorStore *mocks.MockVendorStore
	ws          *mocks.MockWorkspace
	telemetry   *mocks.MockTelemetry

	infoLines []string
	project   *domain.Project
}

// newAppFixture builds an App over mocks only. The orchestrator is nil, so
// these tests cover the paths that never reach it.
func newAppFixture(t *testing.T) (*app.App, *appFixture) {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &appFixture{
		loader:      mocks.NewMockConfigLoader(ctrl),
		store:       mocks.NewMockManifestStore(ctrl),
		vendorStore: mocks.NewMockVendorStore(ctrl),
		ws:          mocks.NewMockWorkspace(ctrl),
		telemetry:   mocks.NewMockTelemetry(ctrl),
		project: &domain.Project{
			Root:   "/work/mono",
			Layout: domain.DefaultLayout(),
		},
	}

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		f.infoLines = append(f.infoLines, msg)
	}).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	a := app.New(f.loader, nil, f.store, f.vendorStore, f.ws, log, f.telemetry)
	return a, f
}

func (f *appFixture) output() string {
	return strings.Join(f.infoLines, "\n")
}

func TestApp_Run_ConfigLoadFailure(t *testing.T) {
	a, f := newAppFixture(t)

	f.loader.EXPECT().Load(".").Return(nil, domain.ErrMissingDependency)
	f.telemetry.EXPECT().Close().Return(nil)

	err := a.Run(context.Background(), app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrMissingDependency)
}

func TestApp_Stats_ColdCache(t *testing.T) {
	a, f := newAppFixture(t)
	layout := f.project.Layout.Resolve(f.project.Root)

	f.loader.EXPECT().Load(".").Return(f.project, nil)
	f.store.EXPECT().Load(layout.ManifestPath()).Return(domain.NewManifest())
	f.vendorStore.EXPECT().Load(layout.VendorManifestPath()).Return(domain.NewVendorManifest())

	require.NoError(t, a.Stats(context.Background()))
	require.Contains(t, f.output(), "cache is cold")
}

func TestApp_Stats_ReportsUnitsAndBundles(t *testing.T) {
	a, f := newAppFixture(t)
	layout := f.project.Layout.Resolve(f.project.Root)

	manifest := domain.NewManifest()
	manifest.Record("shared", "aabbccdd00112233", 12, 1500*time.Millisecond)
	manifest.LockfileHash = "ffee001122334455"

	vendor := domain.NewVendorManifest()
	vendor.Bundles["plotly"] = domain.BundleResult{Success: true, SizeBytes: 4_200_000, DurationMS: 900}
	vendor.Bundles["mapbox"] = domain.BundleResult{Success: false, Reason: "missing"}

	f.loader.EXPECT().Load(".").Return(f.project, nil)
	f.store.EXPECT().Load(layout.ManifestPath()).Return(manifest)
	f.vendorStore.EXPECT().Load(layout.VendorManifestPath()).Return(vendor)

	require.NoError(t, a.Stats(context.Background()))

	out := f.output()
	require.Contains(t, out, "shared")
	require.Contains(t, out, "hash=aabbccdd00112233")
	require.Contains(t, out, "lockfile hash: ffee001122334455")
	require.Contains(t, out, "ok size=4200000")
	require.Contains(t, out, "failed (missing)")
	require.NotContains(t, out, "cache is cold")
}

func TestApp_Clean(t *testing.T) {
	a, f := newAppFixture(t)

	f.loader.EXPECT().Load(".").Return(f.project, nil)
	f.ws.EXPECT().RemoveAll(filepath.Join("/work/mono", ".forge-cache")).Return(nil)

	require.NoError(t, a.Clean(context.Background()))
	require.Contains(t, f.output(), "caches cleared")
}

func TestApp_Clean_LeavesLockSentinel(t *testing.T) {
	a, f := newAppFixture(t)

	f.loader.EXPECT().Load(".").Return(f.project, nil)
	// Only the cache root goes; no RemoveAll expectation for the lock path.
	f.ws.EXPECT().RemoveAll(filepath.Join("/work/mono", ".forge-cache")).Return(nil)

	require.NoError(t, a.Clean(context.Background()))
}

package orchestrator_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/cas"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/adapters/lock"
	"go.trai.ch/forge/internal/adapters/telemetry"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/frontend"
	"go.trai.ch/forge/internal/engine/orchestrator"
	"go.trai.ch/forge/internal/engine/vendor"
	"go.uber.org/mock/gomock"
)

// orchFixture wires the orchestrator against real filesystem adapters in a
// temp workspace. Only the build subprocess and the memory probe are mocked.
type orchFixture struct {
	orch    *orchestrator.Orchestrator
	runner  *mocks.MockRunner
	project *domain.Project
	root    string

	availableMB int

	mu  sync.Mutex
	ran []string
}

func newOrchFixture(t *testing.T) *orchFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	f := &orchFixture{
		runner:      mocks.NewMockRunner(ctrl),
		root:        t.TempDir(),
		availableMB: 8192,
	}

	probe := mocks.NewMockMemoryProbe(ctrl)
	probe.EXPECT().AvailableMB().DoAndReturn(func() (int, error) {
		return f.availableMB, nil
	}).AnyTimes()

	cmd := []string{"npm", "run", "build"}
	f.project = &domain.Project{
		Root:        f.root,
		Lockfile:    "package-lock.json",
		Extensions:  []string{".ts"},
		ExcludeDirs: []string{"node_modules", "dist"},
		Layout:      domain.DefaultLayout(),
		Packages: []domain.Unit{
			{Name: "shared", Kind: domain.KindPackage, Dir: "packages/shared", OutputDir: "packages/shared/dist", Command: cmd},
			{Name: "ui", Kind: domain.KindPackage, Dir: "packages/ui", OutputDir: "packages/ui/dist", Command: cmd, Dependencies: []string{"shared"}},
		},
		API:      &domain.Unit{Name: "api", Kind: domain.KindAPI, Dir: "apps/api", OutputDir: "apps/api/dist", Command: cmd, Dependencies: []string{"shared"}},
		Frontend: &domain.Unit{Name: "frontend", Kind: domain.KindFrontend, Dir: "apps/web", OutputDir: "apps/web/dist", Command: cmd, Dependencies: []string{"shared", "ui"}},
	}

	f.write(t, "package-lock.json", "lock-v1")
	f.write(t, "packages/shared/index.ts", "export const shared = 1\n")
	f.write(t, "packages/ui/index.ts", "export const ui = 1\n")
	f.write(t, "apps/api/index.ts", "export const api = 1\n")
	f.write(t, "apps/web/index.ts", "export const web = 1\n")

	hasher := fs.NewHasher(fs.NewWalker(), log)
	ws := fs.NewWorkspace()
	store := cas.NewStore()
	vendorStore := cas.NewVendorStore()
	noop := telemetry.NewNoOp()

	f.orch = orchestrator.New(
		hasher,
		store,
		f.runner,
		lock.NewFileLock(log),
		probe,
		ws,
		vendor.NewBundler(f.runner, vendorStore, ws, log),
		frontend.NewStrategy(hasher, f.runner, ws, log, noop),
		log,
		noop,
	)
	return f
}

func (f *orchFixture) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(f.root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// stubBuilds makes every runner invocation record the unit it ran for and
// produce a dist/ artifact, the way a real build command would.
func (f *orchFixture) stubBuilds(t *testing.T) {
	t.Helper()
	f.runner.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, dir string, _, _ []string, _, _ io.Writer) error {
			f.mu.Lock()
			f.ran = append(f.ran, filepath.Base(dir))
			f.mu.Unlock()

			out := filepath.Join(dir, "dist")
			if err := os.MkdirAll(out, 0o755); err != nil {
				return err
			}
			return os.WriteFile(filepath.Join(out, "out.js"), []byte("artifact"), 0o600)
		}).AnyTimes()
}

func (f *orchFixture) manifestPath() string {
	return f.project.Layout.Resolve(f.root).ManifestPath()
}

func (f *orchFixture) resetRan() {
	f.mu.Lock()
	f.ran = nil
	f.mu.Unlock()
}

func (f *orchFixture) run(t *testing.T, opts orchestrator.Options) *domain.Summary {
	t.Helper()
	summary, err := f.orch.Run(context.Background(), f.project, opts)
	require.NoError(t, err)
	return summary
}

func findUnit(t *testing.T, summary *domain.Summary, name string) domain.UnitResult {
	t.Helper()
	for _, res := range summary.Units {
		if res.Name == name {
			return res
		}
	}
	t.Fatalf("unit %q not in summary", name)
	return domain.UnitResult{}
}

func TestOrchestrator_Run_ColdBuild(t *testing.T) {
	f := newOrchFixture(t)
	f.stubBuilds(t)

	summary := f.run(t, orchestrator.Options{})

	require.ElementsMatch(t, []string{"shared", "ui", "api", "web"}, f.ran)
	require.Less(t,
		slicesIndex(f.ran, "shared"), slicesIndex(f.ran, "ui"),
		"shared must build before its dependent")

	for _, name := range []string{"shared", "ui", "api", "frontend"} {
		require.Equal(t, domain.StatusBuilt, findUnit(t, summary, name).Status, name)
	}
	require.Equal(t, domain.TierFullRebuild, findUnit(t, summary, "frontend").Tier)
	require.True(t, summary.VendorRefreshed, "cold vendor cache must be refreshed")
	require.False(t, summary.Failed())

	manifest := cas.NewStore().Load(f.manifestPath())
	entry := manifest.Entry("shared")
	require.NotNil(t, entry)
	require.Equal(t, 1, entry.FileCount, "the manifest must record how many files were hashed")
}

func TestOrchestrator_Run_SecondRunIsFullyCached(t *testing.T) {
	f := newOrchFixture(t)
	f.stubBuilds(t)

	f.run(t, orchestrator.Options{})
	f.resetRan()
	before, err := os.ReadFile(f.manifestPath())
	require.NoError(t, err)

	summary := f.run(t, orchestrator.Options{})

	require.Empty(t, f.ran, "an unchanged workspace must not run any build")
	for _, name := range []string{"shared", "ui", "api", "frontend"} {
		require.Equal(t, domain.StatusCached, findUnit(t, summary, name).Status, name)
	}
	require.Equal(t, domain.TierInstantSkip, findUnit(t, summary, "frontend").Tier)
	require.False(t, summary.VendorRefreshed)

	after, err := os.ReadFile(f.manifestPath())
	require.NoError(t, err)
	require.Equal(t, before, after, "a no-change rerun must leave the manifest byte-identical")
}

func TestOrchestrator_Run_CascadeFromSharedPackage(t *testing.T) {
	f := newOrchFixture(t)
	f.stubBuilds(t)

	f.run(t, orchestrator.Options{})
	f.resetRan()
	f.write(t, "packages/shared/index.ts", "export const shared = 2\n")

	summary := f.run(t, orchestrator.Options{})

	require.ElementsMatch(t, []string{"shared", "ui", "api", "web"}, f.ran,
		"a shared package change must cascade to every dependent")
	require.Equal(t, domain.TierIncremental, findUnit(t, summary, "frontend").Tier,
		"an upstream rebuild with an unchanged lockfile is incremental")
}

func TestOrchestrator_Run_LockfileChangeForcesFullRebuild(t *testing.T) {
	f := newOrchFixture(t)
	f.stubBuilds(t)

	f.run(t, orchestrator.Options{})
	f.resetRan()
	f.write(t, "package-lock.json", "lock-v2")
	f.write(t, "apps/web/index.ts", "export const web = 2\n")

	summary := f.run(t, orchestrator.Options{})

	require.Equal(t, []string{"web"}, f.ran, "unchanged packages stay cached")
	require.Equal(t, domain.TierFullRebuild, findUnit(t, summary, "frontend").Tier)
	require.True(t, summary.VendorRefreshed)
}

func TestOrchestrator_Run_LockfileBumpForcesFullRebuild(t *testing.T) {
	// Rewriting only the lockfile, with every source tree untouched, must
	// still land the frontend on the full-rebuild tier with fresh vendor
	// bundles. Workspace packages and the API stay cached.
	f := newOrchFixture(t)
	f.stubBuilds(t)

	f.run(t, orchestrator.Options{})
	f.resetRan()
	f.write(t, "package-lock.json", "lock-v2")

	summary := f.run(t, orchestrator.Options{})

	require.Equal(t, []string{"web"}, f.ran, "only the frontend rebuilds on a lockfile bump")
	require.Equal(t, domain.TierFullRebuild, findUnit(t, summary, "frontend").Tier)
	require.True(t, summary.VendorRefreshed, "a lockfile bump rebuilds the vendor bundles")
	for _, name := range []string{"shared", "ui", "api"} {
		require.Equal(t, domain.StatusCached, findUnit(t, summary, name).Status, name)
	}
}

func TestOrchestrator_Run_RestoresDeletedFrontendOutput(t *testing.T) {
	f := newOrchFixture(t)
	f.stubBuilds(t)

	f.run(t, orchestrator.Options{})
	f.resetRan()
	require.NoError(t, os.RemoveAll(filepath.Join(f.root, "apps/web/dist")))

	summary := f.run(t, orchestrator.Options{Only: domain.PhaseFrontend})

	require.Empty(t, f.ran, "the backup copy must satisfy a deleted output")
	require.Equal(t, domain.StatusRestored, findUnit(t, summary, "frontend").Status)

	restored := filepath.Join(f.root, "apps/web/dist/out.js")
	if _, err := os.Stat(restored); err != nil {
		t.Fatalf("restored artifact missing: %v", err)
	}
}

func TestOrchestrator_Run_RebuildsDeletedPackageOutput(t *testing.T) {
	f := newOrchFixture(t)
	f.stubBuilds(t)

	f.run(t, orchestrator.Options{})
	f.resetRan()
	require.NoError(t, os.RemoveAll(filepath.Join(f.root, "packages/shared/dist")))

	f.run(t, orchestrator.Options{Only: domain.PhasePackages})

	require.ElementsMatch(t, []string{"shared", "ui"}, f.ran,
		"a missing output rebuilds the unit and cascades to dependents")
}

func TestOrchestrator_Run_Force(t *testing.T) {
	f := newOrchFixture(t)
	f.stubBuilds(t)

	f.run(t, orchestrator.Options{})
	f.resetRan()

	summary := f.run(t, orchestrator.Options{Force: true})

	require.ElementsMatch(t, []string{"shared", "ui", "api", "web"}, f.ran)
	require.Equal(t, domain.TierFullRebuild, findUnit(t, summary, "frontend").Tier)
	require.True(t, summary.VendorRefreshed)
}

func TestOrchestrator_Run_InsufficientMemory(t *testing.T) {
	f := newOrchFixture(t)
	f.availableMB = 512
	// No runner expectation: the preflight check must stop the run cold.

	_, err := f.orch.Run(context.Background(), f.project, orchestrator.Options{})
	require.ErrorIs(t, err, domain.ErrInsufficientMemory)
}

func TestOrchestrator_Run_BuildFailureStopsDependents(t *testing.T) {
	f := newOrchFixture(t)

	f.runner.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("tsc exited with code 2"))

	summary, err := f.orch.Run(context.Background(), f.project, orchestrator.Options{})
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	require.True(t, summary.Failed())
	require.Equal(t, domain.StatusFailed, findUnit(t, summary, "shared").Status)

	for _, res := range summary.Units {
		require.NotEqual(t, "ui", res.Name, "a failed dependency must stop the next level")
	}
}

func slicesIndex(s []string, v string) int {
	for i, e := range s {
		if e == v {
			return i
		}
	}
	return -1
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/config"
	"go.trai.ch/forge/internal/core/domain"
)

const sampleConfig = `version: "1"
lockfile: package-lock.json
transformCacheDir: node_modules/.vite

packages:
  shared:
    path: packages/shared
    output: packages/shared/dist
    cmd: ["npm", "run", "build"]
  ui:
    path: packages/ui
    output: packages/ui/dist
    cmd: ["npm", "run", "build"]
    dependsOn: [shared]

api:
  path: apps/api
  output: apps/api/dist
  cmd: ["npm", "run", "build:api"]
  dependsOn: [shared]

frontend:
  path: apps/web
  output: apps/web/dist
  cmd: ["npm", "run", "build:web"]
  configFiles: [vite.config.ts]
  dependsOn: [shared, ui]

vendorBundles:
  - name: plotly
    package: plotly.js
    cmd: ["npm", "run", "bundle:plotly"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFilename), []byte(content), 0o600))
	return dir
}

func TestLoader_Load(t *testing.T) {
	dir := writeConfig(t, sampleConfig)

	project, err := config.NewLoader().Load(dir)
	require.NoError(t, err)

	require.Equal(t, dir, project.Root)
	require.Equal(t, "package-lock.json", project.Lockfile)
	require.Equal(t, "node_modules/.vite", project.TransformCacheDir)

	require.Len(t, project.Packages, 2)
	// Package order is deterministic (sorted by name).
	require.Equal(t, "shared", project.Packages[0].Name)
	require.Equal(t, "ui", project.Packages[1].Name)
	require.Equal(t, []string{"shared"}, project.Packages[1].Dependencies)

	require.NotNil(t, project.API)
	require.Equal(t, domain.KindAPI, project.API.Kind)

	require.NotNil(t, project.Frontend)
	require.Equal(t, "apps/web/dist", project.Frontend.OutputDir)
	require.Equal(t, []string{"vite.config.ts"}, project.Frontend.ConfigFiles)

	require.Len(t, project.VendorBundles, 1)
	require.Equal(t, "plotly.js", project.VendorBundles[0].Package)
}

func TestLoader_Load_Defaults(t *testing.T) {
	dir := writeConfig(t, "packages: {}\n")

	project, err := config.NewLoader().Load(dir)
	require.NoError(t, err)

	require.Equal(t, "package-lock.json", project.Lockfile)
	require.Contains(t, project.Extensions, ".ts")
	require.Contains(t, project.ExcludeDirs, "node_modules")
	require.Equal(t, domain.DefaultLayout(), project.Layout)
}

func TestLoader_Load_MissingFileFallsBackToDefaultProject(t *testing.T) {
	dir := t.TempDir()

	project, err := config.NewLoader().Load(dir)
	require.NoError(t, err)

	require.Equal(t, dir, project.Root)
	require.Equal(t, "pnpm-lock.yaml", project.Lockfile)
	require.Len(t, project.Packages, 2)
	require.Equal(t, "shared", project.Packages[0].Name)
	require.Equal(t, "core", project.Packages[1].Name)
	require.Equal(t, []string{"shared"}, project.Packages[1].Dependencies)
	require.NotNil(t, project.API)
	require.NotNil(t, project.Frontend)
	require.Equal(t, "dist", project.Frontend.OutputDir)
}

func TestLoader_Load_ExplicitFileMustExist(t *testing.T) {
	loader := config.NewLoader()
	loader.Filename = "custom.yaml"

	_, err := loader.Load(t.TempDir())
	require.Error(t, err, "a file named via -c must not fall back to the default project")
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	dir := writeConfig(t, "packages: [not a map\n")
	_, err := config.NewLoader().Load(dir)
	require.Error(t, err)
}

func TestLoader_Load_MissingDependency(t *testing.T) {
	dir := writeConfig(t, `packages:
  ui:
    path: packages/ui
    cmd: ["npm", "run", "build"]
    dependsOn: [ghost]
`)

	_, err := config.NewLoader().Load(dir)
	require.ErrorIs(t, err, domain.ErrMissingDependency)
}

func TestLoader_Load_CyclicPackages(t *testing.T) {
	dir := writeConfig(t, `packages:
  a:
    path: packages/a
    cmd: ["true"]
    dependsOn: [b]
  b:
    path: packages/b
    cmd: ["true"]
    dependsOn: [a]
`)

	_, err := config.NewLoader().Load(dir)
	require.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestLoader_Load_FrontendDependencyMustExist(t *testing.T) {
	dir := writeConfig(t, `frontend:
  path: apps/web
  cmd: ["true"]
  dependsOn: [ghost]
`)

	_, err := config.NewLoader().Load(dir)
	require.ErrorIs(t, err, domain.ErrMissingDependency)
}

func TestLoader_Load_CustomLayout(t *testing.T) {
	dir := writeConfig(t, `cacheDir: .cache/forge
vendorDir: .cache/forge/vendor
lockPath: .cache/forge.lock
packages: {}
`)

	project, err := config.NewLoader().Load(dir)
	require.NoError(t, err)
	require.Equal(t, ".cache/forge", project.Layout.CacheRoot)
	require.Equal(t, ".cache/forge/vendor", project.Layout.VendorRoot)
	require.Equal(t, ".cache/forge.lock", project.Layout.LockPath)
}

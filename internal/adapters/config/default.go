package config

import "go.trai.ch/forge/internal/core/domain"

// DefaultProject describes a typical pnpm monorepo and is used when no
// configuration file is present: shared and core workspace packages, an API
// bundle under apps/, and a vite frontend rooted at the repository itself.
func DefaultProject(root string) *domain.Project {
	return &domain.Project{
		Root:              root,
		Lockfile:          "pnpm-lock.yaml",
		Extensions:        defaulted(nil, defaultExtensions),
		ExcludeDirs:       defaulted(nil, defaultExcludeDirs),
		TransformCacheDir: "node_modules/.vite",
		Layout:            domain.DefaultLayout(),
		Packages: []domain.Unit{
			{
				Name:      "shared",
				Kind:      domain.KindPackage,
				Dir:       "packages/shared",
				OutputDir: "packages/shared/dist",
				Command:   []string{"pnpm", "build"},
			},
			{
				Name:         "core",
				Kind:         domain.KindPackage,
				Dir:          "packages/core",
				OutputDir:    "packages/core/dist",
				Command:      []string{"pnpm", "build"},
				Dependencies: []string{"shared"},
			},
		},
		API: &domain.Unit{
			Name:         "api",
			Kind:         domain.KindAPI,
			Dir:          "apps/api",
			OutputDir:    "apps/api/dist",
			Command:      []string{"pnpm", "build"},
			Dependencies: []string{"shared", "core"},
		},
		Frontend: &domain.Unit{
			Name:         "frontend",
			Kind:         domain.KindFrontend,
			Dir:          ".",
			OutputDir:    "dist",
			Command:      []string{"pnpm", "build:vite"},
			Dependencies: []string{"shared", "core"},
		},
	}
}

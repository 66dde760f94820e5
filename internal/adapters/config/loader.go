// Package config provides the project configuration loader for forge.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// DefaultFilename is the configuration file looked up in the working directory.
const DefaultFilename = "forge.yaml"

var defaultExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".css", ".json"}

var defaultExcludeDirs = []string{"node_modules", "dist", ".git", ".forge-cache", "coverage"}

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Filename string
}

// NewLoader creates a loader for the default configuration filename.
func NewLoader() *Loader {
	return &Loader{Filename: DefaultFilename}
}

// Load reads the configuration from the given working directory. When the
// default configuration file is absent the built-in pnpm monorepo project is
// used instead; an explicitly named file must exist.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	filename := l.Filename
	if filename == "" {
		filename = DefaultFilename
	}
	path := filepath.Join(cwd, filename)
	if filename == DefaultFilename {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return DefaultProject(cwd), nil
		}
	}
	return Load(path, cwd)
}

// Load reads a configuration file and returns the validated project description.
func Load(path, root string) (*domain.Project, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Forgefile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	project := &domain.Project{
		Root:              root,
		Lockfile:          file.Lockfile,
		Extensions:        defaulted(file.Extensions, defaultExtensions),
		ExcludeDirs:       defaulted(file.ExcludeDirs, defaultExcludeDirs),
		TransformCacheDir: file.TransformCacheDir,
		Layout:            layoutFrom(file),
	}
	if project.Lockfile == "" {
		project.Lockfile = "package-lock.json"
	}

	for _, name := range sortedKeys(file.Packages) {
		dto := file.Packages[name]
		project.Packages = append(project.Packages, toUnit(name, domain.KindPackage, dto))
	}
	if file.API != nil {
		u := toUnit("api", domain.KindAPI, *file.API)
		project.API = &u
	}
	if file.Frontend != nil {
		u := toUnit("frontend", domain.KindFrontend, *file.Frontend)
		project.Frontend = &u
	}

	for _, b := range file.VendorBundles {
		project.VendorBundles = append(project.VendorBundles, domain.VendorBundle{
			Name:    b.Name,
			Package: b.Package,
			Command: b.Cmd,
		})
	}

	if err := validate(project); err != nil {
		return nil, err
	}

	return project, nil
}

func toUnit(name string, kind domain.UnitKind, dto UnitDTO) domain.Unit {
	return domain.Unit{
		Name:         name,
		Kind:         kind,
		Dir:          dto.Path,
		OutputDir:    dto.Output,
		Command:      dto.Cmd,
		Dependencies: slices.Clone(dto.DependsOn),
		ConfigFiles:  slices.Clone(dto.ConfigFiles),
	}
}

// validate checks that package dependencies resolve and form a DAG,
// so a broken configuration fails at load rather than mid-run.
func validate(p *domain.Project) error {
	graph := domain.NewGraph()
	for i := range p.Packages {
		if err := graph.AddUnit(&p.Packages[i]); err != nil {
			return err
		}
	}
	if err := graph.Validate(); err != nil {
		return err
	}

	for _, extra := range []*domain.Unit{p.API, p.Frontend} {
		if extra == nil {
			continue
		}
		for _, dep := range extra.Dependencies {
			if _, ok := graph.Unit(dep); !ok {
				return zerr.With(domain.ErrMissingDependency, "dependency", dep)
			}
		}
	}
	return nil
}

func layoutFrom(file Forgefile) domain.Layout {
	layout := domain.DefaultLayout()
	if file.CacheDir != "" {
		layout.CacheRoot = file.CacheDir
	}
	if file.VendorDir != "" {
		layout.VendorRoot = file.VendorDir
	}
	if file.LockPath != "" {
		layout.LockPath = file.LockPath
	}
	return layout
}

func defaulted(values, fallback []string) []string {
	if len(values) == 0 {
		return slices.Clone(fallback)
	}
	return values
}

func sortedKeys(m map[string]UnitDTO) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

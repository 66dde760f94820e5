// Package domain contains the core domain models and business logic for the build pipeline.
package domain

// UnitKind classifies a build unit by its role in the pipeline.
type UnitKind string

const (
	// KindPackage is a workspace package built during the packages phase.
	KindPackage UnitKind = "package"
	// KindAPI is the API server bundle.
	KindAPI UnitKind = "api"
	// KindFrontend is the frontend bundle, built via the tiered strategy.
	KindFrontend UnitKind = "frontend"
)

// Unit represents one independently buildable component of the project.
type Unit struct {
	Name string
	Kind UnitKind

	// Dir is the unit's source directory, relative to the project root.
	Dir string

	// OutputDir is where the unit's build output lands, relative to the project root.
	OutputDir string

	// ConfigFiles are extra files folded into the unit's content hash
	// (build configs whose changes must invalidate the cache).
	ConfigFiles []string

	// Command is the external build command invoked for this unit.
	Command []string

	// Dependencies are names of workspace packages whose compiled output
	// this unit embeds.
	Dependencies []string
}

// VendorBundle describes one pre-compiled bundle for a heavy third-party dependency.
type VendorBundle struct {
	Name string

	// Package is the dependency's package directory name, used to check resolvability.
	Package string

	// Command is the external command that produces the bundle artifact.
	Command []string
}

// Project is the full build description loaded from configuration.
type Project struct {
	Root     string
	Lockfile string

	// Extensions is the file-name suffix allow-list for source hashing.
	Extensions []string

	// ExcludeDirs are directory names pruned at any depth during hashing.
	ExcludeDirs []string

	Packages []Unit
	API      *Unit
	Frontend *Unit

	VendorBundles []VendorBundle

	// TransformCacheDir is the external bundler's intermediate cache directory,
	// relative to the project root. Backed up between incremental builds.
	TransformCacheDir string

	Layout Layout
}

// Unit returns the named unit, searching packages, API and frontend.
func (p *Project) Unit(name string) (*Unit, bool) {
	for i := range p.Packages {
		if p.Packages[i].Name == name {
			return &p.Packages[i], true
		}
	}
	if p.API != nil && p.API.Name == name {
		return p.API, true
	}
	if p.Frontend != nil && p.Frontend.Name == name {
		return p.Frontend, true
	}
	return nil, false
}

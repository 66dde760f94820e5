package config

// Forgefile represents the structure of the forge.yaml configuration file.
type Forgefile struct {
	Version     string   `yaml:"version"`
	Lockfile    string   `yaml:"lockfile"`
	Extensions  []string `yaml:"extensions"`
	ExcludeDirs []string `yaml:"excludeDirs"`

	CacheDir  string `yaml:"cacheDir"`
	VendorDir string `yaml:"vendorDir"`
	LockPath  string `yaml:"lockPath"`

	TransformCacheDir string `yaml:"transformCacheDir"`

	Packages map[string]UnitDTO `yaml:"packages"`
	API      *UnitDTO           `yaml:"api"`
	Frontend *UnitDTO           `yaml:"frontend"`

	VendorBundles []VendorBundleDTO `yaml:"vendorBundles"`
}

// UnitDTO represents a build unit definition in the configuration.
type UnitDTO struct {
	Path        string   `yaml:"path"`
	Output      string   `yaml:"output"`
	Cmd         []string `yaml:"cmd"`
	DependsOn   []string `yaml:"dependsOn"`
	ConfigFiles []string `yaml:"configFiles"`
}

// VendorBundleDTO represents a vendor bundle target in the configuration.
type VendorBundleDTO struct {
	Name    string   `yaml:"name"`
	Package string   `yaml:"package"`
	Cmd     []string `yaml:"cmd"`
}

package domain

import "path/filepath"

// Layout describes where the build cache persists its state on disk.
// All paths are relative to the project root unless absolute.
type Layout struct {
	CacheRoot  string
	VendorRoot string
	LockPath   string
}

// DefaultLayout returns the standard cache layout rooted at the project root.
func DefaultLayout() Layout {
	return Layout{
		CacheRoot:  ".forge-cache",
		VendorRoot: filepath.Join(".forge-cache", "vendor"),
		LockPath:   ".forge.lock",
	}
}

// ManifestPath is the location of the unit-hash manifest.
func (l Layout) ManifestPath() string {
	return filepath.Join(l.CacheRoot, "manifest.json")
}

// DistBackupDir holds a full copy of the last good frontend output.
func (l Layout) DistBackupDir() string {
	return filepath.Join(l.CacheRoot, "dist-backup")
}

// TransformBackupDir holds a copy of the external bundler's intermediate cache.
func (l Layout) TransformBackupDir() string {
	return filepath.Join(l.CacheRoot, "transform-cache-backup")
}

// VendorManifestPath is the location of the vendor bundle manifest.
func (l Layout) VendorManifestPath() string {
	return filepath.Join(l.VendorRoot, "manifest.json")
}

// BundlePath is the artifact location for one named vendor bundle.
func (l Layout) BundlePath(name string) string {
	return filepath.Join(l.VendorRoot, name+".bundle.js")
}

// Resolve returns a copy of the layout with all paths joined onto root.
func (l Layout) Resolve(root string) Layout {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	return Layout{
		CacheRoot:  join(l.CacheRoot),
		VendorRoot: join(l.VendorRoot),
		LockPath:   join(l.LockPath),
	}
}

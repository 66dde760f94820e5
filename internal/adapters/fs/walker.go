// Package fs provides file system adapters for walking, hashing and mirroring files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker provides file walking functionality with directory pruning.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files under root whose name ends with one of
// extensions, pruning any directory whose name is in excludeDirs at any
// depth. Version control directories are always pruned. An empty extensions
// list matches every file.
func (w *Walker) WalkFiles(root string, extensions, excludeDirs []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are skipped rather than aborting the
				// walk; hashing must stay total over what is readable.
				return nil //nolint:nilerr // intentional skip
			}

			if d.IsDir() {
				if path != root && w.pruneDir(d.Name(), excludeDirs) {
					return filepath.SkipDir
				}
				return nil
			}

			if !matchExtension(d.Name(), extensions) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

func (w *Walker) pruneDir(name string, excludeDirs []string) bool {
	if name == ".git" || name == ".jj" {
		return true
	}
	for _, ex := range excludeDirs {
		if name == ex {
			return true
		}
	}
	return false
}

func matchExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

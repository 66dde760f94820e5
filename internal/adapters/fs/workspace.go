package fs

import (
	"compress/gzip"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Workspace = (*Workspace)(nil)

// Workspace implements ports.Workspace on the local filesystem.
type Workspace struct{}

// NewWorkspace creates a new Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Exists reports whether a file or directory exists at path.
func (w *Workspace) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Size returns the size of the file at path in bytes.
func (w *Workspace) Size(path string) int64 {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return 0
	}
	return info.Size()
}

// CopyDir mirrors src into dst, replacing any existing dst. Only regular
// files and directories are copied; permissions are preserved.
func (w *Workspace) CopyDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source directory"), "path", src)
	}
	if !info.IsDir() {
		return zerr.With(zerr.New("source is not a directory"), "path", src)
	}

	if err := os.RemoveAll(dst); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clear destination"), "path", dst)
	}

	return filepath.WalkDir(src, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm())
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src) //nolint:gosec // path comes from our own walk
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // best effort close in defer

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // mirrored path
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// RemoveAll deletes path and everything under it.
func (w *Workspace) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove path"), "path", path)
	}
	return nil
}

// CompressDir gzips matching files under dir, writing a sibling ".gz" per
// file. Already-compressed files are left alone.
func (w *Workspace) CompressDir(dir string, extensions []string, minSize int64) (int, error) {
	compressed := 0
	err := filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if strings.HasSuffix(path, ".gz") || !matchExtension(d.Name(), extensions) {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() < minSize {
			return err
		}
		if err := gzipFile(path); err != nil {
			return err
		}
		compressed++
		return nil
	})
	if err != nil {
		return compressed, zerr.With(zerr.Wrap(err, "failed to compress output"), "dir", dir)
	}
	return compressed, nil
}

func gzipFile(path string) error {
	in, err := os.Open(path) //nolint:gosec // path comes from our own walk
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // best effort close in defer

	out, err := os.Create(path + ".gz") //nolint:gosec // sibling of walked path
	if err != nil {
		return err
	}

	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		_ = gz.Close()
		_ = out.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

package ports

// Workspace provides the directory-level filesystem operations the pipeline
// needs around its external collaborators: output existence checks, the
// backup copies behind the restore tier, and post-build compression.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type Workspace interface {
	// Exists reports whether a file or directory exists at path.
	Exists(path string) bool

	// Size returns the size of the file at path in bytes, or 0 if it is
	// missing or not a regular file.
	Size(path string) int64

	// CopyDir mirrors src into dst, replacing any existing dst.
	CopyDir(src, dst string) error

	// RemoveAll deletes path and everything under it. Missing paths are not errors.
	RemoveAll(path string) error

	// CompressDir gzips files under dir whose name ends with one of extensions
	// and whose size is at least minSize, writing a sibling ".gz" per file.
	// It returns the number of files compressed.
	CompressDir(dir string, extensions []string, minSize int64) (int, error)
}

// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/forge/internal/core/domain"

// TreeDigest is the result of hashing a source tree.
type TreeDigest struct {
	Hash      string
	FileCount int
	Skipped   int
}

// TreeHasher defines the interface for computing deterministic content hashes.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type TreeHasher interface {
	// HashTree computes a content hash over every file under root whose name
	// ends with one of extensions, pruning directories named in excludeDirs.
	// A missing root yields the hash of an empty sequence, not an error.
	HashTree(root string, extensions, excludeDirs []string) (TreeDigest, error)

	// HashFile computes the content hash of a single file.
	HashFile(path string) (string, error)

	// Combine folds a list of hex digests into a single digest.
	Combine(hashes []string) string

	// HashUnit computes the full content hash for a unit: its source tree
	// under the project root plus any declared config files.
	HashUnit(project *domain.Project, unit *domain.Unit) (TreeDigest, error)
}

package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TreeHasher = (*Hasher)(nil)

// Hasher computes deterministic content hashes over source trees.
type Hasher struct {
	walker *Walker
	logger ports.Logger
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker, logger ports.Logger) *Hasher {
	return &Hasher{walker: walker, logger: logger}
}

// HashTree computes a content hash over every matching file under root.
// Files are folded in lexicographic order of their root-relative path, so the
// digest is independent of filesystem traversal order. The hash covers only
// relative paths and file bytes, never metadata. A missing root yields the
// digest of an empty sequence. An unreadable file is skipped with a warning
// and excluded from the digest.
func (h *Hasher) HashTree(root string, extensions, excludeDirs []string) (ports.TreeDigest, error) {
	var paths []string
	for path := range h.walker.WalkFiles(root, extensions, excludeDirs) {
		paths = append(paths, path)
	}

	rels := make([]string, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rels = append(rels, filepath.ToSlash(rel))
	}
	sort.Strings(rels)

	digest := xxhash.New()
	skipped := 0
	count := 0
	for _, rel := range rels {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := h.foldFile(digest, rel, path); err != nil {
			h.logger.Warn(fmt.Sprintf("skipping unreadable file %s: %v", path, err))
			skipped++
			continue
		}
		count++
	}

	return ports.TreeDigest{
		Hash:      fmt.Sprintf("%016x", digest.Sum64()),
		FileCount: count,
		Skipped:   skipped,
	}, nil
}

func (h *Hasher) foldFile(digest *xxhash.Digest, rel, path string) error {
	f, err := os.Open(path) //nolint:gosec // path comes from our own walk
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	_, _ = digest.WriteString(rel)
	_, _ = digest.Write([]byte{0})
	if _, err := io.Copy(digest, f); err != nil {
		return err
	}
	_, _ = digest.Write([]byte{0})
	return nil
}

// HashFile computes the content hash of a single file.
func (h *Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

// Combine folds a list of hex digests into a single digest.
func (h *Hasher) Combine(hashes []string) string {
	digest := xxhash.New()
	for _, hash := range hashes {
		_, _ = digest.WriteString(hash)
		_, _ = digest.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", digest.Sum64())
}

// HashUnit computes the full content hash for a unit: its source tree plus
// any declared config files. A missing config file contributes an empty
// digest rather than failing, so removing one still changes the hash.
// For the frontend unit the dependency lockfile counts as a config file,
// so a lockfile-only bump invalidates the frontend hash and the tier
// decision falls through to a full rebuild instead of an instant skip.
func (h *Hasher) HashUnit(project *domain.Project, unit *domain.Unit) (ports.TreeDigest, error) {
	root := filepath.Join(project.Root, unit.Dir)
	tree, err := h.HashTree(root, project.Extensions, project.ExcludeDirs)
	if err != nil {
		return ports.TreeDigest{}, err
	}

	configFiles := unit.ConfigFiles
	if unit.Kind == domain.KindFrontend && project.Lockfile != "" {
		configFiles = append(append([]string{}, configFiles...), project.Lockfile)
	}
	if len(configFiles) == 0 {
		return tree, nil
	}

	parts := []string{tree.Hash}
	for _, cf := range configFiles {
		path := filepath.Join(project.Root, cf)
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			// A removed config file still changes the combined hash.
			parts = append(parts, "")
			continue
		}
		hash, err := h.HashFile(path)
		if err != nil {
			return ports.TreeDigest{}, err
		}
		parts = append(parts, hash)
	}

	tree.Hash = h.Combine(parts)
	return tree, nil
}

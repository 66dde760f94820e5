// Package cas implements the persisted build manifest and vendor manifest stores.
package cas

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*Store)(nil)

// Store persists the build manifest as a flat JSON file.
type Store struct{}

// NewStore creates a new manifest store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the manifest at path. Any read or parse failure yields a fresh
// empty manifest: a corrupt or missing manifest is a cold cache, never fatal.
func (s *Store) Load(path string) *domain.Manifest {
	m := domain.NewManifest()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil || len(data) == 0 {
		return m
	}

	if err := json.Unmarshal(data, m); err != nil {
		return domain.NewManifest()
	}
	if m.Units == nil {
		m.Units = make(map[string]domain.UnitEntry)
	}
	return m
}

// Save writes the full manifest back via a temp file and rename, so a
// concurrent Load never observes a half-written document.
func (s *Store) Save(path string, m *domain.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal manifest")
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create manifest directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp manifest")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to write temp manifest")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to close temp manifest")
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to replace manifest")
	}
	return nil
}

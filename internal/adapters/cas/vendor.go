package cas

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.VendorStore = (*VendorStore)(nil)

// VendorStore persists the vendor bundle manifest with the same semantics as
// the build manifest store.
type VendorStore struct{}

// NewVendorStore creates a new vendor manifest store.
func NewVendorStore() *VendorStore {
	return &VendorStore{}
}

// Load reads the vendor manifest at path, returning an empty manifest on any failure.
func (s *VendorStore) Load(path string) *domain.VendorManifest {
	m := domain.NewVendorManifest()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil || len(data) == 0 {
		return m
	}

	if err := json.Unmarshal(data, m); err != nil {
		return domain.NewVendorManifest()
	}
	if m.Bundles == nil {
		m.Bundles = make(map[string]domain.BundleResult)
	}
	return m
}

// Save atomically writes the vendor manifest, lockfile hash and all
// per-bundle results in one update.
func (s *VendorStore) Save(path string, m *domain.VendorManifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal vendor manifest")
	}
	return writeAtomic(path, data)
}

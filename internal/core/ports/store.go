package ports

import "go.trai.ch/forge/internal/core/domain"

// ManifestStore persists the build manifest. Loading never fails: a missing
// or corrupted manifest is a cold cache, not an error.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ManifestStore interface {
	// Load reads the manifest at path, returning a fresh empty manifest on
	// any read or parse failure.
	Load(path string) *domain.Manifest

	// Save atomically writes the full manifest back. A concurrent Load must
	// never observe a half-written file.
	Save(path string, m *domain.Manifest) error
}

// VendorStore persists the vendor bundle manifest with the same load/save
// semantics as ManifestStore.
type VendorStore interface {
	Load(path string) *domain.VendorManifest
	Save(path string, m *domain.VendorManifest) error
}

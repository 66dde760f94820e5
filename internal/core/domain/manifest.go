package domain

import "time"

// UnitEntry is the persisted build record for one unit.
type UnitEntry struct {
	Hash            string    `json:"hash"`
	FileCount       int       `json:"file_count"`
	BuiltAt         time.Time `json:"built_at"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// Manifest is the persisted map of build-unit state plus the dependency
// lockfile hash observed at the last successful run.
type Manifest struct {
	Units        map[string]UnitEntry `json:"units"`
	LockfileHash string               `json:"lockfile_hash,omitempty"`
}

// NewManifest creates an empty manifest (cold cache).
func NewManifest() *Manifest {
	return &Manifest{Units: make(map[string]UnitEntry)}
}

// Entry returns the stored entry for a unit, or nil if none exists.
func (m *Manifest) Entry(unitName string) *UnitEntry {
	e, ok := m.Units[unitName]
	if !ok {
		return nil
	}
	return &e
}

// Record stores a fresh entry for a unit after a successful build.
func (m *Manifest) Record(unitName string, hash string, fileCount int, duration time.Duration) {
	if m.Units == nil {
		m.Units = make(map[string]UnitEntry)
	}
	m.Units[unitName] = UnitEntry{
		Hash:            hash,
		FileCount:       fileCount,
		BuiltAt:         time.Now().UTC(),
		DurationSeconds: duration.Seconds(),
	}
}

// BundleResult records the outcome of one vendor bundle build.
type BundleResult struct {
	Success    bool   `json:"success"`
	SizeBytes  int64  `json:"size_bytes"`
	DurationMS int64  `json:"duration_ms"`
	Reason     string `json:"reason,omitempty"`
}

// VendorManifest is the persisted state of the vendor bundle cache,
// keyed wholesale by the lockfile hash it was built against.
type VendorManifest struct {
	LockfileHash string                  `json:"lockfile_hash"`
	Bundles      map[string]BundleResult `json:"bundles"`
}

// NewVendorManifest creates an empty vendor manifest.
func NewVendorManifest() *VendorManifest {
	return &VendorManifest{Bundles: make(map[string]BundleResult)}
}

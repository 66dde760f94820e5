package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/cas"
	"go.trai.ch/forge/internal/core/domain"
)

func TestStore_Load_Missing(t *testing.T) {
	store := cas.NewStore()

	m := store.Load(filepath.Join(t.TempDir(), "manifest.json"))
	require.NotNil(t, m)
	require.Empty(t, m.Units)
}

func TestStore_Load_Corrupt(t *testing.T) {
	store := cas.NewStore()
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	m := store.Load(path)
	require.NotNil(t, m)
	require.Empty(t, m.Units, "a corrupt manifest is a cold cache")
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := cas.NewStore()
	path := filepath.Join(t.TempDir(), "cache", "manifest.json")

	m := store.Load(path)
	m.Record("shared", "abc123", 4, 2*time.Second)
	m.LockfileHash = "lock1"
	require.NoError(t, store.Save(path, m))

	loaded := store.Load(path)
	entry := loaded.Entry("shared")
	require.NotNil(t, entry)
	require.Equal(t, "abc123", entry.Hash)
	require.Equal(t, 4, entry.FileCount)
	require.Equal(t, "lock1", loaded.LockfileHash)
}

func TestStore_Save_LeavesNoTempFiles(t *testing.T) {
	store := cas.NewStore()
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")

	m := store.Load(path)
	m.Record("a", "h", 1, time.Second)
	require.NoError(t, store.Save(path, m))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the manifest itself should remain")
}

func TestVendorStore_Roundtrip(t *testing.T) {
	store := cas.NewVendorStore()
	path := filepath.Join(t.TempDir(), "vendor", "manifest.json")

	m := store.Load(path)
	require.Empty(t, m.Bundles)

	m.LockfileHash = "lockhash"
	m.Bundles["plotly"] = domain.BundleResult{Success: true, SizeBytes: 123456, DurationMS: 900}

	require.NoError(t, store.Save(path, m))

	loaded := store.Load(path)
	require.Equal(t, "lockhash", loaded.LockfileHash)
	require.True(t, loaded.Bundles["plotly"].Success)
	require.EqualValues(t, 123456, loaded.Bundles["plotly"].SizeBytes)
}

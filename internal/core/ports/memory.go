package ports

// MemoryProbe reports a best-effort estimate of reclaimable plus free memory.
//
//go:generate go run go.uber.org/mock/mockgen -source=memory.go -destination=mocks/mock_memory.go -package=mocks
type MemoryProbe interface {
	// AvailableMB returns the OS "available" memory estimate in megabytes,
	// preferring a reclaimable-aware metric over raw free memory.
	AvailableMB() (int, error)
}

package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
)

const (
	// StoreNodeID is the graft node for the build manifest store.
	StoreNodeID graft.ID = "adapter.manifest_store"
	// VendorStoreNodeID is the graft node for the vendor manifest store.
	VendorStoreNodeID graft.ID = "adapter.vendor_store"
)

func init() {
	graft.Register(graft.Node[ports.ManifestStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestStore, error) {
			return NewStore(), nil
		},
	})

	graft.Register(graft.Node[ports.VendorStore]{
		ID:        VendorStoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VendorStore, error) {
			return NewVendorStore(), nil
		},
	})
}

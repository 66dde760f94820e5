package memory

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
)

// NodeID is the unique identifier for the memory probe graft node.
const NodeID graft.ID = "adapter.memory"

func init() {
	graft.Register(graft.Node[ports.MemoryProbe]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MemoryProbe, error) {
			return NewProbe(), nil
		},
	})
}

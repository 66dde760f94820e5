package frontend

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/adapters/fs"                  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/logger"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/shell"               //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/core/ports"
)

// NodeID is the unique identifier for the frontend strategy graft node.
const NodeID graft.ID = "engine.frontend"

func init() {
	graft.Register(graft.Node[*Strategy]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.HasherNodeID,
			fs.WorkspaceNodeID,
			shell.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Strategy, error) {
			hasher, err := graft.Dep[ports.TreeHasher](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			ws, err := graft.Dep[ports.Workspace](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return NewStrategy(hasher, runner, ws, log, telemetry), nil
		},
	})
}

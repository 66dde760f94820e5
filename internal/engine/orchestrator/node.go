package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/adapters/cas"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/fs"                  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/lock"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/logger"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/memory"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/shell"               //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/frontend"
	"go.trai.ch/forge/internal/engine/vendor"
)

// NodeID is the unique identifier for the orchestrator graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.HasherNodeID,
			fs.WorkspaceNodeID,
			cas.StoreNodeID,
			shell.NodeID,
			lock.NodeID,
			memory.NodeID,
			vendor.NodeID,
			frontend.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			hasher, err := graft.Dep[ports.TreeHasher](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			locker, err := graft.Dep[ports.Locker](ctx)
			if err != nil {
				return nil, err
			}
			probe, err := graft.Dep[ports.MemoryProbe](ctx)
			if err != nil {
				return nil, err
			}
			ws, err := graft.Dep[ports.Workspace](ctx)
			if err != nil {
				return nil, err
			}
			bundler, err := graft.Dep[*vendor.Bundler](ctx)
			if err != nil {
				return nil, err
			}
			strategy, err := graft.Dep[*frontend.Strategy](ctx)
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
			return New(hasher, store, runner, locker, probe, ws, bundler, strategy, log, telemetry), nil
		},
	})
}

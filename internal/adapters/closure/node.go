package closure

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/adapters/fs"
	"go.trai.ch/depot/internal/core/ports"
)

// NodeID is the unique identifier for the closure loader Graft node.
const NodeID graft.ID = "adapter.closure"

func init() {
	graft.Register(graft.Node[ports.Loader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID},
		Run: func(ctx context.Context) (ports.Loader, error) {
			storage, err := graft.Dep[ports.Storage](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(storage), nil
		},
	})
}

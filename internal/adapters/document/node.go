package document

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/adapters/fs"
	"go.trai.ch/depot/internal/core/ports"
)

// NodeID is the unique identifier for the manifest reader Graft node.
const NodeID graft.ID = "adapter.document"

func init() {
	graft.Register(graft.Node[ports.ManifestReader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID},
		Run: func(ctx context.Context) (ports.ManifestReader, error) {
			storage, err := graft.Dep[ports.Storage](ctx)
			if err != nil {
				return nil, err
			}
			return NewReader(storage), nil
		},
	})
}

package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/core/ports"
)

// NodeID is the unique identifier for the storage Graft node.
const NodeID graft.ID = "adapter.fs"

func init() {
	graft.Register(graft.Node[ports.Storage]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Storage, error) {
			return NewOSStorage(), nil
		},
	})
}

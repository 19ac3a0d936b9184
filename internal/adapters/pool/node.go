package pool

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/uplock/internal/core/ports"
)

const NodeID graft.ID = "adapter.pool_loader"

func init() {
	graft.Register(graft.Node[ports.PoolLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.PoolLoader, error) {
			return NewLoader(), nil
		},
	})
}

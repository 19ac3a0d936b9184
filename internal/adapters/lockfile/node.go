package lockfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/uplock/internal/adapters/logger"
	"go.trai.ch/uplock/internal/core/ports"
)

const NodeID graft.ID = "adapter.lockfile.source"

func init() {
	graft.Register(graft.Node[ports.LockSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.LockSource, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewSource(log), nil
		},
	})
}

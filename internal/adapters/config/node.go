package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/logger"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID identifies the config loader in the graft graph.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			lg, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			// The loader reads real project files here; tests swap in
			// an in-memory FileSystem through NewLoader directly.
			return NewLoader(NewOSFS(), lg), nil
		},
	})
}

package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/config"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/adapters/logger"
	"go.trai.ch/kiln/internal/adapters/shell"
	"go.trai.ch/kiln/internal/adapters/store"
	"go.trai.ch/kiln/internal/adapters/watcher"
	"go.trai.ch/kiln/internal/core/ports"
)

const (
	// AppNodeID identifies the assembled orchestrator in the graft graph.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID identifies the bundle handed to the CLI layer.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			logger.NodeID,
			store.NodeID,
			fs.HasherNodeID,
			watcher.HashCacheNodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			recordStore, err := graft.Dep[ports.BuildRecordStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			hashCache, err := graft.Dep[ports.InputHashCache](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, runner, log, recordStore, hasher, hashCache), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(application, log), nil
		},
	})
}

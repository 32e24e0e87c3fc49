package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/ports"
)

// HashCacheNodeID identifies the input hash cache in the graft graph.
//
// The watcher itself is not registered: Stop closes it for good, so it is
// session-scoped and constructed by the app when a session starts.
const HashCacheNodeID graft.ID = "adapter.hash_cache"

func init() {
	graft.Register(graft.Node[ports.InputHashCache]{
		ID:        HashCacheNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID},
		Run: func(ctx context.Context) (ports.InputHashCache, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewHashCache(hasher), nil
		},
	})
}

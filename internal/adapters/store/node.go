package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID identifies the build record store in the graft graph.
const NodeID graft.ID = "adapter.build_record_store"

func init() {
	graft.Register(graft.Node[ports.BuildRecordStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BuildRecordStore, error) {
			s, err := NewStore()
			if err != nil {
				return nil, err
			}
			return s, nil
		},
	})
}

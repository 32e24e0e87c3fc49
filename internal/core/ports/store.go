package ports

import "go.trai.ch/kiln/internal/core/domain"

// BuildRecordStore defines the interface for persisting build outcomes.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildRecordStore interface {
	// Get retrieves the build record for a given configuration hash.
	// A miss is nil, nil.
	Get(root, configHash string) (*domain.BuildRecord, error)

	// Put stores the build record.
	Put(root string, record domain.BuildRecord) error
}

package ports

import "go.trai.ch/kiln/internal/core/domain"

// Hasher computes content digests for watched files, artifacts and frozen
// build configurations.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashFile returns the hex digest of the file content at path.
	HashFile(path string) (string, error)

	// HashConfig returns the hex digest of the frozen build configuration.
	// The digest is stable across processes for identical configurations.
	HashConfig(cfg domain.BuildConfig) string
}

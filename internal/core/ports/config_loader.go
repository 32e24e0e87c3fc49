package ports

import "go.trai.ch/kiln/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration starting from the given working directory.
	// A missing config file is not an error: defaults apply.
	Load(cwd string) (*domain.ProjectConfig, error)

	// DiscoverRoot walks up from cwd to find the project root.
	// Returns the directory containing kiln.yaml, or cwd if none exists.
	DiscoverRoot(cwd string) (string, error)
}

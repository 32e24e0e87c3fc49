package app

import (
	"go.trai.ch/kiln/internal/core/ports"
)

// Components is the slice of the object graph handed to the CLI layer: the
// orchestrator itself plus the logger for top-level error reporting.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NewComponents bundles the graph roots for the CLI layer.
func NewComponents(app *App, logger ports.Logger) *Components {
	return &Components{
		App:    app,
		Logger: logger,
	}
}

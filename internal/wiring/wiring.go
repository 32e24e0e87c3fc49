// Package wiring pulls in every package that registers graft nodes. Importing
// it gives the executor the full dependency graph.
package wiring

import (
	// Adapter nodes.
	_ "go.trai.ch/kiln/internal/adapters/config"
	_ "go.trai.ch/kiln/internal/adapters/fs"
	_ "go.trai.ch/kiln/internal/adapters/logger"
	_ "go.trai.ch/kiln/internal/adapters/shell"
	_ "go.trai.ch/kiln/internal/adapters/store"
	_ "go.trai.ch/kiln/internal/adapters/watcher"
	// App nodes.
	_ "go.trai.ch/kiln/internal/app"
)

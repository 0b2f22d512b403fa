// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tupcfg/internal/adapters/backend"
	_ "go.trai.ch/tupcfg/internal/adapters/cas"
	_ "go.trai.ch/tupcfg/internal/adapters/config"
	_ "go.trai.ch/tupcfg/internal/adapters/fs"
	_ "go.trai.ch/tupcfg/internal/adapters/include"
	_ "go.trai.ch/tupcfg/internal/adapters/logger"
	_ "go.trai.ch/tupcfg/internal/adapters/shell"
	_ "go.trai.ch/tupcfg/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/tupcfg/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/tupcfg/internal/app"
	_ "go.trai.ch/tupcfg/internal/engine/driver"
)

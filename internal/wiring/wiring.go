// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/uplock/internal/adapters/config"
	_ "go.trai.ch/uplock/internal/adapters/lockfile"
	_ "go.trai.ch/uplock/internal/adapters/logger"
	_ "go.trai.ch/uplock/internal/adapters/pool"
	_ "go.trai.ch/uplock/internal/adapters/report"
	_ "go.trai.ch/uplock/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/uplock/internal/app"
)

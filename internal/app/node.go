package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/uplock/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/uplock/internal/adapters/lockfile"           //nolint:depguard // Wired in app layer
	"go.trai.ch/uplock/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/uplock/internal/adapters/pool"               //nolint:depguard // Wired in app layer
	"go.trai.ch/uplock/internal/adapters/report"             //nolint:depguard // Wired in app layer
	"go.trai.ch/uplock/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/uplock/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			lockfile.NodeID,
			pool.NodeID,
			report.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	source, err := graft.Dep[ports.LockSource](ctx)
	if err != nil {
		return nil, err
	}

	poolLoader, err := graft.Dep[ports.PoolLoader](ctx)
	if err != nil {
		return nil, err
	}

	reporter, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, source, poolLoader, reporter, log, telemetry), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, telemetry), nil
}

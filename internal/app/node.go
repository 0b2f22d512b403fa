package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tupcfg/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/tupcfg/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/tupcfg/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/tupcfg/internal/adapters/include"            //nolint:depguard // Wired in app layer
	"go.trai.ch/tupcfg/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/tupcfg/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/tupcfg/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/tupcfg/internal/core/ports"
	"go.trai.ch/tupcfg/internal/engine/driver"
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
			config.SettingsNodeID,
			config.NodeID,
			driver.NodeID,
			include.NodeID,
			cas.NodeID,
			fs.EmitterNodeID,
			watcher.NodeID,
			logger.NodeID,
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
	settings, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}

	projects, err := graft.Dep[ports.ProjectLoader](ctx)
	if err != nil {
		return nil, err
	}

	drv, err := graft.Dep[*driver.Driver](ctx)
	if err != nil {
		return nil, err
	}

	scanner, err := graft.Dep[ports.IncludeScanner](ctx)
	if err != nil {
		return nil, err
	}

	stores, err := graft.Dep[ports.GeneratedFileStoreOpener](ctx)
	if err != nil {
		return nil, err
	}

	emitters, err := graft.Dep[ports.EmitterFactory](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(settings, projects, drv, scanner, stores, emitters, watchers, log), nil
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

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: tel,
	}, nil
}

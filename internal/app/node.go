package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/adapters/closure"  //nolint:depguard // Wired in app layer
	"go.trai.ch/depot/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/depot/internal/adapters/document" //nolint:depguard // Wired in app layer
	"go.trai.ch/depot/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/depot/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles what the command line needs from the graph.
type Components struct {
	App          *App
	Logger       ports.Logger
	ConfigLoader ports.ConfigLoader
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			document.NodeID,
			fs.NodeID,
			closure.NodeID,
			resolver.RegistryNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	manifests, err := graft.Dep[ports.ManifestReader](ctx)
	if err != nil {
		return nil, err
	}

	storage, err := graft.Dep[ports.Storage](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.Loader](ctx)
	if err != nil {
		return nil, err
	}

	registry, err := graft.Dep[*resolver.Registry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(configLoader, manifests, storage, loader, registry, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:          a,
		Logger:       log,
		ConfigLoader: configLoader,
	}, nil
}

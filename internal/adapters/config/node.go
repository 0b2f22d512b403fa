package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tupcfg/internal/adapters/fs"
	"go.trai.ch/tupcfg/internal/adapters/logger"
	"go.trai.ch/tupcfg/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the project loader node.
	NodeID graft.ID = "adapter.project_loader"
	// SettingsNodeID is the unique identifier for the settings loader node.
	SettingsNodeID graft.ID = "adapter.settings_loader"
)

func init() {
	graft.Register(graft.Node[ports.ProjectLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.ResolverNodeID, fs.VerifierNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ProjectLoader, error) {
			resolver, err := graft.Dep[*fs.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			verifier, err := graft.Dep[*fs.Verifier](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(resolver, verifier, log), nil
		},
	})

	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsLoader, error) {
			return NewSettingsLoader(), nil
		},
	})
}

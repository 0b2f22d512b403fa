package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tupcfg/internal/adapters/cas"
	"go.trai.ch/tupcfg/internal/adapters/logger"
	"go.trai.ch/tupcfg/internal/core/ports"
)

const (
	WalkerNodeID   graft.ID = "adapter.fs.walker"
	ResolverNodeID graft.ID = "adapter.fs.resolver"
	VerifierNodeID graft.ID = "adapter.fs.verifier"
	HasherNodeID   graft.ID = "adapter.fs.hasher"
	EmitterNodeID  graft.ID = "adapter.fs.emitter"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[*Resolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Resolver, error) {
			return NewResolver(), nil
		},
	})

	graft.Register(graft.Node[*Verifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Verifier, error) {
			return NewVerifier(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.EmitterFactory]{
		ID:        EmitterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cas.NodeID, HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.EmitterFactory, error) {
			stores, err := graft.Dep[ports.GeneratedFileStoreOpener](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewEmitterFactory(stores, hasher, log), nil
		},
	})
}

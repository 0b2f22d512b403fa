package backend

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tupcfg/internal/adapters/fs"
	"go.trai.ch/tupcfg/internal/adapters/include"
	"go.trai.ch/tupcfg/internal/adapters/logger"
	"go.trai.ch/tupcfg/internal/adapters/telemetry/progrock"
	"go.trai.ch/tupcfg/internal/core/ports"
)

// NodeID is the unique identifier for the generator factory node.
const NodeID graft.ID = "adapter.generator_factory"

func init() {
	graft.Register(graft.Node[ports.GeneratorFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{include.NodeID, fs.WalkerNodeID, progrock.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.GeneratorFactory, error) {
			scanner, err := graft.Dep[ports.IncludeScanner](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(scanner, walker, tel, log), nil
		},
	})
}

package driver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tupcfg/internal/adapters/backend"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tupcfg/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tupcfg/internal/adapters/include"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tupcfg/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tupcfg/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tupcfg/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tupcfg/internal/core/ports"
)

// NodeID is the unique identifier for the driver Graft node.
const NodeID graft.ID = "engine.driver"

func init() {
	graft.Register(graft.Node[*Driver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.EmitterNodeID,
			backend.NodeID,
			shell.NodeID,
			include.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Driver, error) {
			emitters, err := graft.Dep[ports.EmitterFactory](ctx)
			if err != nil {
				return nil, err
			}

			generators, err := graft.Dep[ports.GeneratorFactory](ctx)
			if err != nil {
				return nil, err
			}

			scripts, err := graft.Dep[ports.ScriptWriter](ctx)
			if err != nil {
				return nil, err
			}

			scanner, err := graft.Dep[ports.IncludeScanner](ctx)
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

			return New(emitters, generators, scripts, scanner, tel, log), nil
		},
	})
}

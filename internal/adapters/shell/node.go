package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tupcfg/internal/adapters/logger"
	"go.trai.ch/tupcfg/internal/core/ports"
)

const NodeID graft.ID = "adapter.script_writer"

func init() {
	graft.Register(graft.Node[ports.ScriptWriter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ScriptWriter, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewScriptWriter(log), nil
		},
	})
}

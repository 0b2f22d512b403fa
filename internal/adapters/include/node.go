package include

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tupcfg/internal/core/ports"
)

const NodeID graft.ID = "adapter.include_scanner"

func init() {
	graft.Register(graft.Node[ports.IncludeScanner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.IncludeScanner, error) {
			return NewSolver(0), nil
		},
	})
}

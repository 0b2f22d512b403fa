package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tupcfg/internal/core/ports"
)

const NodeID graft.ID = "adapter.generated_file_store"

func init() {
	graft.Register(graft.Node[ports.GeneratedFileStoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.GeneratedFileStoreOpener, error) {
			return NewOpener(), nil
		},
	})
}

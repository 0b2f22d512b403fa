package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tupcfg/internal/adapters/logger"
	"go.trai.ch/tupcfg/internal/core/ports"
)

// NodeID is the unique identifier for the watcher factory Graft node.
const NodeID graft.ID = "adapter.watcher_factory"

// Factory implements ports.WatcherFactory.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a Factory whose watchers report errors to logger.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// New creates a watcher.
func (f *Factory) New() (ports.Watcher, error) {
	return NewWatcher(f.logger)
}

func init() {
	graft.Register(graft.Node[ports.WatcherFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.WatcherFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log), nil
		},
	})
}

package app

import "go.trai.ch/tupcfg/internal/core/ports"

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

// Close releases the components holding resources.
func (c *Components) Close() error {
	if c.Telemetry == nil {
		return nil
	}
	return c.Telemetry.Close()
}

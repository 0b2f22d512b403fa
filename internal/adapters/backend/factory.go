// Package backend selects the generator of a build.
package backend

import (
	"go.trai.ch/tupcfg/internal/adapters/makefile"
	"go.trai.ch/tupcfg/internal/adapters/tup"
	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/tupcfg/internal/core/ports"
)

var _ ports.GeneratorFactory = (*Factory)(nil)

// Factory implements ports.GeneratorFactory.
type Factory struct {
	scanner   ports.IncludeScanner
	walker    makefile.Walker
	telemetry ports.Telemetry
	logger    ports.Logger
}

// NewFactory creates a new Factory.
func NewFactory(
	scanner ports.IncludeScanner,
	walker makefile.Walker,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Factory {
	return &Factory{scanner: scanner, walker: walker, telemetry: telemetry, logger: logger}
}

// New returns the generator selected by b, writing through em.
func (f *Factory) New(b *domain.Build, em ports.Emitter) (ports.Generator, error) {
	switch b.Generator() {
	case domain.GeneratorTup:
		return tup.New(b, em, f.walker, f.logger), nil
	case domain.GeneratorMakefile:
		return makefile.New(b, em, f.scanner, f.walker, f.telemetry, f.logger), nil
	}
	return nil, domain.Fail(domain.ErrUnknownGenerator,
		"use --generator tup or --generator makefile", "generator", b.Generator().String())
}

package ports

import (
	"context"

	"go.trai.ch/tupcfg/internal/core/domain"
)

// Generator turns the visited graph of one build into native build files.
// Callers invoke Begin, then Visit once per node, then End when no visit
// failed. Close is always called last.
//
//go:generate mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type Generator interface {
	// Name returns the backend name.
	Name() string
	// Begin starts a generation pass.
	Begin(ctx context.Context) error
	// Visit records a node. Nothing is written before End.
	Visit(ctx context.Context, n domain.Node) error
	// End writes the files for everything visited.
	End(ctx context.Context) error
	// Close releases the generator.
	Close() error
}

// GeneratorFactory creates the generator selected by a build.
type GeneratorFactory interface {
	New(b *domain.Build, em Emitter) (Generator, error)
}

// ScriptWriter materializes wrapper scripts.
type ScriptWriter interface {
	// Materialize writes one script at path running every command of the batch.
	// A non-empty cwd replaces the working directory of each command.
	Materialize(em Emitter, path string, commands []*domain.Command, cwd string) (EmitStatus, error)
}

// IncludeScanner resolves the headers reachable from a C or C++ file.
type IncludeScanner interface {
	// Scan returns the sorted absolute paths of every file reachable from root
	// through include directives, using searchDirs in order.
	Scan(ctx context.Context, root string, searchDirs []string) ([]string, error)
	// Configure sets the worker pool size; serial selects the single threaded variant.
	Configure(jobs int, serial bool)
	// Reset drops every cached lookup.
	Reset()
}

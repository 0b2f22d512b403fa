// Package driver runs a generation pass over a build graph.
package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/tupcfg/internal/core/ports"
	"go.trai.ch/zerr"
)

// DirMode is the mode of directories created in the build tree.
const DirMode os.FileMode = 0o755

// Driver generates the native build files of a Build.
type Driver struct {
	emitters   ports.EmitterFactory
	generators ports.GeneratorFactory
	scripts    ports.ScriptWriter
	scanner    ports.IncludeScanner
	telemetry  ports.Telemetry
	logger     ports.Logger
}

// New creates a new Driver.
func New(
	emitters ports.EmitterFactory,
	generators ports.GeneratorFactory,
	scripts ports.ScriptWriter,
	scanner ports.IncludeScanner,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Driver {
	return &Driver{
		emitters:   emitters,
		generators: generators,
		scripts:    scripts,
		scanner:    scanner,
		telemetry:  telemetry,
		logger:     logger,
	}
}

// Generate writes the build files of b and of its dependency sub-build, the
// sub-build first. It returns the emission statistics of both builds.
func (d *Driver) Generate(ctx context.Context, b *domain.Build) (stats ports.EmitStats, err error) {
	ctx, vertex := d.telemetry.Record(ctx, "generate "+label(b))
	defer func() {
		if err == nil && !stats.Changed() {
			vertex.Cached()
		}
		vertex.Complete(err)
	}()

	if err := mkdir(b.Directory()); err != nil {
		return stats, err
	}

	if sub := b.DependencyBuild(); sub != nil {
		subStats, err := d.Generate(ctx, sub)
		if err != nil {
			return stats, zerr.With(err, "build", label(sub))
		}
		stats = add(stats, subStats)
	}

	for _, t := range b.Targets() {
		if err := mkdir(filepath.Dir(t.Path().String())); err != nil {
			return stats, err
		}
	}

	own, err := d.generate(ctx, b)
	stats = add(stats, own)
	if err != nil {
		return stats, err
	}

	d.logger.Info(label(b) + ": generated " + strconv.Itoa(own.Created+own.Updated) + " files, " +
		strconv.Itoa(own.Unchanged) + " unchanged, " + strconv.Itoa(own.Removed) + " removed")
	return stats, nil
}

func (d *Driver) generate(ctx context.Context, b *domain.Build) (ports.EmitStats, error) {
	d.scanner.Reset()

	em, err := d.emitters.Open(b.Directory())
	if err != nil {
		return ports.EmitStats{}, err
	}

	if err := d.run(ctx, b, em); err != nil {
		return em.Stats(), err
	}
	if err := em.Flush(); err != nil {
		return em.Stats(), err
	}
	return em.Stats(), nil
}

// run drives one generator through its Begin, Visit and End phases. End is
// skipped when a visit fails; the generator is closed either way.
func (d *Driver) run(ctx context.Context, b *domain.Build, em ports.Emitter) (err error) {
	gen, err := d.generators.New(b, em)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := gen.Close(); cerr != nil {
			err = errors.Join(err, zerr.With(cerr, "generator", gen.Name()))
		}
	}()

	ctx, vertex := d.telemetry.Record(ctx, gen.Name()+" "+label(b))
	before := em.Stats()
	defer func() {
		if err == nil && !sub(em.Stats(), before).Changed() {
			vertex.Cached()
		}
		vertex.Complete(err)
	}()

	if err := gen.Begin(ctx); err != nil {
		return zerr.With(err, "generator", gen.Name())
	}

	var commands []*domain.Command
	seen := make(map[domain.Node]struct{})
	for n := range b.Walk(seen) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := gen.Visit(ctx, n); err != nil {
			return zerr.With(err, "node", n.Path().String())
		}
		if c, ok := n.(*domain.Command); ok && c.Build() == b {
			commands = append(commands, c)
		}
	}

	if err := d.materialize(em, b, commands); err != nil {
		return err
	}

	if err := gen.End(ctx); err != nil {
		return zerr.With(err, "generator", gen.Name())
	}
	return nil
}

// materialize writes one wrapper script per distinct script path, in the
// order the paths were first visited.
func (d *Driver) materialize(em ports.Emitter, b *domain.Build, commands []*domain.Command) error {
	var order []domain.Path
	batches := make(map[domain.Path][]*domain.Command)
	for _, c := range commands {
		p := c.ScriptPath()
		if _, ok := batches[p]; !ok {
			order = append(order, p)
		}
		batches[p] = append(batches[p], c)
	}

	for _, p := range order {
		if err := mkdir(filepath.Dir(p.String())); err != nil {
			return err
		}
		if _, err := d.scripts.Materialize(em, p.String(), batches[p], b.ForcedWorkingDirectory()); err != nil {
			return err
		}
	}
	return nil
}

func mkdir(dir string) error {
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return domain.Fail(domain.ErrGeneration, "check the permissions of the build directory",
			"path", dir, "cause", err.Error())
	}
	return nil
}

func label(b *domain.Build) string {
	if b.Name() != "" {
		return b.Name()
	}
	return b.Directory()
}

func add(a, b ports.EmitStats) ports.EmitStats {
	return ports.EmitStats{
		Created:   a.Created + b.Created,
		Updated:   a.Updated + b.Updated,
		Unchanged: a.Unchanged + b.Unchanged,
		Removed:   a.Removed + b.Removed,
	}
}

func sub(a, b ports.EmitStats) ports.EmitStats {
	return ports.EmitStats{
		Created:   a.Created - b.Created,
		Updated:   a.Updated - b.Updated,
		Unchanged: a.Unchanged - b.Unchanged,
		Removed:   a.Removed - b.Removed,
	}
}

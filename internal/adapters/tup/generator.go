// Package tup generates Tupfiles and the Makefile that drives tup.
package tup

import (
	"context"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/tupcfg/internal/adapters/makefile"
	"go.trai.ch/tupcfg/internal/adapters/shell"
	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/tupcfg/internal/core/ports"
	"go.trai.ch/zerr"
)

// FileName is the name of a generated rule file.
const FileName = "Tupfile"

var _ ports.Generator = (*Generator)(nil)

// Generator implements ports.Generator for tup.
type Generator struct {
	build  *domain.Build
	em     ports.Emitter
	walker makefile.Walker
	logger ports.Logger

	begun   bool
	targets []*domain.Target
	foreign []*domain.Target
	seen    map[*domain.Target]bool
}

// New creates a tup generator for b writing through em.
func New(b *domain.Build, em ports.Emitter, walker makefile.Walker, logger ports.Logger) *Generator {
	return &Generator{build: b, em: em, walker: walker, logger: logger}
}

// Name returns the backend name.
func (g *Generator) Name() string { return domain.GeneratorTup.String() }

// Begin starts a generation pass.
func (g *Generator) Begin(_ context.Context) error {
	g.begun = true
	g.targets = nil
	g.foreign = nil
	g.seen = make(map[*domain.Target]bool)
	return nil
}

// Visit records the targets of the pass.
func (g *Generator) Visit(_ context.Context, n domain.Node) error {
	if !g.begun {
		return zerr.With(zerr.New("visit before begin"), "generator", g.Name())
	}
	t, ok := n.(*domain.Target)
	if !ok || g.seen[t] {
		return nil
	}
	g.seen[t] = true

	switch {
	case t.Build() != g.build:
		g.foreign = append(g.foreign, t)
	case t.IsPrimary():
		g.targets = append(g.targets, t)
	}
	return nil
}

// Root returns the directory tup runs in for b: the project directory when
// the build directory lies inside it, otherwise the build directory.
func Root(b *domain.Build) string {
	if domain.NewPath("", b.Directory()).Within(b.ProjectDir()) {
		return b.ProjectDir()
	}
	return b.Directory()
}

// End writes one Tupfile per output directory and the root Makefile, then
// removes Tupfiles left over from earlier passes.
func (g *Generator) End(_ context.Context) error {
	if !g.begun {
		return zerr.With(zerr.New("end before begin"), "generator", g.Name())
	}
	ordered := g.build.ProducersFirst(g.targets)

	byDir := make(map[string][]*domain.Target)
	for _, t := range ordered {
		dir := t.Path().Dir().String()
		for _, o := range t.Command().Outputs()[1:] {
			if o.Path().Dir().String() != dir {
				return domain.Fail(domain.ErrGeneration,
					"tup only lets a rule write into its own directory; move the extra output next to "+t.Path().Base(),
					"target", t.Path().String(), "output", o.Path().String())
			}
		}
		byDir[dir] = append(byDir[dir], t)
	}

	root := Root(g.build)
	written := make(map[string]bool, len(byDir))
	for _, dir := range slices.Sorted(maps.Keys(byDir)) {
		path := filepath.Join(dir, FileName)
		if _, err := g.em.Emit(path, g.renderTupfile(dir, root, byDir[dir]), makefile.FileMode); err != nil {
			return err
		}
		written[path] = true
	}

	self := filepath.Join(g.build.Directory(), makefile.FileName)
	if _, err := g.em.Emit(self, g.renderMakefile(root, ordered, self), makefile.FileMode); err != nil {
		return err
	}

	return g.removeStale(written)
}

// Close releases the generator.
func (g *Generator) Close() error {
	g.begun = false
	return nil
}

func (g *Generator) renderTupfile(dir, root string, targets []*domain.Target) []byte {
	var sb strings.Builder
	sb.WriteString(domain.GeneratedMarker + "\n")
	for _, t := range targets {
		c := t.Command()

		var inputs []string
		for _, dep := range t.Dependencies() {
			if _, isCommand := dep.(*domain.Command); isCommand || !dep.Path().Within(root) {
				continue
			}
			inputs = append(inputs, escape(rel(dep.Path().String(), dir)))
		}
		outputs := make([]string, 0, len(c.Outputs()))
		for _, o := range c.Outputs() {
			outputs = append(outputs, escape(rel(o.Path().String(), dir)))
		}

		sb.WriteString(":")
		for _, in := range inputs {
			sb.WriteString(" " + in)
		}
		sb.WriteString(" |> ^ " + escape(c.Action()+" "+t.Path().Base()) + "^ ")
		sb.WriteString(escape(shell.Invocation(c, dir)))
		sb.WriteString(" |> " + strings.Join(outputs, " ") + "\n")
	}
	return []byte(sb.String())
}

func (g *Generator) renderMakefile(root string, ordered []*domain.Target, self string) []byte {
	dir := g.build.Directory()
	cdRoot := "@cd " + makefile.Recipe(rel(root, dir)) + " && "
	bootstrap := "{ test -d .tup || $(TUP) init; } && "

	w := makefile.NewWriter()
	w.Default("TUPCFG", "tupcfg")
	w.Default("TUP", "tup")
	w.Blank()
	w.Rule([]string{".SUFFIXES"}, nil)
	w.Phony("all")
	w.Blank()

	foreign := sortedByPath(g.delegated())
	prerequisites := make([]string, 0, len(foreign))
	for _, t := range foreign {
		prerequisites = append(prerequisites, makefile.Escape(rel(t.Path().String(), dir)))
	}
	w.Rule([]string{"all"}, prerequisites, cdRoot+bootstrap+"$(TUP) upd")
	w.Blank()
	w.Rule([]string{"FORCE"}, nil)

	for _, t := range foreign {
		sub := t.Build().Directory()
		w.Blank()
		w.Rule([]string{makefile.Escape(rel(t.Path().String(), dir))}, []string{"FORCE"},
			"@$(MAKE) --no-print-directory -C "+makefile.Recipe(rel(sub, dir))+" "+
				makefile.Recipe(rel(t.Path().String(), sub)))
	}

	for _, t := range ordered {
		w.Blank()
		w.Rule([]string{makefile.Escape(rel(t.Path().String(), dir))}, []string{"FORCE"},
			cdRoot+bootstrap+"$(TUP) upd "+makefile.Recipe(rel(t.Path().String(), root)))
	}

	if len(g.build.ConfigFiles()) > 0 {
		w.Blank()
		makefile.ReconfigureRule(w, g.build, self)
	}
	return w.Bytes()
}

// delegated returns the targets built by the Makefiles of other builds: the
// visited foreign targets and every primary target of the dependency
// sub-build, so that all builds the sub-build before the tup tree.
func (g *Generator) delegated() []*domain.Target {
	targets := slices.Clone(g.foreign)
	sub := g.build.DependencyBuild()
	if sub == nil {
		return targets
	}
	for _, t := range sub.Targets() {
		if t.IsPrimary() && !slices.Contains(targets, t) {
			targets = append(targets, t)
		}
	}
	return targets
}

func (g *Generator) removeStale(written map[string]bool) error {
	dir := g.build.Directory()
	ignores := makefile.StaleIgnores(g.build)

	var stale []string
	for path := range g.walker.WalkNamed(dir, ignores, FileName) {
		if written[path] || !makefile.IsGenerated(g.em, path) {
			continue
		}
		stale = append(stale, path)
	}
	for _, path := range stale {
		if err := g.em.Remove(path); err != nil {
			return err
		}
		g.logger.Debug("removed stale Tupfile " + path)
	}
	return nil
}

// escape protects the characters tup expands in rule text.
func escape(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

func rel(p, dir string) string {
	r, err := filepath.Rel(dir, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(r)
}

func sortedByPath(targets []*domain.Target) []*domain.Target {
	out := slices.Clone(targets)
	slices.SortFunc(out, func(a, b *domain.Target) int {
		return strings.Compare(a.Path().String(), b.Path().String())
	})
	return out
}

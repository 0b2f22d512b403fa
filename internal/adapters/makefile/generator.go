package makefile

import (
	"context"
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/tupcfg/internal/adapters/shell"
	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/tupcfg/internal/core/ports"
	"go.trai.ch/zerr"
)

// FileName is the name of the generated Makefile in the build directory.
const FileName = "Makefile"

// FileMode is the mode of newly created Makefiles and dependency files.
const FileMode fs.FileMode = 0o644

// Walker finds files by name below a directory.
type Walker interface {
	WalkNamed(root string, ignores []string, names ...string) iter.Seq[string]
}

var _ ports.Generator = (*Generator)(nil)

// Generator implements ports.Generator for GNU make.
type Generator struct {
	build     *domain.Build
	em        ports.Emitter
	scanner   ports.IncludeScanner
	walker    Walker
	telemetry ports.Telemetry
	logger    ports.Logger

	begun   bool
	targets []*domain.Target
	foreign []*domain.Target
	seen    map[*domain.Target]bool
}

// New creates a Makefile generator for b writing through em.
func New(
	b *domain.Build,
	em ports.Emitter,
	scanner ports.IncludeScanner,
	walker Walker,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Generator {
	return &Generator{
		build:     b,
		em:        em,
		scanner:   scanner,
		walker:    walker,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Name returns the backend name.
func (g *Generator) Name() string { return domain.GeneratorMakefile.String() }

// Begin starts a generation pass.
func (g *Generator) Begin(_ context.Context) error {
	g.begun = true
	g.targets = nil
	g.foreign = nil
	g.seen = make(map[*domain.Target]bool)
	return nil
}

// Visit records the targets of the pass. Targets of other builds are
// delegated to the Makefile of their own build.
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

// End writes the Makefile and the dependency files of the pass, then removes
// dependency files left over from earlier passes.
func (g *Generator) End(ctx context.Context) error {
	if !g.begun {
		return zerr.With(zerr.New("end before begin"), "generator", g.Name())
	}
	dir := g.build.Directory()
	ordered := g.build.ProducersFirst(g.targets)

	depfiles, err := g.writeDepfiles(ctx, ordered)
	if err != nil {
		return err
	}

	self := filepath.Join(dir, FileName)
	content := g.render(ordered, depfiles, self)
	if _, err := g.em.Emit(self, content, FileMode); err != nil {
		return err
	}

	return g.removeStale(depfiles)
}

// Close releases the generator.
func (g *Generator) Close() error {
	g.begun = false
	return nil
}

type depfile struct {
	target  *domain.Target
	path    string
	sources []string
	dirs    []string
}

func (g *Generator) writeDepfiles(ctx context.Context, ordered []*domain.Target) ([]depfile, error) {
	var out []depfile
	for _, t := range ordered {
		c := t.Command()
		sources := cSources(c)
		if len(sources) == 0 {
			continue
		}
		dirs := SearchDirs(c.Argv(), c.WorkingDirectory().String())

		headers, err := g.scan(ctx, sources, dirs)
		if err != nil {
			return nil, err
		}

		d := depfile{
			target:  t,
			path:    t.Path().String() + DepfileSuffix,
			sources: sources,
			dirs:    dirs,
		}
		names := []string{g.rel(t.Path().String()), g.rel(d.path)}
		if _, err := g.em.Emit(d.path, RenderDepfile(names, headers), FileMode); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (g *Generator) scan(ctx context.Context, sources, dirs []string) ([]string, error) {
	scans := make([][]string, 0, len(sources))
	for _, src := range sources {
		vctx, vertex := g.telemetry.Record(ctx, "scan "+src)
		found, err := g.scanner.Scan(vctx, src, dirs)
		vertex.Complete(err)
		if err != nil {
			return nil, zerr.With(err, "source", src)
		}
		scans = append(scans, found)
	}
	return UnionHeaders(sources, scans...), nil
}

func (g *Generator) removeStale(current []depfile) error {
	keep := make(map[string]bool, len(current))
	for _, d := range current {
		keep[d.path] = true
	}
	dir := g.build.Directory()
	ignores := StaleIgnores(g.build)

	var stale []string
	for path := range g.walker.WalkNamed(dir, ignores, "*"+DepfileSuffix) {
		if keep[path] || !IsGenerated(g.em, path) {
			continue
		}
		stale = append(stale, path)
	}
	for _, path := range stale {
		if err := g.em.Remove(path); err != nil {
			return err
		}
		g.logger.Debug("removed stale dependency file " + path)
	}
	return nil
}

// StaleIgnores returns the directories a stale file sweep of b skips: the
// dependency sub-build's tree while b has a sub-build that sweeps it itself.
// Without one the whole build tree is swept, so files left by a removed
// sub-build go too.
func StaleIgnores(b *domain.Build) []string {
	if b.DependencyBuild() == nil {
		return nil
	}
	return []string{filepath.Join(b.Directory(), domain.DependencyDir)}
}

// render returns the Makefile content.
func (g *Generator) render(ordered []*domain.Target, depfiles []depfile, self string) []byte {
	w := NewWriter()
	w.Default("TUPCFG", "tupcfg")
	w.Blank()
	w.Rule([]string{".SUFFIXES"}, nil)
	w.Phony("all", "clean")
	w.Blank()

	all := make([]string, 0, len(ordered)+len(depfiles))
	for _, t := range topLevel(ordered) {
		all = append(all, Escape(g.rel(t.Path().String())))
	}
	for _, d := range depfiles {
		all = append(all, Escape(g.rel(d.path)))
	}
	w.Rule([]string{"all"}, all)

	for _, t := range ordered {
		g.writeTargetRule(w, t)
	}

	if len(g.foreign) > 0 {
		w.Blank()
		w.Rule([]string{"FORCE"}, nil)
		for _, t := range sortedByPath(g.foreign) {
			sub := t.Build().Directory()
			w.Blank()
			w.Rule([]string{Escape(g.rel(t.Path().String()))}, []string{"FORCE"},
				"@$(MAKE) --no-print-directory -C "+Recipe(g.rel(sub))+" "+Recipe(Rel(t.Path(), sub)))
		}
	}

	for _, d := range depfiles {
		g.writeDepfileRule(w, d)
	}

	w.Blank()
	w.Rule([]string{"clean"}, nil, g.cleanRecipe(ordered, depfiles))

	if len(g.build.ConfigFiles()) > 0 {
		w.Blank()
		ReconfigureRule(w, g.build, self)
	}

	if len(depfiles) > 0 {
		w.Blank()
		for _, d := range depfiles {
			w.Include(Escape(g.rel(d.path)))
		}
	}
	return w.Bytes()
}

func (g *Generator) writeTargetRule(w *Writer, t *domain.Target) {
	c := t.Command()
	var prerequisites []string
	for _, dep := range t.Dependencies() {
		if !g.build.InTree(dep.Path()) {
			continue
		}
		prerequisites = append(prerequisites, Escape(g.rel(dep.Path().String())))
	}

	w.Blank()
	w.Rule([]string{Escape(g.rel(t.Path().String()))}, prerequisites,
		"@sh "+Recipe(g.rel(c.ScriptPath().String()))+" "+Recipe(shell.Key(c)))

	for _, extra := range c.Outputs()[1:] {
		w.Rule([]string{Escape(g.rel(extra.Path().String()))}, []string{Escape(g.rel(t.Path().String()))})
	}
}

func (g *Generator) writeDepfileRule(w *Writer, d depfile) {
	var prerequisites []string
	for _, src := range d.sources {
		if g.build.InTree(domain.NewPath("", src)) {
			prerequisites = append(prerequisites, Escape(g.rel(src)))
		}
	}

	var sb strings.Builder
	sb.WriteString("@$(TUPCFG) includes --depfile " + Recipe(g.rel(d.target.Path().String())))
	for _, dir := range d.dirs {
		sb.WriteString(" -I " + Recipe(dir))
	}
	for _, src := range d.sources {
		sb.WriteString(" " + Recipe(src))
	}
	sb.WriteString(" > $@")

	w.Blank()
	w.Rule([]string{Escape(g.rel(d.path))}, prerequisites, sb.String())
}

// cleanRecipe removes every artifact of the build and of its dependency
// sub-build and every dependency file, counting the files that existed.
func (g *Generator) cleanRecipe(ordered []*domain.Target, depfiles []depfile) string {
	var files []string
	for _, t := range ordered {
		for _, o := range t.Command().Outputs() {
			files = append(files, Recipe(g.rel(o.Path().String())))
		}
	}
	if sub := g.build.DependencyBuild(); sub != nil {
		for _, t := range sub.Targets() {
			if !t.IsPrimary() {
				continue
			}
			for _, o := range t.Command().Outputs() {
				files = append(files, Recipe(g.rel(o.Path().String())))
			}
		}
	}
	for _, d := range depfiles {
		files = append(files, Recipe(g.rel(d.path)))
	}
	if len(files) == 0 {
		return `@echo "removed 0 files"`
	}
	return `@n=0; for f in ` + strings.Join(files, " ") +
		`; do if [ -e "$$f" ]; then rm -f "$$f" && n=$$((n+1)); fi; done; echo "removed $$n files"`
}

func (g *Generator) rel(p string) string {
	rel, err := filepath.Rel(g.build.Directory(), p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// topLevel returns the targets no other target of the list consumes.
func topLevel(ordered []*domain.Target) []*domain.Target {
	consumed := make(map[*domain.Target]bool)
	for _, t := range ordered {
		for _, dep := range t.Dependencies() {
			dt, ok := dep.(*domain.Target)
			if !ok || dt.Command() == nil {
				continue
			}
			consumed[dt.Command().Target()] = true
		}
	}
	var out []*domain.Target
	for _, t := range ordered {
		if !consumed[t] {
			out = append(out, t)
		}
	}
	return out
}

func sortedByPath(targets []*domain.Target) []*domain.Target {
	out := slices.Clone(targets)
	slices.SortFunc(out, func(a, b *domain.Target) int {
		return strings.Compare(a.Path().String(), b.Path().String())
	})
	return out
}

// IsGenerated reports whether path was written by tupcfg, either because the
// emitter recorded it or because it starts with the generated marker.
func IsGenerated(em ports.Emitter, path string) bool {
	if em.IsGenerated(path) {
		return true
	}
	return hasMarker(path)
}

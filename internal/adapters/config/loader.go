// Package config loads the project description and the tool settings.
package config

import (
	"context"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/tupcfg/internal/core/ports"
	"go.trai.ch/zerr"
)

// PathResolver expands glob patterns relative to a root directory.
type PathResolver interface {
	Resolve(patterns []string, root string) ([]string, error)
}

// DirVerifier reports directories that do not exist.
type DirVerifier interface {
	MissingDirs(dirs ...string) ([]string, error)
}

var _ ports.ProjectLoader = (*Loader)(nil)

// Loader implements ports.ProjectLoader for HCL project descriptions.
type Loader struct {
	resolver PathResolver
	verifier DirVerifier
	logger   ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(resolver PathResolver, verifier DirVerifier, logger ports.Logger) *Loader {
	return &Loader{resolver: resolver, verifier: verifier, logger: logger}
}

type projectFile struct {
	Projects     []*projectBlock    `hcl:"project,block"`
	Sources      []*sourceBlock     `hcl:"source,block"`
	SourceSets   []*sourceSetBlock  `hcl:"sources,block"`
	Targets      []*targetBlock     `hcl:"target,block"`
	Dependencies []*dependencyBlock `hcl:"dependency,block"`
}

type projectBlock struct {
	Name   string   `hcl:"name,label"`
	Remain hcl.Body `hcl:",remain"`
}

type sourceBlock struct {
	Name      string         `hcl:"name,label"`
	Path      hcl.Expression `hcl:"path"`
	Directory hcl.Expression `hcl:"directory,optional"`
}

type sourceSetBlock struct {
	Name     string         `hcl:"name,label"`
	Patterns hcl.Expression `hcl:"patterns"`
}

type targetBlock struct {
	Name             string         `hcl:"name,label"`
	Path             hcl.Expression `hcl:"path"`
	Action           hcl.Expression `hcl:"action,optional"`
	Inputs           hcl.Expression `hcl:"inputs,optional"`
	Args             hcl.Expression `hcl:"args,optional"`
	Env              hcl.Expression `hcl:"env,optional"`
	OSEnv            hcl.Expression `hcl:"os_env,optional"`
	Outputs          hcl.Expression `hcl:"outputs,optional"`
	WorkingDirectory hcl.Expression `hcl:"working_directory,optional"`
	Script           hcl.Expression `hcl:"script,optional"`
}

type dependencyBlock struct {
	Name      string         `hcl:"name,label"`
	SourceDir hcl.Expression `hcl:"source_dir"`
	Targets   []*targetBlock `hcl:"target,block"`
}

// Load parses the project file named by settings and returns its build graph.
func (l *Loader) Load(ctx context.Context, settings domain.Settings) (*domain.Build, error) {
	path := domain.NewPath(settings.ProjectDir, settings.ProjectFile).String()

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diagnosticsError(diags, "fix the syntax of the project file", "file", path)
	}

	var parsed projectFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, diagnosticsError(diags, "fix the structure of the project file", "file", path)
	}
	if len(parsed.Projects) > 1 {
		return nil, domain.Fail(domain.ErrConfiguration,
			"declare a single project block", "file", path)
	}

	b := domain.NewBuild(settings.ProjectDir, settings.BuildDir, settings.Generator)
	b.SetName(filepath.Base(b.ProjectDir()))
	if len(parsed.Projects) == 1 {
		b.SetName(parsed.Projects[0].Name)
	}
	if err := b.SetEnvPassthrough(settings.EnvPassthrough); err != nil {
		return nil, err
	}
	configFiles := []string{path}
	if settings.SettingsFile != "" {
		configFiles = append(configFiles, settings.SettingsFile)
	}
	b.SetConfigFiles(configFiles...)

	s := newScope(b)
	if err := l.declare(s, &parsed); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := l.define(s, &parsed); err != nil {
		return nil, err
	}

	l.logger.Debug("loaded project " + b.Name() + " with " + strconv.Itoa(len(b.Targets())) + " targets")
	return b, nil
}

// declare creates every node so that commands may reference nodes declared
// further down the file.
func (l *Loader) declare(s *scope, parsed *projectFile) error {
	base := s.evalContext()

	for _, blk := range parsed.Sources {
		if err := s.claim("source", blk.Name); err != nil {
			return err
		}
		path, err := stringValue(blk.Path, base, "path")
		if err != nil {
			return err
		}
		dir, err := boolValue(blk.Directory, base, "directory")
		if err != nil {
			return err
		}
		if dir {
			s.sources[blk.Name] = domain.NewSourceDirectory(s.build, path)
		} else {
			s.sources[blk.Name] = domain.NewSource(s.build, path)
		}
	}

	for _, blk := range parsed.SourceSets {
		if err := s.claim("sources", blk.Name); err != nil {
			return err
		}
		patterns, err := stringList(blk.Patterns, base, "patterns")
		if err != nil {
			return err
		}
		matches, err := l.resolver.Resolve(patterns, s.build.ProjectDir())
		if err != nil {
			return err
		}
		set := make([]domain.Node, 0, len(matches))
		for _, m := range matches {
			set = append(set, domain.NewSource(s.build, m))
		}
		s.sourceSets[blk.Name] = set
	}

	for _, blk := range parsed.Dependencies {
		if err := l.declareDependency(s, blk, base); err != nil {
			return err
		}
	}

	for _, blk := range parsed.Targets {
		if err := s.claim("target", blk.Name); err != nil {
			return err
		}
		path, err := stringValue(blk.Path, base, "path")
		if err != nil {
			return err
		}
		s.targets[blk.Name] = domain.NewTarget(s.build, path)
	}
	return nil
}

func (l *Loader) declareDependency(s *scope, blk *dependencyBlock, base *hcl.EvalContext) error {
	if err := s.claim("dependency", blk.Name); err != nil {
		return err
	}
	sourceDir, err := stringValue(blk.SourceDir, base, "source_dir")
	if err != nil {
		return err
	}
	sourceDir = domain.NewPath(s.build.ProjectDir(), sourceDir).String()

	missing, err := l.verifier.MissingDirs(sourceDir)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return domain.Fail(domain.ErrMissingSourceDirectory,
			"check out the dependency sources or fix source_dir",
			"dependency", blk.Name, "path", sourceDir)
	}

	sub := s.build.EnsureDependencyBuild()
	dep := &dependency{
		sourceDir: sourceDir,
		dir:       filepath.Join(sub.Directory(), blk.Name),
		targets:   make(map[string]*domain.Target),
	}
	s.dependencies[blk.Name] = dep

	ctx := s.dependencyContext(base, dep)
	for _, t := range blk.Targets {
		if _, ok := dep.targets[t.Name]; ok {
			return domain.Fail(domain.ErrConfiguration,
				"give every target of a dependency its own name",
				"dependency", blk.Name, "target", t.Name)
		}
		path, err := stringValue(t.Path, ctx, "path")
		if err != nil {
			return err
		}
		dep.targets[t.Name] = domain.NewTarget(sub, domain.NewPath(dep.dir, path).String())
	}
	return nil
}

// define creates the commands, dependency targets first, each group in
// declaration order.
func (l *Loader) define(s *scope, parsed *projectFile) error {
	base := s.evalContext()

	for _, blk := range parsed.Dependencies {
		dep := s.dependencies[blk.Name]
		ctx := s.dependencyContext(base, dep)
		for _, t := range blk.Targets {
			if err := l.defineCommand(s, ctx, t, dep.targets[t.Name], dep.dir, dep.dir); err != nil {
				return err
			}
		}
	}

	for _, t := range parsed.Targets {
		target := s.targets[t.Name]
		if err := l.defineCommand(s, base, t, target, s.build.Directory(), ""); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) defineCommand(
	s *scope,
	ctx *hcl.EvalContext,
	blk *targetBlock,
	target *domain.Target,
	outputDir string,
	defaultCwd string,
) error {
	if isAbsent(blk.Args) {
		return nil
	}

	args, err := s.arg(blk.Args, ctx)
	if err != nil {
		return err
	}

	opts := domain.CommandOptions{WorkingDirectory: defaultCwd}
	if opts.Action, err = optionalString(blk.Action, ctx, "action"); err != nil {
		return err
	}
	if !isAbsent(blk.Inputs) {
		if opts.Inputs, err = s.inputs(blk.Inputs, ctx); err != nil {
			return err
		}
	}
	if !isAbsent(blk.Outputs) {
		if opts.Outputs, err = s.outputs(blk.Outputs, ctx, target.Build(), outputDir); err != nil {
			return err
		}
	}
	if opts.Env, err = stringMap(blk.Env, ctx, "env"); err != nil {
		return err
	}
	if !isAbsent(blk.OSEnv) {
		if opts.OSEnv, err = stringList(blk.OSEnv, ctx, "os_env"); err != nil {
			return err
		}
	}
	cwd, err := optionalString(blk.WorkingDirectory, ctx, "working_directory")
	if err != nil {
		return err
	}
	if cwd != "" {
		opts.WorkingDirectory = cwd
	}
	if opts.Script, err = optionalString(blk.Script, ctx, "script"); err != nil {
		return err
	}

	if _, err := domain.NewCommand(target, args, opts); err != nil {
		return withRange(err, blk.Args.Range())
	}
	return nil
}

func withRange(err error, rng hcl.Range) error {
	return zerr.With(err, "at", rng.String())
}

type dependency struct {
	sourceDir string
	dir       string
	targets   map[string]*domain.Target
}

// scope holds the named nodes of a project file.
type scope struct {
	build        *domain.Build
	names        map[string]bool
	sources      map[string]*domain.Source
	sourceSets   map[string][]domain.Node
	targets      map[string]*domain.Target
	dependencies map[string]*dependency
}

func newScope(b *domain.Build) *scope {
	return &scope{
		build:        b,
		names:        make(map[string]bool),
		sources:      make(map[string]*domain.Source),
		sourceSets:   make(map[string][]domain.Node),
		targets:      make(map[string]*domain.Target),
		dependencies: make(map[string]*dependency),
	}
}

func (s *scope) claim(kind, name string) error {
	key := kind + "." + name
	if s.names[key] {
		return domain.Fail(domain.ErrConfiguration,
			"rename one of the blocks, names are unique per block type", "block", key)
	}
	s.names[key] = true
	return nil
}

// evalContext returns the variables and functions of project expressions.
// Node references evaluate to their absolute path.
func (s *scope) evalContext() *hcl.EvalContext {
	sources := make(map[string]cty.Value, len(s.sources))
	for name, src := range s.sources {
		sources[name] = cty.StringVal(src.Path().String())
	}
	sets := make(map[string]cty.Value, len(s.sourceSets))
	for name, set := range s.sourceSets {
		sets[name] = pathList(set)
	}
	targets := make(map[string]cty.Value, len(s.targets))
	for name, t := range s.targets {
		targets[name] = cty.StringVal(t.Path().String())
	}
	deps := make(map[string]cty.Value, len(s.dependencies))
	for name, dep := range s.dependencies {
		attrs := make(map[string]cty.Value, len(dep.targets))
		for tname, t := range dep.targets {
			attrs[tname] = cty.StringVal(t.Path().String())
		}
		deps[name] = cty.ObjectVal(attrs)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"project_dir": cty.StringVal(s.build.ProjectDir()),
			"build_dir":   cty.StringVal(s.build.Directory()),
			"source":      cty.ObjectVal(sources),
			"sources":     cty.ObjectVal(sets),
			"target":      cty.ObjectVal(targets),
			"dependency":  cty.ObjectVal(deps),
		},
		Functions: functions(),
	}
}

func (s *scope) dependencyContext(base *hcl.EvalContext, dep *dependency) *hcl.EvalContext {
	ctx := base.NewChild()
	ctx.Variables = map[string]cty.Value{
		"source_dir":     cty.StringVal(dep.sourceDir),
		"dependency_dir": cty.StringVal(dep.dir),
	}
	return ctx
}

func pathList(nodes []domain.Node) cty.Value {
	if len(nodes) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, 0, len(nodes))
	for _, n := range nodes {
		vals = append(vals, cty.StringVal(n.Path().String()))
	}
	return cty.ListVal(vals)
}

var nodeRoots = []string{"source", "sources", "target", "dependency"}

func isNodeRoot(name string) bool {
	return slices.Contains(nodeRoots, name)
}

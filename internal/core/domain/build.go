package domain

import (
	"path/filepath"
	"slices"
)

// DependencyDir is the directory, relative to a build directory, holding the
// dependency sub-build.
const DependencyDir = "dependencies"

// Build owns the target and command registries of one build directory.
// It is not safe for concurrent use.
type Build struct {
	name       string
	projectDir string
	directory  string
	generator  GeneratorKind

	targets  map[Path]*Target
	order    []*Target
	commands map[Path]*Command

	dependency *Build
	parent     *Build

	envPassthrough []string
	forcedCwd      string
	configFiles    []string
}

// NewBuild creates a build generating into directory for the project rooted
// at projectDir. Both paths are made absolute.
func NewBuild(projectDir, directory string, generator GeneratorKind) *Build {
	projectDir = absPath(projectDir)
	return &Build{
		projectDir: projectDir,
		directory:  NewPath(projectDir, directory).String(),
		generator:  generator,
		targets:    make(map[Path]*Target),
		commands:   make(map[Path]*Command),
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// Name returns the project name.
func (b *Build) Name() string { return b.name }

// SetName sets the project name.
func (b *Build) SetName(name string) { b.name = name }

// ProjectDir returns the absolute project directory.
func (b *Build) ProjectDir() string { return b.projectDir }

// Directory returns the absolute build directory.
func (b *Build) Directory() string { return b.directory }

// Generator returns the backend selected for this build.
func (b *Build) Generator() GeneratorKind { return b.generator }

// Parent returns the build this build is a dependency of, if any.
func (b *Build) Parent() *Build { return b.parent }

// DependencyBuild returns the nested build for external dependencies, or nil.
func (b *Build) DependencyBuild() *Build { return b.dependency }

// EnsureDependencyBuild returns the dependency sub-build, creating it on first use.
// It shares the project directory and generator of b.
func (b *Build) EnsureDependencyBuild() *Build {
	if b.dependency == nil {
		dep := NewBuild(b.projectDir, filepath.Join(b.directory, DependencyDir), b.generator)
		dep.name = b.name + "-dependencies"
		dep.parent = b
		dep.envPassthrough = slices.Clone(b.envPassthrough)
		b.dependency = dep
	}
	return b.dependency
}

// EnvPassthrough returns the process variables passed to every command.
func (b *Build) EnvPassthrough() []string { return b.envPassthrough }

// SetEnvPassthrough sets the process variables passed to every command.
func (b *Build) SetEnvPassthrough(names []string) error {
	for _, name := range names {
		if !IsEnvName(name) {
			return Fail(ErrInvalidEnvironmentName,
				"fix env_passthrough in the settings file", "name", name)
		}
	}
	b.envPassthrough = slices.Clone(names)
	if b.dependency != nil {
		b.dependency.envPassthrough = slices.Clone(names)
	}
	return nil
}

// ForcedWorkingDirectory returns the directory every wrapper script runs in,
// or "" when commands keep their own.
func (b *Build) ForcedWorkingDirectory() string { return b.forcedCwd }

// ForceWorkingDirectory makes every wrapper script of b run in dir.
func (b *Build) ForceWorkingDirectory(dir string) {
	if dir == "" {
		b.forcedCwd = ""
		return
	}
	b.forcedCwd = NewPath(b.directory, dir).String()
}

// ConfigFiles returns the files the build was configured from.
func (b *Build) ConfigFiles() []string { return b.configFiles }

// SetConfigFiles records the files the build was configured from; generated
// orchestration files re-run the configuration when one of them changes.
func (b *Build) SetConfigFiles(files ...string) {
	b.configFiles = b.configFiles[:0]
	for _, f := range files {
		b.configFiles = append(b.configFiles, NewPath(b.projectDir, f).String())
	}
}

// Targets returns the registered targets in registration order.
func (b *Build) Targets() []*Target { return b.order }

// Target returns the target registered at path, resolved against the build directory.
func (b *Build) Target(path string) (*Target, bool) {
	t, ok := b.targets[NewPath(b.directory, path)]
	return t, ok
}

// Command returns the command producing the target at path.
func (b *Build) Command(path Path) (*Command, bool) {
	c, ok := b.commands[path]
	return c, ok
}

// AddTarget registers t. Registering the same object again is a no-op;
// registering a different object at a path already in use fails with
// ErrTargetConflict.
func (b *Build) AddTarget(t *Target) error {
	if existing, ok := b.targets[t.Path()]; ok {
		if existing == t {
			return nil
		}
		return Fail(ErrTargetConflict,
			"declare each target once and reuse it instead of constructing it again",
			"path", t.Path().String())
	}
	if t.Build() != b {
		return Fail(ErrForeignNode,
			"targets of a dependency build are consumed by reference, not registered again",
			"path", t.Path().String())
	}
	b.register(t)
	return nil
}

func (b *Build) register(t *Target) {
	b.targets[t.Path()] = t
	b.order = append(b.order, t)
}

// AddCommand indexes c under the path of its primary target.
func (b *Build) AddCommand(c *Command) error {
	t := c.Target()
	if registered, ok := b.targets[t.Path()]; !ok || registered != t {
		return Fail(ErrForeignNode,
			"a command must produce a target of its own build", "path", t.Path().String())
	}
	if existing, ok := b.commands[t.Path()]; ok && existing != c {
		return Fail(ErrCommandConflict,
			"remove the duplicate recipe or give one of the outputs another path",
			"path", t.Path().String())
	}
	b.commands[t.Path()] = c
	return nil
}

// InTree reports whether p lies inside the project tree or the build tree.
// Generated prerequisite lists only mention such paths.
func (b *Build) InTree(p Path) bool {
	if p.Within(b.projectDir) || p.Within(b.directory) {
		return true
	}
	for parent := b.parent; parent != nil; parent = parent.parent {
		if p.Within(parent.directory) {
			return true
		}
	}
	return false
}

// Commands returns the number of indexed commands.
func (b *Build) Commands() int { return len(b.commands) }

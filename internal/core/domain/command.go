package domain

import (
	"maps"
	"path/filepath"
	"regexp"
	"slices"
)

// DefaultAction is the label printed for a command without an explicit action.
const DefaultAction = "Building"

// ScriptDir is the directory, relative to a build directory, holding wrapper scripts.
const ScriptDir = ".tupcfg/commands"

var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// CommandOptions configures a Command.
type CommandOptions struct {
	// Action is the human readable label, e.g. "Compiling".
	Action string
	// Inputs are the explicit input nodes.
	Inputs []Node
	// Outputs are additional targets produced next to the primary one.
	Outputs []*Target
	// WorkingDirectory defaults to the build directory; relative values are
	// resolved against it.
	WorkingDirectory string
	// Env holds explicit environment overrides.
	Env map[string]string
	// OSEnv lists process environment variables passed through to the command.
	OSEnv []string
	// Script overrides the wrapper script path. Commands naming the same
	// script share one file.
	Script string
}

// Command is the recipe producing one primary Target and optional extra
// outputs. As a Node its path is the wrapper script that runs it.
type Command struct {
	node
	action     string
	args       Arg
	argv       []string
	inputs     []Node
	implicit   []Node
	outputs    []*Target
	workingDir Path
	env        map[string]string
	osEnv      []string
}

var _ Node = (*Command)(nil)

// NewCommand binds target to the argument tree args and registers the
// command in the target's build.
//
// The target's dependency list is extended with the explicit inputs, then
// every node found in args that is neither an explicit input nor an output
// (once per path, in discovery order), then the command itself.
func NewCommand(target *Target, args Arg, opts CommandOptions) (*Command, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}
	if err := validateEnvNames(opts); err != nil {
		return nil, err
	}

	b := target.Build()
	outputs := make([]*Target, 0, 1+len(opts.Outputs))
	outputs = append(outputs, target)
	for _, o := range opts.Outputs {
		if o.Build() != b {
			return nil, Fail(ErrForeignNode,
				"extra outputs must be declared in the same build as their primary target",
				"path", o.Path().String())
		}
		if o != target && !slices.Contains(outputs, o) {
			outputs = append(outputs, o)
		}
	}
	for _, o := range outputs {
		if o.command != nil {
			return nil, Fail(ErrCommandConflict,
				"remove the duplicate recipe or give one of the outputs another path",
				"path", o.Path().String())
		}
	}

	script := opts.Script
	if script == "" {
		rel := target.Path().Rel(b.Directory())
		script = filepath.Join(ScriptDir, rel+".sh")
	}

	action := opts.Action
	if action == "" {
		action = DefaultAction
	}

	cwd := b.Directory()
	if opts.WorkingDirectory != "" {
		cwd = opts.WorkingDirectory
	}

	c := &Command{
		node:       newNode(b, NewPath(b.Directory(), script), false),
		action:     action,
		args:       args,
		argv:       args.Flatten(),
		outputs:    outputs,
		workingDir: NewPath(b.Directory(), cwd),
		env:        maps.Clone(opts.Env),
		osEnv:      slices.Clone(opts.OSEnv),
	}

	if err := b.AddCommand(c); err != nil {
		return nil, err
	}

	excluded := make(map[Path]struct{}, len(opts.Inputs)+len(outputs))
	for _, in := range opts.Inputs {
		if _, dup := excluded[in.Path()]; dup {
			continue
		}
		excluded[in.Path()] = struct{}{}
		c.inputs = append(c.inputs, in)
	}
	for _, o := range outputs {
		excluded[o.Path()] = struct{}{}
	}
	for n := range args.Nodes() {
		if _, seen := excluded[n.Path()]; seen {
			continue
		}
		excluded[n.Path()] = struct{}{}
		c.implicit = append(c.implicit, n)
	}

	for _, in := range c.inputs {
		target.addDependency(in)
	}
	for _, in := range c.implicit {
		target.addDependency(in)
	}
	target.addDependency(c)

	for _, o := range outputs {
		o.command = c
		if o != target {
			o.addDependency(target)
		}
	}

	return c, nil
}

func validateEnvNames(opts CommandOptions) error {
	for _, name := range opts.OSEnv {
		if !envNamePattern.MatchString(name) {
			return Fail(ErrInvalidEnvironmentName,
				"environment variable names must match [A-Za-z_][A-Za-z0-9_]*", "name", name)
		}
	}
	for name := range opts.Env {
		if !envNamePattern.MatchString(name) {
			return Fail(ErrInvalidEnvironmentName,
				"environment variable names must match [A-Za-z_][A-Za-z0-9_]*", "name", name)
		}
	}
	return nil
}

// IsEnvName reports whether name can be used as a shell variable name.
func IsEnvName(name string) bool {
	return envNamePattern.MatchString(name)
}

// Action returns the label printed before running the command.
func (c *Command) Action() string { return c.action }

// Args returns the argument tree.
func (c *Command) Args() Arg { return c.args }

// Argv returns the flattened argument vector.
func (c *Command) Argv() []string { return c.argv }

// Target returns the primary output.
func (c *Command) Target() *Target { return c.outputs[0] }

// Outputs returns the primary output followed by the extra outputs.
func (c *Command) Outputs() []*Target { return c.outputs }

// Inputs returns the explicit inputs.
func (c *Command) Inputs() []Node { return c.inputs }

// ImplicitInputs returns the inputs discovered in the argument tree.
func (c *Command) ImplicitInputs() []Node { return c.implicit }

// WorkingDirectory returns the absolute working directory.
func (c *Command) WorkingDirectory() Path { return c.workingDir }

// Env returns the explicit environment overrides.
func (c *Command) Env() map[string]string { return c.env }

// OSEnv returns the names of process variables passed through.
func (c *Command) OSEnv() []string { return c.osEnv }

// ScriptPath returns the wrapper script path.
func (c *Command) ScriptPath() Path { return c.path }

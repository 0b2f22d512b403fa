// Package shell materializes the wrapper scripts that run build commands.
package shell

import (
	"io/fs"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/tupcfg/internal/core/ports"
	"go.trai.ch/zerr"
)

// ScriptMode is the mode of a newly created wrapper script.
const ScriptMode fs.FileMode = 0o755

var _ ports.ScriptWriter = (*ScriptWriter)(nil)

// ScriptWriter implements ports.ScriptWriter with POSIX sh scripts.
type ScriptWriter struct {
	logger ports.Logger
}

// NewScriptWriter creates a new ScriptWriter.
func NewScriptWriter(logger ports.Logger) *ScriptWriter {
	return &ScriptWriter{logger: logger}
}

// Materialize writes the script at path running every command of the batch.
// The script takes the target key of one command as its only argument.
func (w *ScriptWriter) Materialize(
	em ports.Emitter,
	path string,
	commands []*domain.Command,
	cwd string,
) (ports.EmitStatus, error) {
	if len(commands) == 0 {
		return 0, zerr.With(zerr.New("no commands for wrapper script"), "path", path)
	}
	passthrough := commands[0].Build().EnvPassthrough()
	content := Render(commands, cwd, passthrough)

	status, err := em.Emit(path, content, ScriptMode)
	if err != nil {
		return 0, err
	}
	if status != ports.EmitUnchanged {
		w.logger.Debug("wrote wrapper script " + path)
	}
	return status, nil
}

// Key returns the argument selecting c in its wrapper script: the primary
// target path relative to the build directory.
func Key(c *domain.Command) string {
	return c.Target().Path().Rel(c.Build().Directory())
}

// Invocation returns the shell command running c through its wrapper script,
// with the script path relative to dir.
func Invocation(c *domain.Command, dir string) string {
	return "sh " + domain.ShellQuote(c.ScriptPath().Rel(dir)) + " " + domain.ShellQuote(Key(c))
}

// Render returns the script content for a batch of commands.
//
// The environment of each command starts empty and is filled, later entries
// winning, from the process variables named in passthrough, the process
// variables the command lists itself, then its explicit overrides.
func Render(commands []*domain.Command, cwd string, passthrough []string) []byte {
	var sb strings.Builder
	sb.WriteString("#!/bin/sh\n")
	sb.WriteString(domain.GeneratedMarker + "\n")
	sb.WriteString("case \"$1\" in\n")

	for _, c := range commands {
		key := Key(c)
		dir := c.WorkingDirectory().String()
		if cwd != "" {
			dir = cwd
		}

		sb.WriteString(domain.ShellQuote(key) + ")\n")
		sb.WriteString("\tprintf '%s\\n' " + domain.ShellQuote(c.Action()+" "+key) + "\n")
		sb.WriteString("\tcd " + domain.ShellQuote(dir) + " || exit $?\n")
		sb.WriteString("\texec env -i")
		names, assigns := mergeEnvironment(passthrough, c.OSEnv(), c.Env())
		for _, name := range names {
			sb.WriteString(" ${" + name + "+\"" + name + "=$" + name + "\"}")
		}
		for _, a := range assigns {
			sb.WriteString(" " + domain.ShellQuote(a))
		}
		for _, arg := range c.Argv() {
			sb.WriteString(" " + domain.ShellQuote(arg))
		}
		sb.WriteString("\n\t;;\n")
	}

	sb.WriteString("*)\n")
	sb.WriteString("\techo \"unknown target: $1\" >&2\n")
	sb.WriteString("\texit 2\n")
	sb.WriteString("\t;;\n")
	sb.WriteString("esac\n")

	return []byte(sb.String())
}

// mergeEnvironment returns the process variables to pass through, in first
// mention order, and the sorted NAME=value overrides. A name with an
// override is not passed through.
func mergeEnvironment(passthrough, osEnv []string, overrides map[string]string) ([]string, []string) {
	seen := make(map[string]bool, len(passthrough)+len(osEnv))
	var names []string
	for _, name := range slices.Concat(passthrough, osEnv) {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := overrides[name]; ok {
			continue
		}
		names = append(names, name)
	}

	assigns := make([]string, 0, len(overrides))
	for _, k := range slices.Sorted(maps.Keys(overrides)) {
		assigns = append(assigns, k+"="+overrides[k])
	}
	return names, assigns
}

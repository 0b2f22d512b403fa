package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tupcfg/cmd/tupcfg/commands"
	"go.trai.ch/tupcfg/internal/app"
	"go.trai.ch/tupcfg/internal/build"
)

type mockApp struct {
	generate func(opts app.GenerateOptions) error
	clean    func(opts app.CleanOptions) error
	includes func(opts app.IncludesOptions, w io.Writer) error
	verbose  bool
}

func (m *mockApp) Generate(_ context.Context, opts app.GenerateOptions) error {
	if m.generate != nil {
		return m.generate(opts)
	}
	return nil
}

func (m *mockApp) Clean(_ context.Context, opts app.CleanOptions) error {
	if m.clean != nil {
		return m.clean(opts)
	}
	return nil
}

func (m *mockApp) Includes(_ context.Context, opts app.IncludesOptions, w io.Writer) error {
	if m.includes != nil {
		return m.includes(opts, w)
	}
	return nil
}

func (m *mockApp) SetVerbose(verbose bool) { m.verbose = verbose }

func execute(t *testing.T, a *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	out := new(bytes.Buffer)
	cli.SetOutput(out, out)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Generate(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var got app.GenerateOptions
		a := &mockApp{generate: func(opts app.GenerateOptions) error {
			got = opts
			return nil
		}}

		_, err := execute(t, a, "generate", "-C", "proj", "--file", "main.hcl", "--build-dir", "out",
			"--generator", "makefile", "-j", "4", "--serial", "--watch", "-v")
		require.NoError(t, err)

		assert.Equal(t, app.GenerateOptions{
			ProjectOptions: app.ProjectOptions{
				ProjectDir:  "proj",
				ProjectFile: "main.hcl",
				BuildDir:    "out",
				Generator:   "makefile",
				Jobs:        4,
				Serial:      true,
			},
			Watch: true,
		}, got)
		assert.True(t, a.verbose)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		a := &mockApp{generate: func(app.GenerateOptions) error { return errors.New("simulated error") }}

		_, err := execute(t, a, "generate")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects arguments", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "generate", "extra")
		require.Error(t, err)
	})
}

func TestCommands_Clean(t *testing.T) {
	var got app.CleanOptions
	a := &mockApp{clean: func(opts app.CleanOptions) error {
		got = opts
		return nil
	}}

	_, err := execute(t, a, "clean", "-B", "out")
	require.NoError(t, err)
	assert.Equal(t, "out", got.BuildDir)
	assert.False(t, a.verbose)
}

func TestCommands_Includes(t *testing.T) {
	var got app.IncludesOptions
	a := &mockApp{includes: func(opts app.IncludesOptions, w io.Writer) error {
		got = opts
		_, err := io.WriteString(w, "/p/a.h\n")
		return err
	}}

	out, err := execute(t, a, "includes", "--depfile", "obj/main.o", "-I", "inc", "src/main.c",
		"-I", "/usr/include", "src/util.c", "--serial")
	require.NoError(t, err)

	assert.Equal(t, app.IncludesOptions{
		Files:      []string{"src/main.c", "src/util.c"},
		SearchDirs: []string{"inc", "/usr/include"},
		Serial:     true,
		Depfile:    "obj/main.o",
	}, got)
	assert.Equal(t, "/p/a.h\n", out)
}

func TestCommands_IncludesNeedsAFile(t *testing.T) {
	a := &mockApp{includes: func(app.IncludesOptions, io.Writer) error {
		panic("should not be called")
	}}
	_, err := execute(t, a, "includes")
	require.Error(t, err)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "tupcfg version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)

	out, err = execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "tupcfg version "+build.Version)
}

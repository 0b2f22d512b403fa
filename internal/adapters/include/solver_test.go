package include_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tupcfg/internal/adapters/include"
	"go.trai.ch/tupcfg/internal/core/domain"
)

// writeTree creates files below root and returns root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return root
}

func project(t *testing.T) string {
	t.Helper()
	return writeTree(t, map[string]string{
		"src/main.c": "#include \"local.h\"\n" +
			"#include <lib.h>\n" +
			"  #  include <missing.h>\n" +
			"// #include \"commented.h\"\n" +
			"int main(void) { return 0; }\n",
		"src/local.h":           "#include \"cycle_a.h\"\n",
		"src/cycle_a.h":         "#include \"cycle_b.h\"\n",
		"src/cycle_b.h":         "#include \"cycle_a.h\"\n#include <nested/deep.h>\n",
		"src/lib.h":             "/* shadowed by the search path for angle includes */\n",
		"include/lib.h":         "#include \"lib_detail.h\"\n",
		"include/lib_detail.h":  "\n",
		"include/nested/deep.h": "#include \"../lib.h\"\n",
		"other/lib.h":           "\n",
	})
}

func TestSolver_Scan(t *testing.T) {
	root := project(t)
	inc := filepath.Join(root, "include")

	solver := include.NewSolver(4)
	got, err := solver.Scan(context.Background(), filepath.Join(root, "src", "main.c"),
		[]string{inc, filepath.Join(root, "other")})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(inc, "lib.h"),
		filepath.Join(inc, "lib_detail.h"),
		filepath.Join(inc, "nested", "deep.h"),
		filepath.Join(root, "src", "cycle_a.h"),
		filepath.Join(root, "src", "cycle_b.h"),
		filepath.Join(root, "src", "local.h"),
	}, got)
}

func TestSolver_PoolSizesAndSerialAgree(t *testing.T) {
	root := project(t)
	main := filepath.Join(root, "src", "main.c")
	dirs := []string{filepath.Join(root, "include")}

	solver := include.NewSolver(1)
	one, err := solver.Scan(context.Background(), main, dirs)
	require.NoError(t, err)

	solver = include.NewSolver(8)
	many, err := solver.Scan(context.Background(), main, dirs)
	require.NoError(t, err)

	solver = include.NewSolver(8)
	solver.Configure(8, true)
	serial, err := solver.Scan(context.Background(), main, dirs)
	require.NoError(t, err)

	solver.Reset()
	rescanned, err := solver.Scan(context.Background(), main, dirs)
	require.NoError(t, err)

	assert.Equal(t, one, many)
	assert.Equal(t, one, serial)
	assert.Equal(t, one, rescanned)
	assert.NotEmpty(t, one)
}

func TestSolver_RootOnlyOnCycle(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.h": "#include \"b.h\"\n",
		"b.h": "#include \"a.h\"\n",
		"c.c": "#include \"b.h\"\n",
	})

	for _, serial := range []bool{false, true} {
		solver := include.NewSolver(2)
		solver.Configure(2, serial)

		got, err := solver.Scan(context.Background(), filepath.Join(root, "a.h"), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "a.h"), filepath.Join(root, "b.h")}, got)

		got, err = solver.Scan(context.Background(), filepath.Join(root, "c.c"), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "a.h"), filepath.Join(root, "b.h")}, got)
	}
}

func TestSolver_AngleIncludesSkipLocalDirectory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/x.c": "#include <x.h>\n",
		"src/x.h": "\n",
	})

	got, err := include.NewSolver(2).Scan(context.Background(), filepath.Join(root, "src", "x.c"), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSolver_MissingSearchDirectory(t *testing.T) {
	root := project(t)
	missing := filepath.Join(root, "nope")

	_, err := include.NewSolver(2).Scan(context.Background(), filepath.Join(root, "src", "main.c"),
		[]string{filepath.Join(root, "include"), missing})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingSearchDirectory)
	assert.True(t, domain.IsConfigurationError(err))
	assert.NotEmpty(t, domain.Hint(err))
}

func TestSolver_MissingRoot(t *testing.T) {
	for _, serial := range []bool{false, true} {
		solver := include.NewSolver(2)
		solver.Configure(2, serial)

		_, err := solver.Scan(context.Background(), filepath.Join(t.TempDir(), "gone.c"), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrResolution)
	}
}

func TestSolver_CanceledContext(t *testing.T) {
	root := project(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solver := include.NewSolver(2)
	solver.Configure(2, true)
	_, err := solver.Scan(ctx, filepath.Join(root, "src", "main.c"), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolver_ResetDropsCache(t *testing.T) {
	root := writeTree(t, map[string]string{
		"m.c": "#include \"a.h\"\n",
		"a.h": "\n",
		"b.h": "\n",
	})
	main := filepath.Join(root, "m.c")
	solver := include.NewSolver(2)

	got, err := solver.Scan(context.Background(), main, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.h")}, got)

	require.NoError(t, os.WriteFile(main, []byte("#include \"b.h\"\n"), 0o600))

	got, err = solver.Scan(context.Background(), main, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.h")}, got, "cached until reset")

	solver.Reset()
	got, err = solver.Scan(context.Background(), main, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "b.h")}, got)
}

package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/zerr"
)

func newBuild() *domain.Build {
	return domain.NewBuild("/project", "build", domain.GeneratorMakefile)
}

func TestNewBuild(t *testing.T) {
	b := newBuild()

	assert.Equal(t, "/project", b.ProjectDir())
	assert.Equal(t, "/project/build", b.Directory())
	assert.Equal(t, domain.GeneratorMakefile, b.Generator())
	assert.Nil(t, b.DependencyBuild())
}

func TestNewTarget_SamePathYieldsSameObject(t *testing.T) {
	b := newBuild()

	first := domain.NewTarget(b, "lib.o")
	second := domain.NewTarget(b, "/project/build/./lib.o")

	assert.Same(t, first, second)
	require.Len(t, b.Targets(), 1)

	got, ok := b.Target("lib.o")
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestBuild_AddTarget(t *testing.T) {
	t.Run("same object is a no-op", func(t *testing.T) {
		b := newBuild()
		target := domain.NewTarget(b, "a.o")

		require.NoError(t, b.AddTarget(target))
		assert.Len(t, b.Targets(), 1)
	})

	t.Run("different object at the same path fails in any order", func(t *testing.T) {
		b1 := newBuild()
		b2 := newBuild()
		t1 := domain.NewTarget(b1, "a.o")
		t2 := domain.NewTarget(b2, "a.o")

		err := b1.AddTarget(t2)
		require.ErrorIs(t, err, domain.ErrTargetConflict)
		err = b2.AddTarget(t1)
		require.ErrorIs(t, err, domain.ErrTargetConflict)

		var zErr *zerr.Error
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, "/project/build/a.o", zErr.Metadata()["path"])
		assert.NotEmpty(t, domain.Hint(err))
		assert.True(t, domain.IsConfigurationError(err))
	})

	t.Run("target of another build is rejected", func(t *testing.T) {
		b := newBuild()
		other := domain.NewBuild("/project", "other", domain.GeneratorMakefile)
		foreign := domain.NewTarget(other, "a.o")

		require.ErrorIs(t, b.AddTarget(foreign), domain.ErrForeignNode)
	})
}

func TestBuild_EnsureDependencyBuild(t *testing.T) {
	b := newBuild()
	require.NoError(t, b.SetEnvPassthrough([]string{"PATH"}))

	dep := b.EnsureDependencyBuild()

	assert.Same(t, dep, b.EnsureDependencyBuild())
	assert.Same(t, b, dep.Parent())
	assert.Equal(t, "/project/build/dependencies", dep.Directory())
	assert.Equal(t, b.Generator(), dep.Generator())
	assert.Equal(t, []string{"PATH"}, dep.EnvPassthrough())
}

func TestBuild_SetEnvPassthrough_InvalidName(t *testing.T) {
	b := newBuild()

	err := b.SetEnvPassthrough([]string{"PATH", "NOT-VALID"})

	require.ErrorIs(t, err, domain.ErrInvalidEnvironmentName)
	assert.Empty(t, b.EnvPassthrough())
}

func TestBuild_InTree(t *testing.T) {
	b := domain.NewBuild("/project", "/tmp/out", domain.GeneratorTup)
	dep := b.EnsureDependencyBuild()

	assert.True(t, b.InTree(domain.NewPath("/", "project/src/a.c")))
	assert.True(t, b.InTree(domain.NewPath("/", "tmp/out/a.o")))
	assert.False(t, b.InTree(domain.NewPath("/", "usr/lib/libc.so")))
	assert.True(t, dep.InTree(domain.NewPath("/", "tmp/out/prog")))
}

func TestBuild_ForceWorkingDirectory(t *testing.T) {
	b := newBuild()

	b.ForceWorkingDirectory("run")
	assert.Equal(t, "/project/build/run", b.ForcedWorkingDirectory())

	b.ForceWorkingDirectory("")
	assert.Empty(t, b.ForcedWorkingDirectory())
}

func TestParseGeneratorKind(t *testing.T) {
	kind, err := domain.ParseGeneratorKind("Tup")
	require.NoError(t, err)
	assert.Equal(t, domain.GeneratorTup, kind)

	kind, err = domain.ParseGeneratorKind("make")
	require.NoError(t, err)
	assert.Equal(t, domain.GeneratorMakefile, kind)

	_, err = domain.ParseGeneratorKind("ninja")
	require.ErrorIs(t, err, domain.ErrUnknownGenerator)
	assert.Contains(t, domain.Hint(err), "--generator")
}

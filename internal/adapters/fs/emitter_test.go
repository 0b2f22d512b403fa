package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tupcfg/internal/adapters/cas"
	"go.trai.ch/tupcfg/internal/adapters/fs"
	"go.trai.ch/tupcfg/internal/core/ports"
	"go.trai.ch/tupcfg/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newEmitter(t *testing.T, buildDir string, log ports.Logger) ports.Emitter {
	t.Helper()
	factory := fs.NewEmitterFactory(cas.NewOpener(), fs.NewHasher(), log)
	em, err := factory.Open(buildDir)
	require.NoError(t, err)
	return em
}

func TestEmitter_CreateThenUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	buildDir := t.TempDir()
	path := filepath.Join(buildDir, ".tupcfg", "commands", "prog.sh")

	em := newEmitter(t, buildDir, mocks.NewMockLogger(ctrl))
	status, err := em.Emit(path, []byte("#!/bin/sh\n"), 0o755)
	require.NoError(t, err)
	assert.Equal(t, ports.EmitCreated, status)
	require.NoError(t, em.Flush())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	assert.True(t, em.IsGenerated(path))

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	em = newEmitter(t, buildDir, mocks.NewMockLogger(ctrl))
	status, err = em.Emit(path, []byte("#!/bin/sh\n"), 0o755)
	require.NoError(t, err)
	assert.Equal(t, ports.EmitUnchanged, status)
	assert.False(t, em.Stats().Changed())

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "identical content must not be rewritten")
}

func TestEmitter_UpdateKeepsMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	buildDir := t.TempDir()
	path := filepath.Join(buildDir, "Tupfile")

	em := newEmitter(t, buildDir, mocks.NewMockLogger(ctrl))
	_, err := em.Emit(path, []byte("a\n"), 0o644)
	require.NoError(t, err)
	require.NoError(t, os.Chmod(path, 0o600))

	status, err := em.Emit(path, []byte("b\n"), 0o644)
	require.NoError(t, err)
	assert.Equal(t, ports.EmitUpdated, status)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Equal(t, ports.EmitStats{Created: 1, Updated: 1}, em.Stats())
}

func TestEmitter_WarnsAboutHandEdits(t *testing.T) {
	ctrl := gomock.NewController(t)
	buildDir := t.TempDir()
	path := filepath.Join(buildDir, "sub", "Tupfile")

	em := newEmitter(t, buildDir, mocks.NewMockLogger(ctrl))
	_, err := em.Emit(path, []byte("generated\n"), 0o644)
	require.NoError(t, err)
	require.NoError(t, em.Flush())

	require.NoError(t, os.WriteFile(path, []byte("edited\n"), 0o600))

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "sub/Tupfile")
	})
	em = newEmitter(t, buildDir, log)
	status, err := em.Emit(path, []byte("regenerated\n"), 0o644)
	require.NoError(t, err)
	assert.Equal(t, ports.EmitUpdated, status)
}

func TestEmitter_NoWarningForUnknownFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	buildDir := t.TempDir()
	path := filepath.Join(buildDir, "Makefile")
	require.NoError(t, os.WriteFile(path, []byte("hand written\n"), 0o600))

	// No Warn expected: the file has no record.
	em := newEmitter(t, buildDir, mocks.NewMockLogger(ctrl))
	status, err := em.Emit(path, []byte("generated\n"), 0o644)
	require.NoError(t, err)
	assert.Equal(t, ports.EmitUpdated, status)
}

func TestEmitter_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	buildDir := t.TempDir()
	path := filepath.Join(buildDir, "old", "Tupfile")

	em := newEmitter(t, buildDir, mocks.NewMockLogger(ctrl))
	_, err := em.Emit(path, []byte("x\n"), 0o644)
	require.NoError(t, err)

	require.NoError(t, em.Remove(path))
	assert.NoFileExists(t, path)
	assert.False(t, em.IsGenerated(path))
	assert.Equal(t, 1, em.Stats().Removed)

	// Removing twice is not an error and does not count.
	require.NoError(t, em.Remove(path))
	assert.Equal(t, 1, em.Stats().Removed)
}

package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tupcfg/internal/adapters/watcher"
	"go.trai.ch/tupcfg/internal/core/ports"
	"go.trai.ch/tupcfg/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func startWatcher(t *testing.T, root string, skip ...string) <-chan ports.WatchEvent {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	w, err := watcher.NewFactory(log).New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, root, skip))
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})

	out := make(chan ports.WatchEvent, 100)
	go func() {
		defer close(out)
		for e := range w.Events() {
			out <- e
		}
	}()
	return out
}

// waitFor returns the first event for path, failing after a few seconds.
func waitFor(t *testing.T, events <-chan ports.WatchEvent, path string) ports.WatchEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case e, ok := <-events:
			require.True(t, ok, "watcher stopped before %s changed", path)
			if e.Path == path {
				return e
			}
		case <-timeout:
			t.Fatalf("no event for %s", path)
		}
	}
}

func TestWatcher_ReportsChanges(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "project.hcl")
	require.NoError(t, os.WriteFile(project, []byte(`project "p" {}`), 0o600))

	events := startWatcher(t, root)

	require.NoError(t, os.WriteFile(project, []byte(`project "q" {}`), 0o600))
	e := waitFor(t, events, project)
	assert.Contains(t, []ports.WatchOp{ports.OpWrite, ports.OpCreate}, e.Operation)

	require.NoError(t, os.Remove(project))
	for e.Operation != ports.OpRemove {
		e = waitFor(t, events, project)
	}
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	events := startWatcher(t, root)

	sub := filepath.Join(root, "src")
	require.NoError(t, os.Mkdir(sub, 0o750))
	assert.Equal(t, ports.OpCreate, waitFor(t, events, sub).Operation)

	// The new directory is added asynchronously after its create event.
	file := filepath.Join(sub, "main.c")
	deadline := time.Now().Add(5 * time.Second)
	for {
		require.NoError(t, os.WriteFile(file, []byte("int main;"), 0o600))
		select {
		case e := <-events:
			if e.Path == file {
				return
			}
		case <-time.After(100 * time.Millisecond):
		}
		if time.Now().After(deadline) {
			t.Fatalf("no event for %s", file)
		}
	}
}

func TestWatcher_SkipsBuildDirectory(t *testing.T) {
	root := t.TempDir()
	build := filepath.Join(root, "build")
	require.NoError(t, os.MkdirAll(filepath.Join(build, "obj"), 0o750))

	events := startWatcher(t, root, build)

	require.NoError(t, os.WriteFile(filepath.Join(build, "obj", "Tupfile"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(build, "Makefile"), nil, 0o600))
	marker := filepath.Join(root, "project.hcl")
	require.NoError(t, os.WriteFile(marker, nil, 0o600))

	// Events arrive in order, so everything before the marker event is checked.
	timeout := time.After(5 * time.Second)
	for {
		select {
		case e := <-events:
			if e.Path == marker {
				return
			}
			assert.NotContains(t, e.Path, build)
		case <-timeout:
			t.Fatal("no event for the project file")
		}
	}
}

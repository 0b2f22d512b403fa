package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tupcfg/internal/adapters/logger"
	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	tests := []struct {
		name       string
		msg        string
		goldenName string
	}{
		{
			name:       "simple message",
			msg:        "generated 3 files, 2 unchanged",
			goldenName: "info_basic",
		},
		{
			name:       "multiline message",
			msg:        "line1\nline2",
			goldenName: "info_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("overwriting Tupfile: it was edited after it was generated")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name: "hinted error",
			err: domain.Fail(domain.ErrMissingSearchDirectory,
				"create the directory or drop the -I flag", "path", "/src/include"),
			goldenName: "error_hint",
		},
		{
			name: "wrapped chain",
			err: zerr.With(zerr.Wrap(errors.New("no space left on device"),
				"failed to write generated file"), "path", "build/Tupfile"),
			goldenName: "error_chain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Debug(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetLevel(domain.LogLevelDebug)
	lg.Debug("removed stale Tupfile build/obj/Tupfile")

	g := goldie.New(t)
	g.Assert(t, "debug_basic", buf.Bytes())
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	buf := &bytes.Buffer{}

	log := slog.New(logger.NewPrettyHandler(buf, nil)).With("source", "src/my file.c")
	log.Info("scanning includes", "jobs", 4)
	log.Debug("not written")

	g := goldie.New(t)
	g.Assert(t, "info_attrs", buf.Bytes())
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	lg.SetLevel(domain.LogLevelDebug)
	lg.Debug("shown")
	assert.Contains(t, buf.String(), "shown")

	lg.SetLevel(domain.LogLevelError)
	lg.Warn("quiet")
	assert.NotContains(t, buf.String(), "quiet")
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(domain.Fail(domain.ErrUnknownGenerator, "use --generator tup", "generator", "ninja"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "unknown generator", record["msg"])
	assert.Equal(t, "ninja", record["generator"])
	assert.Equal(t, "use --generator tup", record["hint"])
}

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	originalStderr := os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = originalStderr }()

	done := make(chan []byte, 1)
	go func() {
		var out bytes.Buffer
		_, _ = out.ReadFrom(r)
		done <- out.Bytes()
	}()

	fn()

	require.NoError(t, w.Close())
	out := <-done
	require.NoError(t, r.Close())
	return string(out)
}

func TestLogger_DefaultsToStderr(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	out := captureStderr(t, func() {
		// Create the logger inside the capture function so it uses the redirected stderr
		logger.New().Info("some message")
	})
	assert.Equal(t, "some message\n", out)
}

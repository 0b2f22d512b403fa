package app_test

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tupcfg/internal/adapters/cas"
	"go.trai.ch/tupcfg/internal/adapters/fs"
	"go.trai.ch/tupcfg/internal/adapters/include"
	"go.trai.ch/tupcfg/internal/adapters/makefile"
	"go.trai.ch/tupcfg/internal/app"
	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/tupcfg/internal/core/ports"
	"go.trai.ch/tupcfg/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fakeGenerator struct {
	calls int
	stats ports.EmitStats
	err   error
	after func(calls int)
}

func (g *fakeGenerator) Generate(_ context.Context, _ *domain.Build) (ports.EmitStats, error) {
	g.calls++
	if g.after != nil {
		g.after(g.calls)
	}
	return g.stats, g.err
}

type harness struct {
	settings  *mocks.MockSettingsLoader
	projects  *mocks.MockProjectLoader
	scanner   *mocks.MockIncludeScanner
	stores    *mocks.MockGeneratedFileStoreOpener
	emitters  *mocks.MockEmitterFactory
	watchers  *mocks.MockWatcherFactory
	logger    *mocks.MockLogger
	generator *fakeGenerator
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	return &harness{
		settings:  mocks.NewMockSettingsLoader(ctrl),
		projects:  mocks.NewMockProjectLoader(ctrl),
		scanner:   mocks.NewMockIncludeScanner(ctrl),
		stores:    mocks.NewMockGeneratedFileStoreOpener(ctrl),
		emitters:  mocks.NewMockEmitterFactory(ctrl),
		watchers:  mocks.NewMockWatcherFactory(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		generator: &fakeGenerator{stats: ports.EmitStats{Created: 1}},
	}
}

func (h *harness) app() *app.App {
	return app.New(h.settings, h.projects, h.generator, h.scanner, h.stores, h.emitters, h.watchers, h.logger)
}

func defaults(dir string) domain.Settings {
	return domain.Settings{
		ProjectDir:     dir,
		ProjectFile:    domain.DefaultProjectFile,
		BuildDir:       domain.DefaultBuildDir,
		Generator:      domain.GeneratorTup,
		EnvPassthrough: []string{"PATH"},
	}
}

func TestApp_Generate(t *testing.T) {
	h := newHarness(t)
	b := domain.NewBuild("/project", "out", domain.GeneratorMakefile)

	want := defaults("/project")
	want.ProjectFile = "other.hcl"
	want.BuildDir = "out"
	want.Generator = domain.GeneratorMakefile
	want.Jobs = 3
	want.SerialIncludeScan = true

	h.settings.EXPECT().Load("/project").Return(defaults("/project"), nil)
	h.scanner.EXPECT().Configure(3, true)
	h.projects.EXPECT().Load(gomock.Any(), want).Return(b, nil)

	err := h.app().Generate(context.Background(), app.GenerateOptions{
		ProjectOptions: app.ProjectOptions{
			ProjectDir:  "/project",
			ProjectFile: "other.hcl",
			BuildDir:    "out",
			Generator:   "make",
			Jobs:        3,
			Serial:      true,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, h.generator.calls)
}

func TestApp_Generate_DefaultsToCurrentDirectory(t *testing.T) {
	h := newHarness(t)
	h.generator.stats = ports.EmitStats{Unchanged: 4}

	h.settings.EXPECT().Load(".").Return(defaults("/cwd"), nil)
	h.scanner.EXPECT().Configure(0, false)
	h.projects.EXPECT().Load(gomock.Any(), defaults("/cwd")).
		Return(domain.NewBuild("/cwd", "build", domain.GeneratorTup), nil)
	h.logger.EXPECT().Info("build files are up to date")

	require.NoError(t, h.app().Generate(context.Background(), app.GenerateOptions{}))
}

func TestApp_Generate_UnknownGenerator(t *testing.T) {
	h := newHarness(t)
	h.settings.EXPECT().Load(".").Return(defaults("/cwd"), nil)

	err := h.app().Generate(context.Background(), app.GenerateOptions{
		ProjectOptions: app.ProjectOptions{Generator: "ninja"},
	})
	require.ErrorIs(t, err, domain.ErrUnknownGenerator)
	assert.True(t, domain.IsConfigurationError(err))
	assert.Zero(t, h.generator.calls)
}

func TestApp_Generate_Errors(t *testing.T) {
	t.Run("settings", func(t *testing.T) {
		h := newHarness(t)
		h.settings.EXPECT().Load(".").Return(domain.Settings{}, domain.Fail(domain.ErrInvalidSettings, "fix it"))

		err := h.app().Generate(context.Background(), app.GenerateOptions{})
		require.ErrorIs(t, err, domain.ErrInvalidSettings)
	})

	t.Run("project", func(t *testing.T) {
		h := newHarness(t)
		h.settings.EXPECT().Load(".").Return(defaults("/cwd"), nil)
		h.scanner.EXPECT().Configure(0, false)
		h.projects.EXPECT().Load(gomock.Any(), gomock.Any()).
			Return(nil, domain.Fail(domain.ErrUnknownNodeReference, "declare it"))

		err := h.app().Generate(context.Background(), app.GenerateOptions{})
		require.ErrorIs(t, err, domain.ErrUnknownNodeReference)
		assert.Equal(t, "declare it", domain.Hint(err))
		assert.Zero(t, h.generator.calls)
	})

	t.Run("generation", func(t *testing.T) {
		h := newHarness(t)
		h.generator.err = domain.Fail(domain.ErrGeneration, "check the disk")
		h.settings.EXPECT().Load(".").Return(defaults("/cwd"), nil)
		h.scanner.EXPECT().Configure(0, false)
		h.projects.EXPECT().Load(gomock.Any(), gomock.Any()).
			Return(domain.NewBuild("/cwd", "build", domain.GeneratorTup), nil)

		err := h.app().Generate(context.Background(), app.GenerateOptions{})
		require.ErrorIs(t, err, domain.ErrGeneration)
		assert.False(t, domain.IsConfigurationError(err))
	})
}

func TestApp_Generate_Watch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		h.generator.after = func(calls int) {
			if calls == 2 {
				cancel()
			}
		}

		events := make(chan ports.WatchEvent, 4)
		events <- ports.WatchEvent{Path: "/project/src/main.c", Operation: ports.OpWrite}
		events <- ports.WatchEvent{Path: "/project/project.hcl", Operation: ports.OpWrite}
		events <- ports.WatchEvent{Path: "/project/project.hcl", Operation: ports.OpWrite}

		w := mocks.NewMockWatcher(gomock.NewController(t))
		h.watchers.EXPECT().New().Return(w, nil)
		w.EXPECT().Start(gomock.Any(), "/project", []string{"/project/build"}).Return(nil)
		w.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
			for e := range events {
				if !yield(e) {
					return
				}
			}
		}))
		w.EXPECT().Stop().DoAndReturn(func() error {
			close(events)
			return nil
		})

		h.settings.EXPECT().Load("/project").Return(defaults("/project"), nil).Times(2)
		h.scanner.EXPECT().Configure(0, false).Times(2)
		h.projects.EXPECT().Load(gomock.Any(), gomock.Any()).
			Return(domain.NewBuild("/project", "build", domain.GeneratorTup), nil).Times(2)
		h.logger.EXPECT().Info(gomock.Any()).AnyTimes()

		a := h.app().WithDebounceWindow(50 * time.Millisecond)
		err := a.Generate(ctx, app.GenerateOptions{
			ProjectOptions: app.ProjectOptions{ProjectDir: "/project"},
			Watch:          true,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, h.generator.calls, "a burst of writes regenerates once")
	})
}

func TestApp_Generate_WatchKeepsGoingAfterFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		loadErr := domain.Fail(domain.ErrConfiguration, "fix the file")
		events := make(chan ports.WatchEvent, 1)
		events <- ports.WatchEvent{Path: "/project/tupcfg.yaml", Operation: ports.OpCreate}

		w := mocks.NewMockWatcher(gomock.NewController(t))
		h.watchers.EXPECT().New().Return(w, nil)
		w.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		w.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
			for e := range events {
				if !yield(e) {
					return
				}
			}
		}))
		w.EXPECT().Stop().DoAndReturn(func() error {
			close(events)
			return nil
		})

		h.settings.EXPECT().Load("/project").Return(defaults("/project"), nil).Times(2)
		h.scanner.EXPECT().Configure(0, false).Times(2)
		gomock.InOrder(
			h.projects.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, loadErr),
			h.projects.EXPECT().Load(gomock.Any(), gomock.Any()).DoAndReturn(
				func(context.Context, domain.Settings) (*domain.Build, error) {
					cancel()
					return nil, loadErr
				}),
		)
		h.logger.EXPECT().Info(gomock.Any()).AnyTimes()
		h.logger.EXPECT().Error(gomock.Any()).Times(2)

		err := h.app().WithDebounceWindow(10*time.Millisecond).Generate(ctx, app.GenerateOptions{
			ProjectOptions: app.ProjectOptions{ProjectDir: "/project"},
			Watch:          true,
		})
		require.NoError(t, err)
	})
}

func TestApp_Clean(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	project := t.TempDir()
	build := filepath.Join(project, "build")
	deps := filepath.Join(build, domain.DependencyDir)
	require.NoError(t, os.MkdirAll(filepath.Join(deps, "zlib"), 0o750))

	stores := cas.NewOpener()
	emitters := fs.NewEmitterFactory(stores, fs.NewHasher(), log)
	emit := func(dir string, paths ...string) {
		em, err := emitters.Open(dir)
		require.NoError(t, err)
		for _, p := range paths {
			_, err := em.Emit(filepath.Join(dir, p), []byte(domain.GeneratedMarker+"\n"), 0o644)
			require.NoError(t, err)
		}
		require.NoError(t, em.Flush())
	}
	emit(build, "Makefile", ".tupcfg/commands/app.sh")
	emit(deps, "Makefile")
	handWritten := filepath.Join(build, "notes.txt")
	require.NoError(t, os.WriteFile(handWritten, nil, 0o600))

	settings := mocks.NewMockSettingsLoader(ctrl)
	settings.EXPECT().Load(project).Return(defaults(project), nil)
	log.EXPECT().Info("removed 3 files")

	a := app.New(settings, nil, nil, nil, stores, emitters, nil, log)
	require.NoError(t, a.Clean(context.Background(), app.CleanOptions{
		ProjectOptions: app.ProjectOptions{ProjectDir: project},
	}))

	assert.NoFileExists(t, filepath.Join(build, "Makefile"))
	assert.NoFileExists(t, filepath.Join(build, ".tupcfg/commands/app.sh"))
	assert.NoFileExists(t, filepath.Join(deps, "Makefile"))
	assert.FileExists(t, handWritten)
}

func TestApp_Clean_NoBuildDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	settings := mocks.NewMockSettingsLoader(ctrl)
	project := t.TempDir()

	settings.EXPECT().Load(project).Return(defaults(project), nil)
	log.EXPECT().Info("removed 0 files")

	a := app.New(settings, nil, nil, nil, nil, nil, nil, log)
	require.NoError(t, a.Clean(context.Background(), app.CleanOptions{
		ProjectOptions: app.ProjectOptions{ProjectDir: project},
	}))
}

func writeSources(t *testing.T) (dir string, main string) {
	t.Helper()
	dir = t.TempDir()
	files := map[string]string{
		"src/main.c":      "#include \"util.h\"\n#include <sys/api.h>\n#include <missing.h>\n",
		"src/util.h":      "#include <sys/api.h>\n",
		"inc/sys/api.h":   "#pragma once\n",
		"inc/sys/other.h": "",
	}
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return dir, filepath.Join(dir, "src/main.c")
}

func TestApp_Includes(t *testing.T) {
	dir, main := writeSources(t)
	a := app.New(nil, nil, nil, include.NewSolver(2), nil, nil, nil, nil)

	for _, serial := range []bool{false, true} {
		var out bytes.Buffer
		err := a.Includes(context.Background(), app.IncludesOptions{
			Files:      []string{main},
			SearchDirs: []string{filepath.Join(dir, "inc")},
			Serial:     serial,
		}, &out)
		require.NoError(t, err)
		assert.Equal(t,
			filepath.Join(dir, "inc/sys/api.h")+"\n"+filepath.Join(dir, "src/util.h")+"\n",
			out.String())
	}
}

func TestApp_Includes_Depfile(t *testing.T) {
	dir, main := writeSources(t)
	a := app.New(nil, nil, nil, include.NewSolver(1), nil, nil, nil, nil)

	var out bytes.Buffer
	err := a.Includes(context.Background(), app.IncludesOptions{
		Files:      []string{main},
		SearchDirs: []string{filepath.Join(dir, "inc")},
		Depfile:    "obj/main.o",
	}, &out)
	require.NoError(t, err)

	want := makefile.RenderDepfile(
		[]string{"obj/main.o", "obj/main.o" + makefile.DepfileSuffix},
		[]string{filepath.Join(dir, "inc/sys/api.h"), filepath.Join(dir, "src/util.h")})
	assert.Equal(t, string(want), out.String())
}

func TestApp_Includes_Errors(t *testing.T) {
	dir, main := writeSources(t)
	a := app.New(nil, nil, nil, include.NewSolver(1), nil, nil, nil, nil)

	err := a.Includes(context.Background(), app.IncludesOptions{}, new(bytes.Buffer))
	require.ErrorIs(t, err, domain.ErrConfiguration)

	err = a.Includes(context.Background(), app.IncludesOptions{
		Files:      []string{main},
		SearchDirs: []string{filepath.Join(dir, "nope")},
	}, new(bytes.Buffer))
	require.ErrorIs(t, err, domain.ErrMissingSearchDirectory)
	assert.True(t, errors.Is(err, domain.ErrMissingSearchDirectory))
}

func TestApp_SetVerbose(t *testing.T) {
	h := newHarness(t)
	gomock.InOrder(
		h.logger.EXPECT().SetLevel(domain.LogLevelDebug),
		h.logger.EXPECT().SetLevel(domain.LogLevelInfo),
	)

	a := h.app()
	a.SetVerbose(true)
	a.SetVerbose(false)
}

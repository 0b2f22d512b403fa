// Package app implements the application layer for tupcfg.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"go.trai.ch/tupcfg/internal/adapters/makefile" //nolint:depguard // Depfile format shared with the Makefile backend
	"go.trai.ch/tupcfg/internal/adapters/watcher"  //nolint:depguard // Debouncing of watch events
	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/tupcfg/internal/core/ports"
	"go.trai.ch/zerr"
)

// Generator runs a generation pass over a loaded build.
type Generator interface {
	Generate(ctx context.Context, b *domain.Build) (ports.EmitStats, error)
}

// App represents the main application logic.
type App struct {
	settings  ports.SettingsLoader
	projects  ports.ProjectLoader
	generator Generator
	scanner   ports.IncludeScanner
	stores    ports.GeneratedFileStoreOpener
	emitters  ports.EmitterFactory
	watchers  ports.WatcherFactory
	logger    ports.Logger

	debounce time.Duration
}

// New creates a new App instance.
func New(
	settings ports.SettingsLoader,
	projects ports.ProjectLoader,
	generator Generator,
	scanner ports.IncludeScanner,
	stores ports.GeneratedFileStoreOpener,
	emitters ports.EmitterFactory,
	watchers ports.WatcherFactory,
	logger ports.Logger,
) *App {
	return &App{
		settings:  settings,
		projects:  projects,
		generator: generator,
		scanner:   scanner,
		stores:    stores,
		emitters:  emitters,
		watchers:  watchers,
		logger:    logger,
		debounce:  watcher.DefaultDebounceWindow,
	}
}

// WithDebounceWindow sets the quiet period of watch mode.
// This is primarily used for testing.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounce = d
	return a
}

// SetVerbose enables debug output when the logger supports levels.
func (a *App) SetVerbose(verbose bool) {
	a.logger.SetLevel(domain.Verbosity(verbose))
}

// ProjectOptions locate the project and override its settings file.
// Zero values keep the settings.
type ProjectOptions struct {
	ProjectDir  string
	ProjectFile string
	BuildDir    string
	Generator   string
	Jobs        int
	Serial      bool
}

// GenerateOptions configuration for the Generate method.
type GenerateOptions struct {
	ProjectOptions
	Watch bool
}

// Generate loads the project and writes its build files. With Watch set it
// keeps regenerating whenever the project description or the settings change,
// until ctx is done.
func (a *App) Generate(ctx context.Context, opts GenerateOptions) error {
	settings, err := a.configure(opts.ProjectOptions)
	if err != nil {
		return err
	}
	if !opts.Watch {
		return a.generate(ctx, settings)
	}
	if err := a.generate(ctx, settings); err != nil {
		a.logger.Error(err)
	}
	return a.watch(ctx, settings, opts.ProjectOptions)
}

func (a *App) configure(opts ProjectOptions) (domain.Settings, error) {
	dir := opts.ProjectDir
	if dir == "" {
		dir = "."
	}
	settings, err := a.settings.Load(dir)
	if err != nil {
		return domain.Settings{}, err
	}

	if opts.ProjectFile != "" {
		settings.ProjectFile = opts.ProjectFile
	}
	if opts.BuildDir != "" {
		settings.BuildDir = opts.BuildDir
	}
	if opts.Generator != "" {
		kind, err := domain.ParseGeneratorKind(opts.Generator)
		if err != nil {
			return domain.Settings{}, err
		}
		settings.Generator = kind
	}
	if opts.Jobs > 0 {
		settings.Jobs = opts.Jobs
	}
	if opts.Serial {
		settings.SerialIncludeScan = true
	}
	return settings, nil
}

func (a *App) generate(ctx context.Context, settings domain.Settings) error {
	a.scanner.Configure(settings.Jobs, settings.SerialIncludeScan)

	b, err := a.projects.Load(ctx, settings)
	if err != nil {
		return zerr.Wrap(err, "failed to load project")
	}

	stats, err := a.generator.Generate(ctx, b)
	if err != nil {
		return zerr.Wrap(err, "failed to generate build files")
	}
	if !stats.Changed() {
		a.logger.Info("build files are up to date")
	}
	return nil
}

// watch regenerates after changes to the files the build was configured
// from. Failed passes are logged and watching goes on.
func (a *App) watch(ctx context.Context, settings domain.Settings, opts ProjectOptions) error {
	w, err := a.watchers.New()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	buildDir := domain.NewPath(settings.ProjectDir, settings.BuildDir).String()
	if err := w.Start(ctx, settings.ProjectDir, []string{buildDir}); err != nil {
		return err
	}

	watched := []string{
		domain.NewPath(settings.ProjectDir, settings.ProjectFile).String(),
		domain.NewPath(settings.ProjectDir, domain.DefaultSettingsFile).String(),
	}

	trigger := make(chan []string, 1)
	d := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case trigger <- paths:
		case <-ctx.Done():
		}
	})
	defer d.Stop()

	go func() {
		for e := range w.Events() {
			if slices.Contains(watched, filepath.Clean(e.Path)) {
				d.Add(e.Path)
			}
		}
	}()

	a.logger.Info("watching " + settings.ProjectDir + " for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-trigger:
			a.logger.Info("regenerating after changes to " + strconv.Quote(paths[0]))
			next, err := a.configure(opts)
			if err == nil {
				err = a.generate(ctx, next)
			}
			if err != nil {
				a.logger.Error(err)
			}
		}
	}
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ProjectOptions
}

// Clean removes every file recorded as generated in the build directory and
// in the dependency sub-build directory.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	settings, err := a.configure(opts.ProjectOptions)
	if err != nil {
		return err
	}
	buildDir := domain.NewPath(settings.ProjectDir, settings.BuildDir).String()

	var errs error
	removed := 0
	for _, dir := range []string{filepath.Join(buildDir, domain.DependencyDir), buildDir} {
		n, err := a.clean(dir)
		removed += n
		errs = errors.Join(errs, err)
	}
	a.logger.Info("removed " + strconv.Itoa(removed) + " files")
	return errs
}

func (a *App) clean(dir string) (int, error) {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	store, err := a.stores.Open(dir)
	if err != nil {
		return 0, err
	}
	records := store.List()

	em, err := a.emitters.Open(dir)
	if err != nil {
		return 0, err
	}
	var errs error
	for _, rec := range records {
		path := domain.NewPath(dir, filepath.FromSlash(rec.Path)).String()
		if err := em.Remove(path); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		a.logger.Debug("removed " + path)
	}
	if err := em.Flush(); err != nil {
		errs = errors.Join(errs, err)
	}
	return em.Stats().Removed, errs
}

// IncludesOptions configuration for the Includes method.
type IncludesOptions struct {
	Files      []string
	SearchDirs []string
	Jobs       int
	Serial     bool
	// Depfile, when set, names the target of a Makefile dependency file
	// written instead of the plain header list.
	Depfile string
}

// Includes writes the headers reachable from the files to w, one per line.
func (a *App) Includes(ctx context.Context, opts IncludesOptions, w io.Writer) error {
	if len(opts.Files) == 0 {
		return domain.Fail(domain.ErrConfiguration, "name at least one source file")
	}
	a.scanner.Configure(opts.Jobs, opts.Serial)
	a.scanner.Reset()

	dirs := make([]string, 0, len(opts.SearchDirs))
	for _, d := range opts.SearchDirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve search directory"), "path", d)
		}
		dirs = append(dirs, abs)
	}

	files := make([]string, 0, len(opts.Files))
	scans := make([][]string, 0, len(opts.Files))
	for _, f := range opts.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve source file"), "path", f)
		}
		found, err := a.scanner.Scan(ctx, abs, dirs)
		if err != nil {
			return zerr.With(err, "source", abs)
		}
		files = append(files, abs)
		scans = append(scans, found)
	}
	headers := makefile.UnionHeaders(files, scans...)

	if opts.Depfile != "" {
		_, err := w.Write(makefile.RenderDepfile(
			[]string{opts.Depfile, opts.Depfile + makefile.DepfileSuffix}, headers))
		return err
	}
	for _, h := range headers {
		if _, err := fmt.Fprintln(w, h); err != nil {
			return err
		}
	}
	return nil
}

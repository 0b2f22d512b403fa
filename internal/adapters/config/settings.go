package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/tupcfg/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultEnvPassthrough lists the process variables every command receives
// unless the settings file says otherwise.
var DefaultEnvPassthrough = []string{"PATH"}

var _ ports.SettingsLoader = (*SettingsLoader)(nil)

// SettingsLoader implements ports.SettingsLoader for the YAML settings file.
type SettingsLoader struct {
	Filename string
}

// NewSettingsLoader creates a SettingsLoader reading domain.DefaultSettingsFile.
func NewSettingsLoader() *SettingsLoader {
	return &SettingsLoader{Filename: domain.DefaultSettingsFile}
}

type settingsFile struct {
	ProjectFile       string   `yaml:"project_file"`
	BuildDir          string   `yaml:"build_dir"`
	Generator         string   `yaml:"generator"`
	EnvPassthrough    []string `yaml:"env_passthrough"`
	Jobs              int      `yaml:"jobs"`
	SerialIncludeScan bool     `yaml:"serial_include_scan"`
}

// Load returns the settings of the project in projectDir. A missing settings
// file yields the defaults.
func (l *SettingsLoader) Load(projectDir string) (domain.Settings, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, "failed to resolve project directory"), "path", projectDir)
	}

	settings := domain.Settings{
		ProjectDir:     abs,
		ProjectFile:    domain.DefaultProjectFile,
		BuildDir:       domain.DefaultBuildDir,
		Generator:      domain.GeneratorTup,
		EnvPassthrough: DefaultEnvPassthrough,
	}

	path := filepath.Join(abs, l.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // Settings live in the project directory
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, "failed to read settings file"), "file", path)
	}
	settings.SettingsFile = path

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Settings{}, domain.Fail(domain.ErrInvalidSettings,
			"fix the YAML syntax of the settings file", "file", path, "cause", err.Error())
	}
	if doc == nil {
		return settings, nil
	}
	if err := validateSettings(doc); err != nil {
		return domain.Settings{}, domain.Fail(domain.ErrInvalidSettings,
			"see settings.schema.json for the accepted keys and values", "file", path, "cause", err.Error())
	}

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Settings{}, domain.Fail(domain.ErrInvalidSettings,
			"fix the settings file", "file", path, "cause", err.Error())
	}

	if file.ProjectFile != "" {
		settings.ProjectFile = file.ProjectFile
	}
	if file.BuildDir != "" {
		settings.BuildDir = file.BuildDir
	}
	if file.Generator != "" {
		kind, err := domain.ParseGeneratorKind(file.Generator)
		if err != nil {
			return domain.Settings{}, zerr.With(err, "file", path)
		}
		settings.Generator = kind
	}
	if file.EnvPassthrough != nil {
		settings.EnvPassthrough = file.EnvPassthrough
	}
	settings.Jobs = file.Jobs
	settings.SerialIncludeScan = file.SerialIncludeScan
	return settings, nil
}

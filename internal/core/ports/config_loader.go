package ports

import (
	"context"

	"go.trai.ch/tupcfg/internal/core/domain"
)

// ProjectLoader turns a project description into a configured Build.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ProjectLoader interface {
	// Load evaluates the project description named by settings and returns the build graph.
	Load(ctx context.Context, settings domain.Settings) (*domain.Build, error)
}

// SettingsLoader reads the tool settings of a project.
type SettingsLoader interface {
	// Load returns the settings of the project in projectDir, using defaults
	// for every value the settings file does not set.
	Load(projectDir string) (domain.Settings, error)
}

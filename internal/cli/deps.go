// Package cli provides the Cobra command and dependency injection wiring
// for the create-electron-app CLI. This file defines the Dependencies
// struct (Composition Root) that wires all domain modules together.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/modu-ai/create-electron-app/internal/core/git"
	"github.com/modu-ai/create-electron-app/internal/core/project"
	"github.com/modu-ai/create-electron-app/internal/feature"
	"github.com/modu-ai/create-electron-app/internal/process"
	"github.com/modu-ai/create-electron-app/internal/template"
	"github.com/modu-ai/create-electron-app/internal/ui"
)

// Dependencies holds all domain-level services used by the CLI.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Registry *feature.Registry
	Composer project.Composer
	Headless *ui.HeadlessManager
	Theme    *ui.Theme
	Logger   *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// logLevel controls the CLI logger. Warn by default, debug with --verbose.
var logLevel = new(slog.LevelVar)

// @MX:ANCHOR: [AUTO] InitDependencies is the Composition Root that wires all domain modules
// @MX:REASON: [AUTO] fan_in=3, called from root.go, deps_test.go, create_test.go
// InitDependencies creates and wires all domain dependencies.
// It should be called once during application startup.
func InitDependencies() error {
	logLevel.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	templates, err := template.EmbeddedTemplates()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	reg := feature.NewDefaultRegistry()
	deps = &Dependencies{
		Registry: reg,
		Composer: project.NewComposer(
			reg,
			template.NewCopier(templates),
			template.NewRenderer(),
			process.NewInstaller(os.Stdout, os.Stderr, logger),
			git.NewManager(logger),
			logger,
		),
		Headless: ui.NewHeadlessManager(),
		Theme:    ui.NewTheme(),
		Logger:   logger,
	}
	return nil
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

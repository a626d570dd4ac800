// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"galaxy-importer/internal/config"
	"galaxy-importer/internal/importer"
	"galaxy-importer/pkg/schema"
)

type (
	// App wires CLI services and shared dependencies. Every cobra handler
	// receives an App and goes through its services.
	App struct {
		Config      config.Provider
		NewImporter ImporterFactory
		stdout      io.Writer
		stderr      io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config      config.Provider
		NewImporter ImporterFactory
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// ImportService runs one import.
	ImportService interface {
		Import(ctx context.Context, req importer.Request) (*schema.ImportResult, error)
	}

	// ImporterFactory builds the ImportService for a resolved configuration.
	ImporterFactory func(cfg *config.Config, logger *slog.Logger) ImportService
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.NewImporter == nil {
		deps.NewImporter = defaultImporter
	}

	return &App{
		Config:      deps.Config,
		NewImporter: deps.NewImporter,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}
}

func defaultImporter(cfg *config.Config, logger *slog.Logger) ImportService {
	return importer.New(importer.WithConfig(cfg), importer.WithLogger(logger))
}

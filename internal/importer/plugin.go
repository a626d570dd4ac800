// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"context"
	"log/slog"

	"galaxy-importer/internal/extract"
	"galaxy-importer/internal/loaders"
	"galaxy-importer/pkg/schema"
)

type (
	// PostLoadPlugin is notified after a successful import. contents is
	// always nil.
	PostLoadPlugin interface {
		Name() string
		PostLoad(ctx context.Context, src extract.Source, meta schema.Metadata, contents []loaders.Content, logger *slog.Logger) error
	}

	// PostLoadFunc adapts a function to PostLoadPlugin.
	PostLoadFunc struct {
		PluginName string
		Fn         func(ctx context.Context, src extract.Source, meta schema.Metadata, contents []loaders.Content, logger *slog.Logger) error
	}
)

// Name implements PostLoadPlugin.
func (f PostLoadFunc) Name() string { return f.PluginName }

// PostLoad implements PostLoadPlugin.
func (f PostLoadFunc) PostLoad(ctx context.Context, src extract.Source, meta schema.Metadata, contents []loaders.Content, logger *slog.Logger) error {
	return f.Fn(ctx, src, meta, contents, logger)
}

// runPlugins calls every plugin in order. The result is already final, so
// failures are only logged.
func (i *Importer) runPlugins(ctx context.Context, src extract.Source, meta schema.Metadata) {
	for _, p := range i.plugins {
		i.logger.Debug("Running plugin", "plugin", p.Name())
		if err := p.PostLoad(ctx, src, meta, nil, i.logger); err != nil {
			i.logger.Error("Post-load plugin failed", "plugin", p.Name(), "error", err)
		}
	}
}

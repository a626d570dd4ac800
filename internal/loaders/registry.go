// SPDX-License-Identifier: MPL-2.0

package loaders

import (
	"fmt"
	"log/slog"

	"galaxy-importer/internal/logging"
	"galaxy-importer/internal/markup"
	"galaxy-importer/pkg/schema"
)

type (
	// Loader builds the Content for one discovered unit. relPath is
	// slash-separated and relative to root.
	Loader interface {
		Load(relPath, root string, docs *DocStrings) (Content, error)
	}

	// Registry dispatches content types to loaders.
	Registry struct {
		loaders map[schema.ContentType]Loader
	}

	// Options configures NewRegistry.
	Options struct {
		Logger *slog.Logger
		// RenderDocs enables README rendering for roles.
		RenderDocs bool
		// Renderer is required when RenderDocs is set.
		Renderer *markup.Renderer
	}
)

// NewRegistry registers a loader for every known content type.
func NewRegistry(opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	renderer := opts.Renderer
	if opts.RenderDocs && renderer == nil {
		renderer = markup.NewRenderer()
	}

	r := &Registry{loaders: map[schema.ContentType]Loader{}}
	for _, ct := range schema.ContentTypes() {
		switch {
		case ct == schema.ContentTypeRole:
			r.loaders[ct] = &roleLoader{logger: logger, renderDocs: opts.RenderDocs, renderer: renderer}
		case ct == schema.ContentTypeModuleUtils:
			r.loaders[ct] = &moduleUtilsLoader{}
		default:
			r.loaders[ct] = &pluginLoader{contentType: ct, logger: logger}
		}
	}
	return r
}

// Loader returns the loader for ct.
func (r *Registry) Loader(ct schema.ContentType) (Loader, error) {
	l, ok := r.loaders[ct]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, ct)
	}
	return l, nil
}

// Load dispatches to the loader registered for ct.
func (r *Registry) Load(ct schema.ContentType, relPath, root string, docs *DocStrings) (Content, error) {
	l, err := r.Loader(ct)
	if err != nil {
		return Content{}, err
	}
	return l.Load(relPath, root, docs)
}

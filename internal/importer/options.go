// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"log/slog"

	"galaxy-importer/internal/config"
	"galaxy-importer/internal/extract"
	"galaxy-importer/internal/loaders"
	"galaxy-importer/internal/testrunner"
)

// Option configures an Importer.
type Option func(*Importer)

// WithConfig sets the configuration. The defaults are used otherwise.
func WithConfig(cfg *config.Config) Option {
	return func(i *Importer) {
		if cfg != nil {
			i.cfg = cfg
		}
	}
}

// WithLogger sets the logger that receives import progress.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithPlugins appends post-load plugins.
func WithPlugins(plugins ...PostLoadPlugin) Option {
	return func(i *Importer) {
		i.plugins = append(i.plugins, plugins...)
	}
}

// WithTestRunner overrides the ansible-test runner selected from the
// configuration. A nil runner disables ansible-test.
func WithTestRunner(r testrunner.Runner) Option {
	return func(i *Importer) {
		i.runner = r
		i.runnerSet = true
	}
}

// WithFetcher sets the fetcher used when the archive is not available locally.
func WithFetcher(f extract.Fetcher) Option {
	return func(i *Importer) {
		if f != nil {
			i.fetcher = f
		}
	}
}

// WithExtractor replaces the tar-based extractor.
func WithExtractor(e extract.Extractor) Option {
	return func(i *Importer) {
		if e != nil {
			i.extractor = e
		}
	}
}

// WithDocStringSource sets a source of pre-computed plugin documentation.
func WithDocStringSource(s loaders.DocStringSource) Option {
	return func(i *Importer) {
		i.docSource = s
	}
}

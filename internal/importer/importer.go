// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"galaxy-importer/internal/config"
	"galaxy-importer/internal/extract"
	"galaxy-importer/internal/finder"
	"galaxy-importer/internal/loaders"
	"galaxy-importer/internal/logging"
	"galaxy-importer/internal/markup"
	"galaxy-importer/internal/testrunner"
	"galaxy-importer/pkg/artifact"
	"galaxy-importer/pkg/schema"
)

type (
	// Importer runs imports. It holds no per-run state and may be reused,
	// but a single Import call is strictly sequential.
	Importer struct {
		cfg       *config.Config
		logger    *slog.Logger
		plugins   []PostLoadPlugin
		runner    testrunner.Runner
		runnerSet bool
		fetcher   extract.Fetcher
		extractor extract.Extractor
		docSource loaders.DocStringSource
		renderer  *markup.Renderer
	}

	// Request describes one archive to import.
	Request struct {
		// Source locates the archive.
		Source extract.Source
		// Identity is parsed from the archive filename. Zero fields are
		// not cross-checked; roles need all three.
		Identity artifact.Identity
		// ArtifactType defaults to TypeCollection.
		ArtifactType artifact.Type
	}

	// run is the state of a single Import call.
	run struct {
		*Importer
		req     Request
		workdir *extract.Workdir
		archive string
		report  extract.Report
	}
)

// New returns an Importer.
func New(opts ...Option) *Importer {
	i := &Importer{
		cfg:      config.DefaultConfig(),
		logger:   logging.Discard(),
		fetcher:  extract.HTTPFetcher{},
		renderer: markup.NewRenderer(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.extractor == nil {
		i.extractor = extract.NewTarExtractor(extract.WithTarLogger(i.logger))
	}
	if !i.runnerSet {
		i.runner = testrunner.Select(i.cfg, i.logger)
	}
	return i
}

// Import extracts, validates and loads the archive described by req. The
// working directory is removed before Import returns.
func (i *Importer) Import(ctx context.Context, req Request) (res *schema.ImportResult, err error) {
	if req.ArtifactType == "" {
		req.ArtifactType = artifact.TypeCollection
	}
	if err := req.ArtifactType.Validate(); err != nil {
		return nil, err
	}

	i.logger.Info("Importing with galaxy-importer", "type", req.ArtifactType, "source", req.Source.String())

	wd, err := extract.Acquire(i.cfg.TmpRootDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := wd.Close(); closeErr != nil {
			i.logger.Warn("Failed to remove working directory", "path", wd.Root(), "error", closeErr)
		}
	}()

	r := &run{Importer: i, req: req, workdir: wd}
	if err := r.fetch(ctx); err != nil {
		return nil, err
	}

	var target testrunner.Target
	switch req.ArtifactType {
	case artifact.TypeRole:
		res, target, err = r.importRole(ctx)
	default:
		res, target, err = r.importCollection(ctx)
	}
	if err != nil {
		return nil, err
	}

	if i.runner != nil {
		i.logger.Info("Running ansible-test", "runner", i.runner.Name())
		if err := i.runner.Run(ctx, target); err != nil {
			return nil, fmt.Errorf("ansible-test (%s): %w", i.runner.Name(), err)
		}
	}

	i.runPlugins(ctx, req.Source, res.Metadata)
	return res, nil
}

// fetch resolves the archive to a local file and checks it before
// anything is written to the workdir.
func (r *run) fetch(ctx context.Context) error {
	path, err := r.req.Source.Resolve(ctx, r.fetcher, r.workdir.Root(), r.logger)
	if err != nil {
		return newError(ErrSource, r.req.Source.String(), err)
	}
	r.archive = path

	rep, err := extract.Preflight(path)
	if err != nil {
		return newError(ErrExtraction, filepath.Base(path), err)
	}
	r.logger.Debug("Archive checked", "entries", rep.Entries, "compressed", rep.Compressed)
	r.report = rep
	return nil
}

func (r *run) extractTo(ctx context.Context, target string) error {
	if err := r.extractor.Extract(ctx, r.archive, target); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return newError(ErrExtraction, filepath.Base(r.archive), err)
	}
	r.logger.Debug("Archive extracted", "archive", r.archive, "target", target)
	return nil
}

// loadContents loads every unit the finder reports under root, stopping at
// the first failure.
func (r *run) loadContents(ctx context.Context, root string, docs *loaders.DocStrings) ([]loaders.Content, error) {
	registry := loaders.NewRegistry(loaders.Options{
		Logger:     r.logger,
		RenderDocs: r.cfg.RunAnsibleDoc,
		Renderer:   r.renderer,
	})

	var contents []loaders.Content
	for found, err := range finder.For(r.req.ArtifactType, r.logger).Find(root) {
		if err != nil {
			return nil, newError(ErrContent, "", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, err := registry.Load(found.ContentType, found.Path, root, docs)
		if err != nil {
			var le *loaders.LoadError
			if errors.As(err, &le) {
				return nil, newError(ErrContent, le.Path, err)
			}
			return nil, newError(ErrContent, found.Path, err)
		}
		r.logger.Info("Loading content", "type", c.ContentType, "name", c.Name)
		contents = append(contents, c)
	}
	return contents, nil
}

func summaries(contents []loaders.Content) []schema.ResultContentItem {
	items := make([]schema.ResultContentItem, 0, len(contents))
	for _, c := range contents {
		items = append(items, c.Summary())
	}
	return items
}

// checkFiles verifies that every path the metadata references exists under
// root. Symlinks are followed only while they stay inside root.
func checkFiles(root string, meta schema.Metadata) error {
	rt, err := os.OpenRoot(root)
	if err != nil {
		return newError(ErrValidation, root, err)
	}
	defer func() { _ = rt.Close() }()

	paths := []string{meta.ReadmePath()}
	if license := meta.LicensePath(); license != "" {
		paths = append(paths, license)
	}
	for _, p := range paths {
		local := filepath.FromSlash(p)
		if !filepath.IsLocal(local) {
			return errorf(ErrValidation, p, "Could not find file %s", filepath.Base(local))
		}
		info, err := rt.Stat(local)
		if err != nil || info.IsDir() {
			return errorf(ErrValidation, p, "Could not find file %s", filepath.Base(local))
		}
	}
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"galaxy-importer/internal/loaders"
	"galaxy-importer/internal/markup"
	"galaxy-importer/internal/testrunner"
	"galaxy-importer/pkg/artifact"
	"galaxy-importer/pkg/schema"
)

// DocumentationDir holds the extra markdown files of a collection.
const DocumentationDir = "docs"

func (r *run) importCollection(ctx context.Context) (*schema.ImportResult, testrunner.Target, error) {
	var target testrunner.Target

	if !r.report.Has(schema.ManifestFileName) {
		return nil, target, errorf(ErrManifestNotFound, schema.ManifestFileName, "No manifest found in collection")
	}

	pending, err := r.workdir.Placeholder()
	if err != nil {
		return nil, target, err
	}
	if err := r.extractTo(ctx, pending.Path()); err != nil {
		return nil, target, err
	}

	manifest, err := loadManifest(pending.Path())
	if err != nil {
		return nil, target, err
	}
	info := &manifest.CollectionInfo

	final, err := pending.Finalize(info.Namespace, info.Name)
	if err != nil {
		return nil, target, err
	}
	root := final.Path()
	r.logger.Debug("Renamed extract dir", "path", root)

	if err := matchFilename(r.req.Identity, info.Identity()); err != nil {
		return nil, target, err
	}
	if err := checkFiles(root, info); err != nil {
		return nil, target, err
	}

	fqcn := info.Namespace + "." + info.Name
	docs := r.docStrings(ctx, root, fqcn)

	r.logger.Info("Finding content inside collection")
	contents, err := r.loadContents(ctx, root, docs)
	if err != nil {
		return nil, target, err
	}

	docsBlob, err := r.buildDocsBlob(root, contents)
	if err != nil {
		return nil, target, err
	}

	requires, err := loaders.NewRuntimeFileLoader(root).RequiresAnsible()
	if err != nil {
		return nil, target, newError(ErrManifestValidation, loaders.RuntimeFile, err)
	}

	r.logger.Info("Collection Artifact loading complete")

	target = testrunner.Target{Root: root, Archive: r.archive, FQCN: fqcn}
	return &schema.ImportResult{
		Metadata:        info,
		DocsBlob:        docsBlob,
		Contents:        summaries(contents),
		RequiresAnsible: requires,
		ArtifactType:    artifact.TypeCollection,
	}, target, nil
}

func loadManifest(dir string) (*schema.Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, schema.ManifestFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errorf(ErrManifestNotFound, schema.ManifestFileName, "No manifest found in collection")
	}
	if err != nil {
		return nil, newError(ErrManifestValidation, schema.ManifestFileName, err)
	}

	m, err := schema.ParseManifest(data)
	if err != nil {
		return nil, newError(ErrManifestValidation, schema.ManifestFileName, err)
	}
	return m, nil
}

// matchFilename compares every non-empty filename field with the metadata.
func matchFilename(fromFile, fromMeta artifact.Identity) error {
	for _, field := range artifact.Fields() {
		want := fromFile.Get(field)
		if want == "" {
			continue
		}
		if got := fromMeta.Get(field); got != want {
			return errorf(ErrValidation, fromFile.Filename(),
				"Filename %s \"%s\" did not match metadata \"%s\"", field, want, got)
		}
	}
	return nil
}

// docStrings returns the accumulator shared by the plugin loaders, seeded
// from the configured source when documentation is enabled.
func (r *run) docStrings(ctx context.Context, root, fqcn string) *loaders.DocStrings {
	if r.docSource == nil || !r.cfg.RunAnsibleDoc {
		return loaders.NewDocStrings()
	}
	r.logger.Info("Getting doc strings", "collection", fqcn)
	docs, err := r.docSource.DocStrings(ctx, root, fqcn)
	if err != nil || docs == nil {
		r.logger.Warn("Doc string source failed; reading plugin sources instead", "error", err)
		return loaders.NewDocStrings()
	}
	return docs
}

// buildDocsBlob renders the collection readme and docs/ files. It returns
// the empty placeholder when rendering is disabled.
func (r *run) buildDocsBlob(root string, contents []loaders.Content) (*schema.DocsBlob, error) {
	blob := schema.EmptyDocsBlob()
	if !r.cfg.RunAnsibleDoc {
		return blob, nil
	}

	for _, c := range contents {
		blob.Contents = append(blob.Contents, c.DocsItem())
	}

	readme, err := markup.FindReadme(root)
	switch {
	case err != nil:
		r.logger.Error("Failed to read collection readme", "error", err)
	case readme == nil:
		r.logger.Error("No collection readme found")
	default:
		html, err := r.renderer.HTML(*readme)
		if err != nil {
			r.logger.Error("Failed to render collection readme", "error", err)
			break
		}
		blob.CollectionReadme = schema.RenderedDocFile{Name: &readme.Name, HTML: &html}
	}

	files, err := markup.DocFiles(filepath.Join(root, DocumentationDir))
	if err != nil {
		return nil, newError(ErrContent, DocumentationDir, fmt.Errorf("failed to read documentation files: %w", err))
	}
	for _, f := range files {
		html, err := r.renderer.HTML(f)
		if err != nil {
			return nil, newError(ErrContent, DocumentationDir+"/"+f.Name, err)
		}
		blob.DocumentationFiles = append(blob.DocumentationFiles, schema.RenderedDocFile{Name: &f.Name, HTML: &html})
	}
	return blob, nil
}

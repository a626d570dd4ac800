// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"

	"galaxy-importer/internal/config"
	"galaxy-importer/internal/extract"
	"galaxy-importer/internal/importer"
	"galaxy-importer/internal/issue"
	"galaxy-importer/internal/logging"
	"galaxy-importer/pkg/artifact"
	"galaxy-importer/pkg/schema"
	"galaxy-importer/pkg/types"

	perrors "github.com/jmgilman/go/errors"
)

// DefaultOutputFile is where the import result is written.
const DefaultOutputFile = "importer_result.json"

// importOptions holds the flags of the root command.
type importOptions struct {
	printResult bool
	role        bool
	output      string
	errorFile   string
	summary     bool
	configPath  string
	verbose     bool
}

func runImport(ctx context.Context, app *App, opts *importOptions, arg string) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
	if err != nil {
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, opts.verbose))
		writeFailureRecord(app, opts, err, perrors.CodeInvalidConfig)
		return &ExitError{Code: types.ExitImportFailed, Err: err}
	}

	level := cfg.LogLevelMain
	if opts.verbose {
		level = config.LogLevelDebug
	}
	logger := logging.New(app.stderr, level)

	req, err := newRequest(arg, opts.role)
	var res *schema.ImportResult
	if err == nil {
		res, err = app.NewImporter(cfg, logger).Import(ctx, req)
	}
	if err != nil {
		if importer.IsClassified(err) {
			logger.Error("The import failed for the following reason: " + err.Error())
		} else {
			logger.Error("Unexpected error occurred: " + err.Error())
		}
		ae := actionableImportError(err, arg, opts.role)
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+ae.Format(opts.verbose || !importer.IsClassified(err)))
		writeFailureRecord(app, opts, err, failureCode(err))
		return &ExitError{Code: types.ExitImportFailed, Err: ae}
	}

	data, err := json.MarshalIndent(res, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode import result: %w", err)
	}
	if opts.output != "" {
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.output, err)
		}
	}
	if opts.printResult {
		fmt.Fprintln(app.stdout, string(data))
	}
	if opts.summary {
		fmt.Fprintln(app.stdout, renderSummary(res))
	}
	return nil
}

// newRequest builds the import request for a local path or an http(s) URL.
// The archive filename must carry the package identity.
func newRequest(arg string, role bool) (importer.Request, error) {
	req := importer.Request{ArtifactType: artifact.TypeCollection}
	if role {
		req.ArtifactType = artifact.TypeRole
	}

	filename := arg
	if u, err := url.Parse(arg); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		req.Source = extract.Source{URL: arg}
		filename = path.Base(u.Path)
	} else {
		req.Source = extract.Source{Path: arg}
	}

	id, err := artifact.ParseFilename(filename)
	if err != nil {
		return req, &importer.Error{Kind: importer.ErrSource, Path: arg, Err: err}
	}
	req.Identity = id
	return req, nil
}

func actionableImportError(err error, arg string, role bool) *issue.ActionableError {
	op := "import collection"
	if role {
		op = "import role"
	}
	return issue.NewErrorContext().
		WithOperation(op).
		WithResource(arg).
		WithIssue(issueFor(err)).
		Wrap(err).
		Build()
}

// issueFor picks the catalog entry describing err.
func issueFor(err error) issue.Id {
	if errors.Is(err, artifact.ErrInvalidFilename) {
		return issue.InvalidFilenameId
	}
	switch importer.KindOf(err) {
	case importer.ErrSource:
		return issue.SourceUnavailableId
	case importer.ErrExtraction:
		return issue.ExtractionFailedId
	case importer.ErrManifestNotFound:
		return issue.ManifestNotFoundId
	case importer.ErrManifestValidation:
		return issue.ManifestInvalidId
	case importer.ErrRoleMetadataNotFound:
		return issue.RoleMetadataNotFoundId
	case importer.ErrRoleMetadata:
		return issue.RoleMetadataInvalidId
	case importer.ErrValidation:
		return issue.ValidationFailedId
	case importer.ErrContent:
		return issue.ContentLoadFailedId
	default:
		return issue.UnexpectedErrorId
	}
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"galaxy-importer/internal/importer"
	"galaxy-importer/pkg/artifact"

	perrors "github.com/jmgilman/go/errors"
)

// failureCode maps an import failure to a platform error code.
func failureCode(err error) perrors.ErrorCode {
	if errors.Is(err, artifact.ErrInvalidFilename) {
		return perrors.CodeInvalidInput
	}
	switch importer.KindOf(err) {
	case importer.ErrSource, importer.ErrManifestNotFound, importer.ErrRoleMetadataNotFound:
		return perrors.CodeNotFound
	case importer.ErrExtraction:
		return perrors.CodeExecutionFailed
	case importer.ErrManifestValidation, importer.ErrRoleMetadata:
		return perrors.CodeSchemaFailed
	case importer.ErrValidation, importer.ErrContent:
		return perrors.CodeInvalidInput
	}
	return perrors.CodeInternal
}

// failureRecord is the JSON document written by --error-file.
func failureRecord(err error, code perrors.ErrorCode) *perrors.ErrorResponse {
	ctx := map[string]interface{}{"classified": importer.IsClassified(err)}
	var ie *importer.Error
	if errors.As(err, &ie) {
		ctx["kind"] = ie.Kind.Error()
		if ie.Path != "" {
			ctx["path"] = ie.Path
		}
	}
	return perrors.ToJSON(perrors.WrapWithContext(err, code, err.Error(), ctx))
}

func writeFailureRecord(app *App, opts *importOptions, err error, code perrors.ErrorCode) {
	if opts.errorFile == "" {
		return
	}
	data, marshalErr := json.MarshalIndent(failureRecord(err, code), "", "    ")
	if marshalErr == nil {
		marshalErr = os.WriteFile(opts.errorFile, data, 0o644)
	}
	if marshalErr != nil {
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+fmt.Sprintf("failed to write %s: %v", opts.errorFile, marshalErr))
	}
}

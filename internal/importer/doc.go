// SPDX-License-Identifier: MPL-2.0

// Package importer runs the artifact import pipeline: it extracts a
// collection or role archive into a private working directory, parses and
// cross-checks its metadata, loads every content unit it contains and
// assembles the ImportResult.
//
// Every classified failure is an *Error that unwraps to one of the kind
// sentinels (ErrSource, ErrExtraction, ErrManifestNotFound, ...). Anything
// else returned by Import is unexpected.
package importer

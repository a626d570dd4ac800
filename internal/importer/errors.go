// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"errors"
	"fmt"
)

var (
	// ErrSource is returned when the archive can be neither found nor fetched.
	ErrSource = errors.New("archive source error")
	// ErrExtraction is returned when the archive cannot be unpacked.
	ErrExtraction = errors.New("archive extraction error")
	// ErrManifestNotFound is returned when a collection has no MANIFEST.json.
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrManifestValidation is returned for a malformed MANIFEST.json or runtime file.
	ErrManifestValidation = errors.New("manifest validation error")
	// ErrRoleMetadataNotFound is returned when a role has no meta/main.yml.
	ErrRoleMetadataNotFound = errors.New("role metadata not found")
	// ErrRoleMetadata is returned for malformed role metadata.
	ErrRoleMetadata = errors.New("role metadata error")
	// ErrValidation is returned when the filename, the metadata and the
	// extracted files disagree.
	ErrValidation = errors.New("validation error")
	// ErrContent is returned when a content unit cannot be loaded.
	ErrContent = errors.New("content error")
)

// Error is a classified import failure.
type Error struct {
	// Kind is one of the sentinel errors above.
	Kind error
	// Path is the file involved, relative to the artifact root when known.
	Path string
	// Err carries the reason.
	Err error
}

// Error returns the reason only; it is what users see.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Err.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsClassified reports whether err is an import failure with a known kind.
func IsClassified(err error) bool {
	var ie *Error
	return errors.As(err, &ie)
}

// KindOf returns the kind of a classified failure, or nil.
func KindOf(err error) error {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return nil
}

func newError(kind error, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

func errorf(kind error, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Err: fmt.Errorf(format, args...)}
}

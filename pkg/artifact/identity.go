// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
)

const (
	// FieldNamespace names the namespace component of an identity.
	FieldNamespace Field = "namespace"
	// FieldName names the name component of an identity.
	FieldName Field = "name"
	// FieldVersion names the version component of an identity.
	FieldVersion Field = "version"

	// ArchiveSuffix is the only archive extension accepted in filenames.
	ArchiveSuffix = ".tar.gz"
)

var (
	// ErrInvalidFilename is the sentinel error wrapped by InvalidFilenameError.
	ErrInvalidFilename = errors.New("invalid archive filename")

	filenamePattern = regexp.MustCompile(
		`^(?P<namespace>\w+)-(?P<name>\w+)-(?P<version>[0-9a-zA-Z.+-]+)\.tar\.gz$`,
	)
)

type (
	// Field identifies one component of an Identity.
	Field string

	// Identity is the (namespace, name, version) triple parsed from an archive
	// filename. Empty fields are allowed and are skipped by comparisons.
	Identity struct {
		Namespace string `json:"namespace"`
		Name      string `json:"name"`
		Version   string `json:"version"`
	}

	// InvalidFilenameError is returned when a filename does not match
	// <namespace>-<name>-<version>.tar.gz.
	InvalidFilenameError struct {
		Filename string
	}
)

// Error implements the error interface.
func (e *InvalidFilenameError) Error() string {
	return fmt.Sprintf("filename %q does not match <namespace>-<name>-<version>%s", e.Filename, ArchiveSuffix)
}

// Unwrap returns ErrInvalidFilename for errors.Is.
func (e *InvalidFilenameError) Unwrap() error { return ErrInvalidFilename }

// Fields returns the identity fields in comparison order.
func Fields() []Field {
	return []Field{FieldNamespace, FieldName, FieldVersion}
}

// ParseFilename extracts the identity from the base name of path.
func ParseFilename(path string) (Identity, error) {
	base := filepath.Base(path)
	m := filenamePattern.FindStringSubmatch(base)
	if m == nil {
		return Identity{}, &InvalidFilenameError{Filename: base}
	}
	return Identity{
		Namespace: m[filenamePattern.SubexpIndex("namespace")],
		Name:      m[filenamePattern.SubexpIndex("name")],
		Version:   m[filenamePattern.SubexpIndex("version")],
	}, nil
}

// Get returns the value of a single field.
func (id Identity) Get(f Field) string {
	switch f {
	case FieldNamespace:
		return id.Namespace
	case FieldName:
		return id.Name
	case FieldVersion:
		return id.Version
	default:
		return ""
	}
}

// IsZero reports whether no field is set.
func (id Identity) IsZero() bool {
	return id.Namespace == "" && id.Name == "" && id.Version == ""
}

// RoleSubPath is the directory a role archive unpacks into:
// <namespace>.<name>-<version>.
func (id Identity) RoleSubPath() string {
	return fmt.Sprintf("%s.%s-%s", id.Namespace, id.Name, id.Version)
}

// Filename renders the identity back into an archive filename.
func (id Identity) Filename() string {
	return fmt.Sprintf("%s-%s-%s%s", id.Namespace, id.Name, id.Version, ArchiveSuffix)
}

// String returns namespace.name:version.
func (id Identity) String() string {
	return fmt.Sprintf("%s.%s:%s", id.Namespace, id.Name, id.Version)
}

// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"fmt"
)

const (
	// TypeCollection is a namespaced, versioned bundle of content with a MANIFEST.json.
	TypeCollection Type = "collection"
	// TypeRole is a standalone role archive described by meta/main.yml.
	TypeRole Type = "role"
)

// ErrInvalidType is the sentinel error wrapped by InvalidTypeError.
var ErrInvalidType = errors.New("invalid artifact type")

type (
	// Type selects the import strategy.
	Type string

	// InvalidTypeError is returned when a Type value is not recognized.
	InvalidTypeError struct {
		Value Type
	}
)

// Error implements the error interface.
func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid artifact type %q (valid: %s, %s)", e.Value, TypeCollection, TypeRole)
}

// Unwrap returns ErrInvalidType for errors.Is.
func (e *InvalidTypeError) Unwrap() error { return ErrInvalidType }

// Validate returns an error if the Type is not collection or role.
func (t Type) Validate() error {
	switch t {
	case TypeCollection, TypeRole:
		return nil
	default:
		return &InvalidTypeError{Value: t}
	}
}

// String returns the wire value of the type.
func (t Type) String() string { return string(t) }

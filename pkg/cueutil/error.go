// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

type formattedError struct {
	msg string
	err error
}

func (e *formattedError) Error() string { return e.msg }

func (e *formattedError) Unwrap() error { return e.err }

// FormatError flattens a CUE error into "<file>: <path>: <message>" lines,
// rendering list indices as "a[0].b" and dropping the leading definition
// name. Non-CUE errors are prefixed with file. The result wraps err.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}

	var cueErr cueerrors.Error
	if !errors.As(err, &cueErr) {
		return fmt.Errorf("%s: %w", file, err)
	}

	list := cueerrors.Errors(err)
	lines := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, e := range list {
		path := formatPath(trimDefinition(cueerrors.Path(e)))
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)

		line := msg
		if path != "" {
			line = path + ": " + msg
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}

	switch len(lines) {
	case 0:
		return fmt.Errorf("%s: %w", file, err)
	case 1:
		return &formattedError{msg: file + ": " + lines[0], err: err}
	default:
		return &formattedError{msg: file + ": validation failed:\n  " + strings.Join(lines, "\n  "), err: err}
	}
}

// trimDefinition drops a leading "#Def" element; paths are reported
// relative to the validated document.
func trimDefinition(path []string) []string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		return path[1:]
	}
	return path
}

func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isIndex(part):
			b.WriteString("[" + part + "]")
		case i > 0:
			b.WriteString("." + part)
		default:
			b.WriteString(part)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize rejects data larger than maxSize.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), maxSize)
	}
	return nil
}

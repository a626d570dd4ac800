// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceUnavailable is returned when an archive can be neither found
	// locally nor fetched.
	ErrSourceUnavailable = errors.New("archive source unavailable")

	// ErrUnsafeMember is returned by Preflight for absolute or parent-escaping
	// member names.
	ErrUnsafeMember = errors.New("archive member escapes extraction directory")
)

// ExtractionError reports a failed unpack together with the tool's stderr.
type ExtractionError struct {
	Archive string
	Stderr  string
	Err     error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("error extracting %s: %v", e.Archive, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ", stderr=" + stderr
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ExtractionError) Unwrap() error { return e.Err }

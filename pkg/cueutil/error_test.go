// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

func TestFormatErrorNonCUE(t *testing.T) {
	t.Parallel()

	if FormatError(nil, "x.cue") != nil {
		t.Error("FormatError(nil) should be nil")
	}

	base := errors.New("boom")
	err := FormatError(base, "x.cue")
	if !errors.Is(err, base) {
		t.Errorf("FormatError() should wrap non-CUE errors, got %v", err)
	}
	if err.Error() != "x.cue: boom" {
		t.Errorf("FormatError() = %q, want file prefix", err)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"collection_info"}, "collection_info"},
		{[]string{"collection_info", "authors", "0"}, "collection_info.authors[0]"},
		{[]string{"a", "1", "b", "22"}, "a[1].b[22]"},
		{[]string{"0"}, "0"},
	}

	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestTrimDefinition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"#Entry", "name"}, "name"},
		{[]string{"#Manifest", "collection_info", "authors", "0"}, "collection_info.authors[0]"},
		{[]string{"collection_info", "#inner"}, "collection_info.#inner"},
	}

	for _, tt := range tests {
		if got := formatPath(trimDefinition(tt.path)); got != tt.want {
			t.Errorf("formatPath(trimDefinition(%v)) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFormatErrorCUE(t *testing.T) {
	t.Parallel()

	v := cuecontext.New().CompileString(`
#Entry: {name: =~"^[a-z]+$"}
value: #Entry & {name: "Beta"}
`)
	cueErr := v.Validate(cue.Concrete(true))
	if cueErr == nil {
		t.Fatal("Validate() error = nil, want constraint violation")
	}

	err := FormatError(cueErr, "entry.cue")
	if !strings.HasPrefix(err.Error(), "entry.cue: ") || !strings.Contains(err.Error(), "value.name: ") {
		t.Errorf("FormatError() = %q, want file and value.name", err)
	}
	var wrapped cueerrors.Error
	if !errors.As(err, &wrapped) {
		t.Error("FormatError() should wrap the CUE error")
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "f"); err != nil {
		t.Errorf("CheckFileSize() at limit = %v", err)
	}
	if err := CheckFileSize(make([]byte, 11), 10, "f"); err == nil {
		t.Error("CheckFileSize() over limit should fail")
	}
}

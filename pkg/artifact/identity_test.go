// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"testing"
)

func TestParseFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Identity
		wantErr bool
	}{
		{
			name:  "simple",
			input: "acme-tools-1.0.0.tar.gz",
			want:  Identity{Namespace: "acme", Name: "tools", Version: "1.0.0"},
		},
		{
			name:  "path prefix is ignored",
			input: "/var/uploads/acme-tools-1.0.0.tar.gz",
			want:  Identity{Namespace: "acme", Name: "tools", Version: "1.0.0"},
		},
		{
			name:  "underscores and prerelease",
			input: "my_org-net_utils-2.1.0-beta.1+build.5.tar.gz",
			want:  Identity{Namespace: "my_org", Name: "net_utils", Version: "2.1.0-beta.1+build.5"},
		},
		{name: "wrong extension", input: "acme-tools-1.0.0.zip", wantErr: true},
		{name: "missing version", input: "acme-tools.tar.gz", wantErr: true},
		{name: "dotted namespace", input: "acme.io-tools-1.0.0.tar.gz", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFilename(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFilename) {
					t.Fatalf("ParseFilename(%q) error = %v, want ErrInvalidFilename", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFilename(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFilename(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIdentityHelpers(t *testing.T) {
	t.Parallel()

	id := Identity{Namespace: "acme", Name: "web", Version: "1.2.3"}

	if got := id.RoleSubPath(); got != "acme.web-1.2.3" {
		t.Errorf("RoleSubPath() = %q", got)
	}
	if got := id.Filename(); got != "acme-web-1.2.3.tar.gz" {
		t.Errorf("Filename() = %q", got)
	}
	for _, f := range Fields() {
		if id.Get(f) == "" {
			t.Errorf("Get(%s) returned empty value", f)
		}
	}
	if id.IsZero() {
		t.Error("IsZero() = true for populated identity")
	}
	if !(Identity{}).IsZero() {
		t.Error("IsZero() = false for empty identity")
	}

	roundTrip, err := ParseFilename(id.Filename())
	if err != nil || roundTrip != id {
		t.Errorf("ParseFilename(Filename()) = %+v, %v", roundTrip, err)
	}
}

func TestTypeValidate(t *testing.T) {
	t.Parallel()

	for _, valid := range []Type{TypeCollection, TypeRole} {
		if err := valid.Validate(); err != nil {
			t.Errorf("Type(%q).Validate() = %v", valid, err)
		}
	}

	err := Type("bundle").Validate()
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("Type(bundle).Validate() = %v, want ErrInvalidType", err)
	}
	var typeErr *InvalidTypeError
	if !errors.As(err, &typeErr) || typeErr.Value != "bundle" {
		t.Errorf("errors.As InvalidTypeError failed: %v", err)
	}
}

// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableErrorError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "import collection"},
			want: "failed to import collection",
		},
		{
			name: "with resource",
			err:  &ActionableError{Operation: "import collection", Resource: "acme-tools-1.0.0.tar.gz"},
			want: "failed to import collection: acme-tools-1.0.0.tar.gz",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "import role",
				Resource:  "acme-web-1.0.0.tar.gz",
				Cause:     errors.New("no meta/main.yml"),
			},
			want: "failed to import role: acme-web-1.0.0.tar.gz: no meta/main.yml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableErrorFormat(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("manifest not found")
	err := NewErrorContext().
		WithOperation("import collection").
		WithResource("acme-tools-1.0.0.tar.gz").
		WithIssue(ManifestNotFoundId).
		WithSuggestion("extra hint").
		Wrap(fmt.Errorf("reading MANIFEST.json: %w", sentinel)).
		Build()

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should reach the wrapped sentinel")
	}

	short := err.Format(false)
	if !strings.Contains(short, "  • Build the archive with") || !strings.Contains(short, "  • extra hint") {
		t.Errorf("Format(false) missing suggestions:\n%s", short)
	}
	if strings.Contains(short, "Error chain:") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "2. manifest not found") {
		t.Errorf("Format(true) missing chain:\n%s", verbose)
	}
}

func TestBuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if NewErrorContext().Wrap(errors.New("x")).Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return nil")
	}
}

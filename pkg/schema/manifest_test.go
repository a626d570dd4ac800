// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"galaxy-importer/pkg/artifact"
)

const validManifest = `{
  "collection_info": {
    "namespace": "acme",
    "name": "tools",
    "version": "1.2.0",
    "authors": ["Jane Doe <jane@example.com>"],
    "readme": "README.md",
    "license_file": "LICENSE",
    "description": "Acme tooling",
    "tags": ["networking", "cloud"],
    "dependencies": {"acme.base": ">=1.0.0"},
    "repository": null
  },
  "file_manifest_file": {"name": "FILES.json", "ftype": "file", "format": 1},
  "format": 1
}`

func TestParseManifest(t *testing.T) {
	t.Parallel()

	m, err := ParseManifest([]byte(validManifest))
	if err != nil {
		t.Fatalf("ParseManifest() unexpected error: %v", err)
	}

	info := m.CollectionInfo
	want := artifact.Identity{Namespace: "acme", Name: "tools", Version: "1.2.0"}
	if got := info.Identity(); got != want {
		t.Errorf("Identity() = %+v, want %+v", got, want)
	}
	if info.ReadmePath() != "README.md" || info.LicensePath() != "LICENSE" {
		t.Errorf("paths = %q, %q", info.ReadmePath(), info.LicensePath())
	}
	if info.Description == nil || *info.Description != "Acme tooling" {
		t.Errorf("Description = %v", info.Description)
	}
	if info.Repository != nil {
		t.Errorf("Repository = %v, want nil", *info.Repository)
	}
	if len(info.Tags) != 2 || info.Dependencies["acme.base"] != ">=1.0.0" {
		t.Errorf("Tags = %v, Dependencies = %v", info.Tags, info.Dependencies)
	}
	if info.License == nil {
		t.Error("License should default to an empty list")
	}
}

func TestParseManifestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(ci map[string]any)
		raw     string
		wantErr string
	}{
		{
			name:    "missing readme",
			mutate:  func(ci map[string]any) { delete(ci, "readme") },
			wantErr: "readme",
		},
		{
			name:    "missing authors",
			mutate:  func(ci map[string]any) { delete(ci, "authors") },
			wantErr: "authors",
		},
		{
			name:    "empty authors",
			mutate:  func(ci map[string]any) { ci["authors"] = []string{} },
			wantErr: "authors",
		},
		{
			name:    "uppercase namespace",
			mutate:  func(ci map[string]any) { ci["namespace"] = "Acme" },
			wantErr: "namespace",
		},
		{
			name:    "leading underscore name",
			mutate:  func(ci map[string]any) { ci["name"] = "_tools" },
			wantErr: "name",
		},
		{
			name:    "double underscore name",
			mutate:  func(ci map[string]any) { ci["name"] = "my__tools" },
			wantErr: "name",
		},
		{
			name:    "version type mismatch",
			mutate:  func(ci map[string]any) { ci["version"] = 1 },
			wantErr: "version",
		},
		{
			name:    "non semver version",
			mutate:  func(ci map[string]any) { ci["version"] = "1.0" },
			wantErr: "semantic version",
		},
		{
			name:    "unknown field",
			mutate:  func(ci map[string]any) { ci["maintainers"] = []string{"x"} },
			wantErr: "maintainers",
		},
		{
			name: "too many tags",
			mutate: func(ci map[string]any) {
				tags := make([]string, 21)
				for i := range tags {
					tags[i] = "tag"
				}
				ci["tags"] = tags
			},
			wantErr: "tags",
		},
		{name: "not json", raw: "{nope", wantErr: ManifestFileName},
		{name: "missing collection_info", raw: `{"format": 1}`, wantErr: "collection_info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := []byte(tt.raw)
			if tt.mutate != nil {
				data = mutateManifest(t, tt.mutate)
			}
			_, err := ParseManifest(data)
			if err == nil {
				t.Fatal("ParseManifest() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseManifest() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func mutateManifest(t *testing.T, mutate func(map[string]any)) []byte {
	t.Helper()

	var doc map[string]any
	if err := json.Unmarshal([]byte(validManifest), &doc); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	mutate(doc["collection_info"].(map[string]any))
	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return out
}

// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"strings"
	"testing"

	"galaxy-importer/pkg/artifact"
)

func TestParseRoleMeta(t *testing.T) {
	t.Parallel()

	fromFile := artifact.Identity{Namespace: "acme", Name: "web", Version: "1.0.0"}

	tests := []struct {
		name       string
		data       string
		wantID     artifact.Identity
		wantMinVer string
		wantErr    string
	}{
		{
			name: "identity from filename",
			data: `
galaxy_info:
  author: Jane
  description: Web server role
  min_ansible_version: "2.9"
  platforms:
    - name: EL
      versions: [7, 8]
  galaxy_tags: [web]
dependencies: []
`,
			wantID:     fromFile,
			wantMinVer: "2.9",
		},
		{
			name: "declared namespace and role_name win",
			data: `
galaxy_info:
  namespace: other
  role_name: nginx
  author: Jane
  description: Web server role
  min_ansible_version: 2.9
`,
			wantID:     artifact.Identity{Namespace: "other", Name: "nginx", Version: "1.0.0"},
			wantMinVer: "2.9",
		},
		{
			name: "three part version string",
			data: `
galaxy_info:
  author: Jane
  description: d
  min_ansible_version: "2.10.0"
`,
			wantID:     fromFile,
			wantMinVer: "2.10.0",
		},
		{
			name:    "missing author",
			data:    "galaxy_info:\n  description: d\n  min_ansible_version: '2.9'\n",
			wantErr: "author",
		},
		{
			name:    "missing min_ansible_version",
			data:    "galaxy_info:\n  author: a\n  description: d\n",
			wantErr: "min_ansible_version",
		},
		{
			name:    "missing galaxy_info",
			data:    "dependencies: []\n",
			wantErr: "galaxy_info",
		},
		{
			name:    "wrong type",
			data:    "galaxy_info:\n  author: [a, b]\n  description: d\n  min_ansible_version: '2.9'\n",
			wantErr: "validation",
		},
		{
			name:    "malformed yaml",
			data:    "galaxy_info: [\n",
			wantErr: "invalid YAML",
		},
		{
			name:    "empty document",
			data:    "",
			wantErr: "validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, err := ParseRoleMeta([]byte(tt.data), fromFile)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("ParseRoleMeta() succeeded, want error containing %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("ParseRoleMeta() error = %q, want substring %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRoleMeta() unexpected error: %v", err)
			}
			if got := meta.Identity(); got != tt.wantID {
				t.Errorf("Identity() = %+v, want %+v", got, tt.wantID)
			}
			if meta.MinAnsibleVersion != tt.wantMinVer {
				t.Errorf("MinAnsibleVersion = %q, want %q", meta.MinAnsibleVersion, tt.wantMinVer)
			}
			if meta.ReadmePath() != "" || meta.LicensePath() != "" {
				t.Error("roles declare no readme or license paths")
			}
		})
	}
}

func TestYAMLToJSONNestedKeys(t *testing.T) {
	t.Parallel()

	out, err := YAMLToJSON([]byte("a:\n  1: one\n  true: yes\n"))
	if err != nil {
		t.Fatalf("YAMLToJSON() unexpected error: %v", err)
	}
	if got := string(out); !strings.Contains(got, `"1":"one"`) || !strings.Contains(got, `"true":"yes"`) {
		t.Errorf("YAMLToJSON() = %s", got)
	}
}

// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"galaxy-importer/pkg/artifact"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const roleMetaSchemaURL = "role_meta_schema.json"

// RoleMetaFileNames are the accepted metadata files under a role's meta/ directory, in lookup order.
var RoleMetaFileNames = []string{"main.yml", "main.yaml"}

var (
	//go:embed role_meta_schema.json
	roleMetaSchema []byte

	compileRoleMetaSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(roleMetaSchema))
		if err != nil {
			return nil, err
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(roleMetaSchemaURL, doc); err != nil {
			return nil, err
		}
		return c.Compile(roleMetaSchemaURL)
	})
)

type (
	// RoleMetadata is the metadata of a standalone role, taken from the
	// galaxy_info block of meta/main.yml and the archive filename.
	RoleMetadata struct {
		Namespace         string         `json:"namespace"`
		Name              string         `json:"name"`
		Version           string         `json:"version"`
		Author            string         `json:"author"`
		Description       string         `json:"description"`
		Company           *string        `json:"company"`
		License           any            `json:"license"`
		MinAnsibleVersion string         `json:"min_ansible_version"`
		Platforms         []RolePlatform `json:"platforms"`
		GalaxyTags        []string       `json:"galaxy_tags"`
		Dependencies      []any          `json:"dependencies"`
	}

	// RolePlatform is one entry of galaxy_info.platforms.
	RolePlatform struct {
		Name     string `json:"name"`
		Versions []any  `json:"versions"`
	}

	roleMetaMain struct {
		GalaxyInfo struct {
			RoleName          string         `json:"role_name"`
			Namespace         string         `json:"namespace"`
			Author            string         `json:"author"`
			Description       string         `json:"description"`
			Company           *string        `json:"company"`
			License           any            `json:"license"`
			MinAnsibleVersion any            `json:"min_ansible_version"`
			Platforms         []RolePlatform `json:"platforms"`
			GalaxyTags        []string       `json:"galaxy_tags"`
		} `json:"galaxy_info"`
		Dependencies []any `json:"dependencies"`
	}
)

// ParseRoleMeta decodes and validates the contents of meta/main.yml. The
// declared namespace and role_name override id; the version always comes
// from id.
func ParseRoleMeta(data []byte, id artifact.Identity) (*RoleMetadata, error) {
	jsonData, err := YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML in role metadata: %w", err)
	}

	sch, err := compileRoleMetaSchema()
	if err != nil {
		return nil, fmt.Errorf("internal error: failed to compile role metadata schema: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("invalid role metadata: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("role metadata failed validation: %w", err)
	}

	var raw roleMetaMain
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid role metadata: %w", err)
	}

	gi := raw.GalaxyInfo
	meta := &RoleMetadata{
		Namespace:         firstNonEmpty(gi.Namespace, id.Namespace),
		Name:              firstNonEmpty(gi.RoleName, id.Name),
		Version:           id.Version,
		Author:            gi.Author,
		Description:       gi.Description,
		Company:           gi.Company,
		License:           gi.License,
		MinAnsibleVersion: scalarString(gi.MinAnsibleVersion),
		Platforms:         gi.Platforms,
		GalaxyTags:        gi.GalaxyTags,
		Dependencies:      raw.Dependencies,
	}
	if meta.Platforms == nil {
		meta.Platforms = []RolePlatform{}
	}
	if meta.GalaxyTags == nil {
		meta.GalaxyTags = []string{}
	}
	if meta.Dependencies == nil {
		meta.Dependencies = []any{}
	}
	return meta, nil
}

// Identity implements Metadata.
func (r *RoleMetadata) Identity() artifact.Identity {
	return artifact.Identity{Namespace: r.Namespace, Name: r.Name, Version: r.Version}
}

// ReadmePath implements Metadata. Roles do not declare a readme.
func (r *RoleMetadata) ReadmePath() string { return "" }

// LicensePath implements Metadata. Roles do not declare a license file.
func (r *RoleMetadata) LicensePath() string { return "" }

// YAMLToJSON decodes a single YAML document and re-encodes it as JSON.
// Mapping keys are stringified so nested maps stay JSON-compatible.
func YAMLToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(normalizeYAML(doc))
}

func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[yamlKey(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}

func yamlKey(k any) string {
	switch t := k.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// scalarString renders a YAML scalar that may be typed as a number.
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// SPDX-License-Identifier: MPL-2.0

// Package schema defines the import data model: collection manifests, role
// metadata, content types and the ImportResult record written by the CLI.
//
// The collection manifest (MANIFEST.json) is validated against the embedded
// CUE definition #Manifest. Role metadata (meta/main.yml) is decoded from YAML
// and validated against an embedded JSON Schema.
package schema

// SPDX-License-Identifier: MPL-2.0

package schema

import (
	_ "embed"
	"fmt"

	"galaxy-importer/pkg/artifact"
	"galaxy-importer/pkg/cueutil"

	"github.com/Masterminds/semver/v3"
)

// ManifestFileName is the collection manifest at the artifact root.
const ManifestFileName = "MANIFEST.json"

//go:embed manifest_schema.cue
var manifestSchema []byte

type (
	// Manifest is the decoded MANIFEST.json of a collection.
	Manifest struct {
		CollectionInfo   CollectionInfo `json:"collection_info"`
		FileManifestFile map[string]any `json:"file_manifest_file,omitempty"`
		Format           int            `json:"format,omitempty"`
	}

	// CollectionInfo is the collection_info block of a manifest.
	CollectionInfo struct {
		Namespace     string            `json:"namespace"`
		Name          string            `json:"name"`
		Version       string            `json:"version"`
		License       []string          `json:"license"`
		Description   *string           `json:"description"`
		Repository    *string           `json:"repository"`
		Documentation *string           `json:"documentation"`
		Homepage      *string           `json:"homepage"`
		Issues        *string           `json:"issues"`
		Authors       []string          `json:"authors"`
		Tags          []string          `json:"tags"`
		LicenseFile   *string           `json:"license_file"`
		Readme        string            `json:"readme"`
		Dependencies  map[string]string `json:"dependencies"`
	}
)

// ParseManifest validates data against #Manifest and applies the checks CUE
// cannot express: the version must be strict semver.
func ParseManifest(data []byte) (*Manifest, error) {
	res, err := cueutil.Decode[Manifest](manifestSchema, data, "#Manifest",
		cueutil.WithFilename(ManifestFileName),
		cueutil.WithFormat(cueutil.FormatJSON),
	)
	if err != nil {
		return nil, err
	}

	m := res.Value
	info := &m.CollectionInfo
	if _, err := semver.StrictNewVersion(info.Version); err != nil {
		return nil, fmt.Errorf("%s: collection_info.version: %q is not a valid semantic version: %w",
			ManifestFileName, info.Version, err)
	}

	if info.Tags == nil {
		info.Tags = []string{}
	}
	if info.License == nil {
		info.License = []string{}
	}
	if info.Dependencies == nil {
		info.Dependencies = map[string]string{}
	}
	return m, nil
}

// Identity implements Metadata.
func (c *CollectionInfo) Identity() artifact.Identity {
	return artifact.Identity{Namespace: c.Namespace, Name: c.Name, Version: c.Version}
}

// ReadmePath implements Metadata.
func (c *CollectionInfo) ReadmePath() string { return c.Readme }

// LicensePath implements Metadata.
func (c *CollectionInfo) LicensePath() string {
	if c.LicenseFile == nil {
		return ""
	}
	return *c.LicenseFile
}

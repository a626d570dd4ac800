// SPDX-License-Identifier: MPL-2.0

package schema

import "galaxy-importer/pkg/artifact"

// Metadata is the declared description of an artifact, implemented by
// CollectionInfo and RoleMetadata.
type Metadata interface {
	// Identity is the declared namespace, name and version.
	Identity() artifact.Identity
	// ReadmePath is relative to the artifact root; empty when not declared.
	ReadmePath() string
	// LicensePath is relative to the artifact root; empty when not declared.
	LicensePath() string
}

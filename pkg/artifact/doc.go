// SPDX-License-Identifier: MPL-2.0

// Package artifact describes what is being imported: the artifact kind
// (collection or role) and the identity encoded in an archive filename.
//
// An archive filename has the form <namespace>-<name>-<version>.tar.gz.
// Namespace and name are restricted to word characters; the version may
// contain alphanumerics, '.', '+' and '-'.
package artifact

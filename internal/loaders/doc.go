// SPDX-License-Identifier: MPL-2.0

// Package loaders turns discovered content units into Content records.
//
// A Registry maps every schema.ContentType to exactly one Loader. Plugin
// files are read for their DOCUMENTATION, EXAMPLES and RETURN blocks; roles
// embedded in a collection contribute their meta/main.yml description and
// rendered README. The package also reads meta/runtime.yml for the
// requires_ansible constraint of a collection.
package loaders

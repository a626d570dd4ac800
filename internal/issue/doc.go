// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of import failure
// explanations.
//
// An ActionableError names the operation that failed, the resource involved
// and a list of suggestions. Each catalog Issue carries the same suggestions
// plus a Markdown explanation rendered with glamour in verbose CLI output.
package issue

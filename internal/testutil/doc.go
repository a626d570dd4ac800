// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on error, plus
// builders for collection and role archives.
//
// Archives are written in-process with archive/tar and compress/gzip so tests
// do not depend on external tools. NativeExtractor unpacks them the same way
// for pipeline tests that should not shell out to tar.
package testutil

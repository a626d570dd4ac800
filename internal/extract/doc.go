// SPDX-License-Identifier: MPL-2.0

// Package extract turns an uploaded or remote archive into an extracted
// directory tree owned by a single import run.
//
// A run acquires a Workdir, resolves its Source to a local archive (fetching
// it over HTTP when needed), checks it with Preflight and unpacks it with an
// Extractor. Collections are unpacked into a placeholder directory that only
// becomes a FinalDir once the manifest has named the collection.
package extract

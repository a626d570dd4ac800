// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the galaxy-importer command line.
//
// The root command takes one archive path or URL. Exit status is 0 when the
// result was written and 1 for any failure; classified failures print a
// one-line reason, unexpected ones the full error chain.
package cmd

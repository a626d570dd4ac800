// SPDX-License-Identifier: MPL-2.0

// Package config loads importer settings using Viper with CUE as the file format.
//
// Settings come from, in increasing precedence: built-in defaults, a CUE
// file validated against the embedded #Config schema, and GALAXY_IMPORTER_*
// environment variables. The file is taken from an explicit path, then from
// $GALAXY_IMPORTER_CONFIG, then from config.cue in the platform config
// directory (for example ~/.config/galaxy-importer/config.cue on Linux).
// A missing file is not an error.
package config

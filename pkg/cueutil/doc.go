// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates documents against definitions in an embedded
// CUE schema and decodes them into Go values.
//
// Both CUE and JSON inputs are supported. JSON documents are converted to a
// CUE expression with positions preserved, so validation errors point at the
// offending field:
//
//	//go:embed manifest_schema.cue
//	var manifestSchema []byte
//
//	res, err := cueutil.Decode[Manifest](
//	    manifestSchema,
//	    data,
//	    "#Manifest",
//	    cueutil.WithFilename("MANIFEST.json"),
//	    cueutil.WithFormat(cueutil.FormatJSON),
//	)
package cueutil

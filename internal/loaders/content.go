// SPDX-License-Identifier: MPL-2.0

package loaders

import (
	"context"
	"errors"
	"fmt"

	"galaxy-importer/pkg/schema"
)

// ErrUnknownContentType is returned for content types with no registered loader.
var ErrUnknownContentType = errors.New("no loader registered for content type")

type (
	// Content is a loaded content unit.
	Content struct {
		Name        string
		ContentType schema.ContentType
		Description *string
		DocStrings  map[string]any
		ReadmeFile  *string
		ReadmeHTML  *string
	}

	// LoadError reports a content unit that could not be loaded.
	LoadError struct {
		Path string
		Err  error
	}

	// DocStrings accumulates plugin documentation keyed by content type
	// and plugin name. It is owned by a single import run.
	DocStrings struct {
		entries map[schema.ContentType]map[string]map[string]any
	}

	// DocStringSource supplies pre-computed documentation for a whole
	// collection. fqcn is "<namespace>.<name>".
	DocStringSource interface {
		DocStrings(ctx context.Context, root, fqcn string) (*DocStrings, error)
	}
)

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error { return e.Err }

// NewDocStrings returns an empty accumulator.
func NewDocStrings() *DocStrings {
	return &DocStrings{entries: map[schema.ContentType]map[string]map[string]any{}}
}

// Get returns the documentation stored for a plugin.
func (d *DocStrings) Get(ct schema.ContentType, name string) (map[string]any, bool) {
	if d == nil {
		return nil, false
	}
	doc, ok := d.entries[ct][name]
	return doc, ok
}

// Set stores the documentation of a plugin.
func (d *DocStrings) Set(ct schema.ContentType, name string, doc map[string]any) {
	byName, ok := d.entries[ct]
	if !ok {
		byName = map[string]map[string]any{}
		d.entries[ct] = byName
	}
	byName[name] = doc
}

// Len returns the number of stored plugins.
func (d *DocStrings) Len() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, byName := range d.entries {
		n += len(byName)
	}
	return n
}

// Summary is the short listing of c used in ImportResult.Contents.
func (c Content) Summary() schema.ResultContentItem {
	return schema.ResultContentItem{
		Name:        c.Name,
		ContentType: c.ContentType,
		Description: c.Description,
	}
}

// DocsItem is the documentation entry of c used in the docs blob.
func (c Content) DocsItem() schema.DocsBlobContentItem {
	return schema.DocsBlobContentItem{
		ContentName: c.Name,
		ContentType: c.ContentType,
		DocStrings:  c.DocStrings,
		ReadmeFile:  c.ReadmeFile,
		ReadmeHTML:  c.ReadmeHTML,
	}
}

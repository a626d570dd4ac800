// SPDX-License-Identifier: MPL-2.0

package schema

import "galaxy-importer/pkg/artifact"

type (
	// ImportResult is the record produced by a successful import.
	ImportResult struct {
		Metadata        Metadata            `json:"metadata"`
		DocsBlob        *DocsBlob           `json:"docs_blob"`
		Contents        []ResultContentItem `json:"contents"`
		RequiresAnsible *string             `json:"requires_ansible"`
		ArtifactType    artifact.Type       `json:"artifact_type"`
	}

	// ResultContentItem is the short listing of one content unit.
	ResultContentItem struct {
		Name        string      `json:"name"`
		ContentType ContentType `json:"content_type"`
		Description *string     `json:"description"`
	}

	// DocsBlob carries rendered documentation for a collection.
	DocsBlob struct {
		CollectionReadme   RenderedDocFile       `json:"collection_readme"`
		DocumentationFiles []RenderedDocFile     `json:"documentation_files"`
		Contents           []DocsBlobContentItem `json:"contents"`
	}

	// RenderedDocFile is a markup file and its sanitized HTML.
	RenderedDocFile struct {
		Name *string `json:"name"`
		HTML *string `json:"html"`
	}

	// DocsBlobContentItem is the documentation of one content unit.
	DocsBlobContentItem struct {
		ContentName string         `json:"content_name"`
		ContentType ContentType    `json:"content_type"`
		DocStrings  map[string]any `json:"doc_strings"`
		ReadmeFile  *string        `json:"readme_file"`
		ReadmeHTML  *string        `json:"readme_html"`
	}
)

// EmptyDocsBlob is the placeholder used when documentation rendering is disabled.
func EmptyDocsBlob() *DocsBlob {
	return &DocsBlob{
		DocumentationFiles: []RenderedDocFile{},
		Contents:           []DocsBlobContentItem{},
	}
}

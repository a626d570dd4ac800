// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Catalog IDs.
const (
	InvalidFilenameId Id = iota + 1
	SourceUnavailableId
	ExtractionFailedId
	ManifestNotFoundId
	ManifestInvalidId
	RoleMetadataNotFoundId
	RoleMetadataInvalidId
	ValidationFailedId
	ContentLoadFailedId
	ConfigLoadFailedId
	UnexpectedErrorId
)

type (
	// Id identifies a catalog issue.
	Id int

	// MarkdownMsg is Markdown text rendered for the user.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue explains one class of failure.
	Issue struct {
		id          Id
		title       string
		mdMsg       MarkdownMsg
		suggestions []string
		docLinks    []HttpLink
	}
)

var (
	render = glamour.Render

	catalog = []*Issue{
		{
			id:    InvalidFilenameId,
			title: "Archive filename not recognized",
			mdMsg: `
# Archive filename not recognized

The archive name must be ` + "`<namespace>-<name>-<version>.tar.gz`" + `. Namespace and
name may contain letters, digits and underscores only.`,
			suggestions: []string{
				"Rename the archive to <namespace>-<name>-<version>.tar.gz",
				"Build the archive with 'ansible-galaxy collection build'",
			},
		},
		{
			id:    SourceUnavailableId,
			title: "Archive could not be read",
			mdMsg: `
# Archive could not be read

The archive was not found on disk and could not be downloaded.`,
			suggestions: []string{
				"Check that the archive path is correct",
				"If a download URL was given, check that it is reachable",
			},
		},
		{
			id:    ExtractionFailedId,
			title: "Archive extraction failed",
			mdMsg: `
# Archive extraction failed

The archive is not a readable tar file, or one of its members would be
written outside the extraction directory.

~~~
$ tar -tzf <archive>
~~~`,
			suggestions: []string{
				"Verify the archive with 'tar -tzf <archive>'",
				"Make sure 'tar' is installed and on PATH",
			},
		},
		{
			id:    ManifestNotFoundId,
			title: "No MANIFEST.json",
			mdMsg: `
# No MANIFEST.json

Collection archives carry a MANIFEST.json at their root. It is generated
by the build step from galaxy.yml.`,
			suggestions: []string{
				"Build the archive with 'ansible-galaxy collection build'",
				"Do not repackage the collection by hand",
			},
			docLinks: []HttpLink{"https://docs.ansible.com/ansible/latest/dev_guide/collections_galaxy_meta.html"},
		},
		{
			id:    ManifestInvalidId,
			title: "MANIFEST.json is invalid",
			mdMsg: `
# MANIFEST.json is invalid

The manifest failed validation. collection_info must declare namespace,
name, version, readme and at least one author. Namespace and name are
lowercase letters, digits and underscores; the version is semantic.`,
			suggestions: []string{
				"Fix the field named in the error in galaxy.yml and rebuild",
				"Check that requires_ansible in meta/runtime.yml is a valid version specifier",
			},
			docLinks: []HttpLink{"https://docs.ansible.com/ansible/latest/dev_guide/collections_galaxy_meta.html"},
		},
		{
			id:    RoleMetadataNotFoundId,
			title: "No role metadata",
			mdMsg: `
# No role metadata

Role archives unpack into ` + "`<namespace>.<name>-<version>/`" + ` and carry
meta/main.yml (or meta/main.yaml) inside that directory.`,
			suggestions: []string{
				"Add meta/main.yml to the role",
				"Check that the archive's top directory matches its filename",
			},
		},
		{
			id:    RoleMetadataInvalidId,
			title: "Role metadata is invalid",
			mdMsg: `
# Role metadata is invalid

galaxy_info must declare author, description and min_ansible_version.`,
			suggestions: []string{
				"Fix the field named in the error in meta/main.yml",
			},
		},
		{
			id:    ValidationFailedId,
			title: "Archive does not match its metadata",
			mdMsg: `
# Archive does not match its metadata

The namespace, name and version in the filename must equal those declared
in the metadata, and every file the metadata references must exist.`,
			suggestions: []string{
				"Rebuild the archive so the filename matches the declared identity",
				"Add the readme or license file named in the error",
			},
		},
		{
			id:    ContentLoadFailedId,
			title: "Content could not be loaded",
			mdMsg: `
# Content could not be loaded

A plugin or role in the archive could not be parsed. Plugin documentation
(DOCUMENTATION, EXAMPLES, RETURN) must be valid YAML.`,
			suggestions: []string{
				"Run 'ansible-doc' against the plugin named in the error",
				"Check meta/main.yml of the role named in the error",
			},
		},
		{
			id:    ConfigLoadFailedId,
			title: "Configuration could not be loaded",
			mdMsg: `
# Configuration could not be loaded

~~~cue
log_level_main:   "info"
run_ansible_doc:  true
run_ansible_test: false
~~~`,
			suggestions: []string{
				"Run 'galaxy-importer config show' to see the effective configuration",
				"Check the file against 'galaxy-importer config init' output",
			},
		},
		{
			id:    UnexpectedErrorId,
			title: "Unexpected error",
			mdMsg: `
# Unexpected error

The import stopped on an error that is not a problem with the archive.`,
			suggestions: []string{
				"Re-run with --verbose to see the full error chain",
			},
		},
	}
)

// Id returns the issue ID.
func (i *Issue) Id() Id { return i.id }

// Title returns a one-line summary.
func (i *Issue) Title() string { return i.title }

// MarkdownMsg returns the raw Markdown explanation.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Suggestions returns a copy of the fix suggestions.
func (i *Issue) Suggestions() []string { return slices.Clone(i.suggestions) }

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HttpLink { return slices.Clone(i.docLinks) }

// Render renders the explanation with glamour using the given style
// ("dark", "light", "notty" or a path to a JSON style).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		var sb strings.Builder
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- " + string(link) + "\n")
		}
		md += sb.String()
	}
	return render(md, stylePath)
}

// Values returns every catalog issue in ID order.
func Values() []*Issue {
	return slices.Clone(catalog)
}

// Get returns the issue with the given ID, or nil.
func Get(id Id) *Issue {
	idx := slices.IndexFunc(catalog, func(i *Issue) bool { return i.id == id })
	if idx < 0 {
		return nil
	}
	return catalog[idx]
}

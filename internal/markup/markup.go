// SPDX-License-Identifier: MPL-2.0

// Package markup locates readme and documentation files and renders them to
// sanitized HTML.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// MaxFileSize is the largest markup file that will be rendered (1MB).
const MaxFileSize = 1 << 20

const (
	// FormatMarkdown is rendered with goldmark.
	FormatMarkdown Format = "markdown"
	// FormatText is escaped and wrapped in <pre>.
	FormatText Format = "text"
)

var readmeNames = []string{"readme.md", "readme"}

type (
	// Format is the markup language of a DocFile.
	Format string

	// DocFile is a documentation file read from disk.
	DocFile struct {
		Name   string
		Format Format
		Text   string
	}

	// Renderer converts DocFiles to sanitized HTML. It is safe for
	// concurrent use.
	Renderer struct {
		md     goldmark.Markdown
		policy *bluemonday.Policy
	}
)

// NewRenderer returns a Renderer using GitHub-flavored markdown and
// bluemonday's user-generated-content policy.
func NewRenderer() *Renderer {
	return &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

// HTML renders f.
func (r *Renderer) HTML(f DocFile) (string, error) {
	if f.Format == FormatText {
		return r.policy.Sanitize("<pre>" + html.EscapeString(f.Text) + "</pre>"), nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(f.Text), &buf); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", f.Name, err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// FindReadme returns the README.md or README in dir, matched
// case-insensitively. It returns nil when there is none. Symlinks leading
// out of dir are an error.
func FindReadme(dir string) (*DocFile, error) {
	rt, entries, err := openDir(dir)
	if err != nil || rt == nil {
		return nil, err
	}
	defer func() { _ = rt.Close() }()

	for _, want := range readmeNames {
		for _, e := range entries {
			if e.IsDir() || strings.ToLower(e.Name()) != want {
				continue
			}
			return readDocFile(rt, e.Name())
		}
	}
	return nil, nil
}

// DocFiles returns the markdown files directly inside dir sorted by name.
// A missing dir yields no files.
func DocFiles(dir string) ([]DocFile, error) {
	rt, entries, err := openDir(dir)
	if err != nil || rt == nil {
		return nil, err
	}
	defer func() { _ = rt.Close() }()

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	files := make([]DocFile, 0, len(names))
	for _, name := range names {
		f, err := readDocFile(rt, name)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, nil
}

// openDir lists dir and opens it as a root for reading. Both are nil when
// dir does not exist.
func openDir(dir string) (*os.Root, []fs.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	rt, err := os.OpenRoot(dir)
	if err != nil {
		return nil, nil, err
	}
	return rt, entries, nil
}

func readDocFile(rt *os.Root, name string) (*DocFile, error) {
	info, err := rt.Stat(name)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: not a regular file", name)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", name, info.Size(), MaxFileSize)
	}
	data, err := rt.ReadFile(name)
	if err != nil {
		return nil, err
	}
	format := FormatText
	if strings.EqualFold(filepath.Ext(name), ".md") {
		format = FormatMarkdown
	}
	return &DocFile{Name: name, Format: format, Text: string(data)}, nil
}

// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// MustWriteTarGz writes a gzip-compressed tar named filename into dir and
// returns its path. Members are written in sorted order; parent
// directories get their own entries.
func MustWriteTarGz(t testing.TB, dir, filename string, files map[string]string) string {
	t.Helper()
	return MustWriteTarGzWithLinks(t, dir, filename, files, nil)
}

// MustWriteTarGzWithLinks is MustWriteTarGz plus symlink members, written
// after the files and mapping member name to link target.
func MustWriteTarGzWithLinks(t testing.TB, dir, filename string, files, symlinks map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	seenDirs := map[string]bool{}
	for _, name := range names {
		for _, d := range parentDirs(name) {
			if seenDirs[d] {
				continue
			}
			seenDirs[d] = true
			hdr := &tar.Header{Name: d + "/", Typeflag: tar.TypeDir, Mode: 0o755}
			if err := tw.WriteHeader(hdr); err != nil {
				t.Fatalf("write dir header %s: %v", d, err)
			}
		}
		body := files[name]
		hdr := &tar.Header{Name: name, Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(body))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header %s: %v", name, err)
		}
		if _, err := io.WriteString(tw, body); err != nil {
			t.Fatalf("write body %s: %v", name, err)
		}
	}
	links := make([]string, 0, len(symlinks))
	for name := range symlinks {
		links = append(links, name)
	}
	slices.Sort(links)
	for _, name := range links {
		hdr := &tar.Header{Name: name, Typeflag: tar.TypeSymlink, Linkname: symlinks[name], Mode: 0o777}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write symlink header %s: %v", name, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write archive %s: %v", path, err)
	}
	return path
}

func parentDirs(name string) []string {
	parts := strings.Split(name, "/")
	dirs := make([]string, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		dirs = append(dirs, strings.Join(parts[:i], "/"))
	}
	return dirs
}

// CollectionManifest returns a valid MANIFEST.json for the given identity.
func CollectionManifest(namespace, name, version string) string {
	doc := map[string]any{
		"collection_info": map[string]any{
			"namespace":    namespace,
			"name":         name,
			"version":      version,
			"authors":      []string{"Test Author"},
			"readme":       "README.md",
			"license_file": nil,
			"description":  "Test collection",
			"tags":         []string{"testing"},
		},
		"file_manifest_file": map[string]any{"name": "FILES.json", "ftype": "file", "format": 1},
		"format":             1,
	}
	out, _ := json.MarshalIndent(doc, "", "  ") //nolint:errcheck // static input
	return string(out)
}

// CollectionFiles returns the files of a minimal valid collection.
func CollectionFiles(namespace, name, version string) map[string]string {
	return map[string]string{
		"MANIFEST.json": CollectionManifest(namespace, name, version),
		"README.md":     fmt.Sprintf("# %s.%s\n\nA test collection.\n", namespace, name),
	}
}

// RoleMeta returns a valid meta/main.yml body.
func RoleMeta(description string) string {
	return fmt.Sprintf(`galaxy_info:
  author: Test Author
  description: %s
  company: Example
  license: MIT
  min_ansible_version: "2.9"
  platforms:
    - name: Fedora
      versions: [all]
  galaxy_tags: [testing]
dependencies: []
`, description)
}

// PluginSource returns a Python plugin with DOCUMENTATION, EXAMPLES and RETURN blocks.
func PluginSource(name, shortDescription string) string {
	return fmt.Sprintf(`#!/usr/bin/python
# -*- coding: utf-8 -*-

DOCUMENTATION = r'''
---
module: %s
short_description: %s
options:
  path:
    description: Target path.
    type: str
    required: true
'''

EXAMPLES = '''
- name: Run %s
  %s:
    path: /tmp
'''

RETURN = r"""
changed:
  description: Whether anything changed.
  type: bool
"""

def main():
    pass
`, name, shortDescription, name, name)
}

// NativeExtractor unpacks tar.gz archives in-process. It has the same
// method set as the tar-backed extractor.
type NativeExtractor struct{}

// Extract unpacks archive into target.
func (NativeExtractor) Extract(_ context.Context, archive, target string) (err error) {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		dest := filepath.Join(target, filepath.FromSlash(hdr.Name))
		if !strings.HasPrefix(dest, filepath.Clean(target)+string(os.PathSeparator)) {
			return fmt.Errorf("member %s escapes %s", hdr.Name, target)
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return err
			}
			data, err := io.ReadAll(tr)
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return err
			}
			if err := os.Symlink(hdr.Linkname, dest); err != nil {
				return err
			}
		}
	}
}

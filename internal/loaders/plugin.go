// SPDX-License-Identifier: MPL-2.0

package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"galaxy-importer/pkg/schema"
)

// MaxPluginFileSize caps plugin sources read for documentation (2MB).
const MaxPluginFileSize = 2 << 20

var docBlockPattern = regexp.MustCompile(
	`(?ms)^(DOCUMENTATION|EXAMPLES|RETURN)\s*=\s*[rRbBuU]{0,2}(?:'''(.*?)'''|"""(.*?)""")`,
)

type (
	pluginLoader struct {
		contentType schema.ContentType
		logger      *slog.Logger
	}

	moduleUtilsLoader struct{}
)

func (l *pluginLoader) Load(relPath, root string, docs *DocStrings) (Content, error) {
	name := stem(relPath)
	c := Content{Name: name, ContentType: l.contentType}

	doc, ok := docs.Get(l.contentType, name)
	if !ok {
		var err error
		doc, err = l.readDocStrings(relPath, root)
		if err != nil {
			return Content{}, &LoadError{Path: relPath, Err: err}
		}
		if doc != nil && docs != nil {
			docs.Set(l.contentType, name, doc)
		}
	}

	c.DocStrings = doc
	c.Description = shortDescription(doc)
	return c, nil
}

// readDocStrings extracts the documentation blocks of a plugin. PowerShell
// modules keep their documentation in a sibling .py file. Reads stay inside
// root.
func (l *pluginLoader) readDocStrings(relPath, root string) (map[string]any, error) {
	docPath := relPath
	if ext := path.Ext(relPath); ext == ".ps1" || ext == ".psm1" {
		docPath = strings.TrimSuffix(relPath, ext) + ".py"
	}

	rt, err := os.OpenRoot(root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rt.Close() }()

	local := filepath.FromSlash(docPath)
	info, err := rt.Stat(local)
	if errors.Is(err, fs.ErrNotExist) && docPath != relPath {
		l.logger.Debug("no documentation file for plugin", "path", relPath)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxPluginFileSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum %d bytes", info.Size(), MaxPluginFileSize)
	}
	src, err := rt.ReadFile(local)
	if err != nil {
		return nil, err
	}
	return ParseDocBlocks(string(src))
}

// ParseDocBlocks parses the DOCUMENTATION, EXAMPLES and RETURN string
// literals of a Python plugin. DOCUMENTATION and RETURN are YAML; EXAMPLES
// is kept verbatim. It returns nil when the source has no DOCUMENTATION.
func ParseDocBlocks(src string) (map[string]any, error) {
	blocks := map[string]string{}
	for _, m := range docBlockPattern.FindAllStringSubmatch(src, -1) {
		if _, seen := blocks[m[1]]; seen {
			continue
		}
		blocks[m[1]] = m[2] + m[3]
	}

	raw, ok := blocks["DOCUMENTATION"]
	if !ok {
		return nil, nil
	}

	doc, err := yamlMapping(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed DOCUMENTATION: %w", err)
	}
	out := map[string]any{"doc": doc, "examples": nil, "return": nil}
	if ex, ok := blocks["EXAMPLES"]; ok {
		out["examples"] = ex
	}
	if ret, ok := blocks["RETURN"]; ok {
		parsed, err := yamlMapping(ret)
		if err != nil {
			return nil, fmt.Errorf("malformed RETURN: %w", err)
		}
		out["return"] = parsed
	}
	return out, nil
}

// yamlMapping decodes a YAML mapping into JSON-compatible values. An empty
// document decodes to nil.
func yamlMapping(raw string) (map[string]any, error) {
	data, err := schema.YAMLToJSON([]byte(raw))
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return t, nil
	default:
		return nil, fmt.Errorf("expected a mapping, got %T", v)
	}
}

func shortDescription(doc map[string]any) *string {
	inner, ok := doc["doc"].(map[string]any)
	if !ok {
		return nil
	}
	if s, ok := inner["short_description"].(string); ok {
		return &s
	}
	return nil
}

func (moduleUtilsLoader) Load(relPath, _ string, _ *DocStrings) (Content, error) {
	return Content{Name: stem(relPath), ContentType: schema.ContentTypeModuleUtils}, nil
}

func stem(relPath string) string {
	base := path.Base(relPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// SPDX-License-Identifier: MPL-2.0

package loaders

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"galaxy-importer/internal/markup"
	"galaxy-importer/pkg/schema"

	"gopkg.in/yaml.v3"
)

type roleLoader struct {
	logger     *slog.Logger
	renderDocs bool
	renderer   *markup.Renderer
}

type roleMetaDescription struct {
	GalaxyInfo struct {
		Description *string `yaml:"description"`
	} `yaml:"galaxy_info"`
}

func (l *roleLoader) Load(relPath, root string, _ *DocStrings) (Content, error) {
	dir := filepath.Join(root, filepath.FromSlash(relPath))
	c := Content{Name: path.Base(relPath), ContentType: schema.ContentTypeRole}

	metaPath, err := FindRoleMetaFile(dir)
	if err != nil {
		return Content{}, &LoadError{Path: relPath, Err: err}
	}
	if metaPath != "" {
		data, err := os.ReadFile(metaPath)
		if err != nil {
			return Content{}, &LoadError{Path: relPath, Err: err}
		}
		var meta roleMetaDescription
		if err := yaml.Unmarshal(data, &meta); err != nil {
			return Content{}, &LoadError{Path: relPath, Err: fmt.Errorf("malformed role metadata: %w", err)}
		}
		c.Description = meta.GalaxyInfo.Description
	} else {
		l.logger.Warn("role has no meta/main.yml", "role", relPath)
	}

	if !l.renderDocs {
		return c, nil
	}
	readme, err := markup.FindReadme(dir)
	if err != nil {
		return Content{}, &LoadError{Path: relPath, Err: err}
	}
	if readme == nil {
		return c, nil
	}
	html, err := l.renderer.HTML(*readme)
	if err != nil {
		return Content{}, &LoadError{Path: relPath, Err: err}
	}
	c.ReadmeFile = &readme.Name
	c.ReadmeHTML = &html
	return c, nil
}

// FindRoleMetaFile returns the path of meta/main.yml or meta/main.yaml
// under roleDir, or "" when neither exists. A metadata symlink leading out
// of roleDir is an error.
func FindRoleMetaFile(roleDir string) (string, error) {
	rt, err := os.OpenRoot(roleDir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer func() { _ = rt.Close() }()

	for _, name := range schema.RoleMetaFileNames {
		rel := filepath.Join("meta", name)
		if _, err := rt.Lstat(rel); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		info, err := rt.Stat(rel)
		if err != nil {
			return "", err
		}
		if !info.IsDir() {
			return filepath.Join(roleDir, rel), nil
		}
	}
	return "", nil
}

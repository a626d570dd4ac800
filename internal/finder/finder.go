// SPDX-License-Identifier: MPL-2.0

// Package finder walks an extracted artifact and classifies the content units
// it contains.
package finder

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"galaxy-importer/internal/logging"
	"galaxy-importer/pkg/artifact"
	"galaxy-importer/pkg/schema"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	pythonPatterns     = []string{"**/*.py"}
	powershellPatterns = []string{"**/*.py", "**/*.ps1", "**/*.psm1"}
)

type (
	// Found is one discovered content unit. Path is slash-separated and
	// relative to the artifact root.
	Found struct {
		ContentType schema.ContentType
		Path        string
	}

	// Finder lists the content of an extracted artifact in walk order.
	Finder interface {
		Find(root string) iter.Seq2[Found, error]
	}

	// CollectionFinder finds plugins under plugins/<type>/ and roles under roles/.
	CollectionFinder struct {
		logger *slog.Logger
	}

	// RoleFinder finds the embedded plugins of a standalone role: library/,
	// module_utils/ and <type>_plugins/.
	RoleFinder struct {
		logger *slog.Logger
	}
)

// For returns the finder for an artifact type.
func For(t artifact.Type, logger *slog.Logger) Finder {
	if t == artifact.TypeRole {
		return NewRoleFinder(logger)
	}
	return NewCollectionFinder(logger)
}

// NewCollectionFinder returns a CollectionFinder.
func NewCollectionFinder(logger *slog.Logger) *CollectionFinder {
	return &CollectionFinder{logger: orDiscard(logger)}
}

// NewRoleFinder returns a RoleFinder.
func NewRoleFinder(logger *slog.Logger) *RoleFinder {
	return &RoleFinder{logger: orDiscard(logger)}
}

// Find implements Finder.
func (f *CollectionFinder) Find(root string) iter.Seq2[Found, error] {
	return func(yield func(Found, error) bool) {
		dirs, err := readDirs(filepath.Join(root, "plugins"))
		if err != nil {
			yield(Found{}, err)
			return
		}
		for _, dir := range dirs {
			ct, ok := schema.ContentTypeForPluginDir(dir)
			if !ok {
				f.logger.Debug("skipping unknown plugin directory", "dir", path.Join("plugins", dir))
				continue
			}
			if !walkPlugins(root, path.Join("plugins", dir), ct, yield) {
				return
			}
		}

		roles, err := readDirs(filepath.Join(root, "roles"))
		if err != nil {
			yield(Found{}, err)
			return
		}
		for _, dir := range roles {
			if !yield(Found{ContentType: schema.ContentTypeRole, Path: path.Join("roles", dir)}, nil) {
				return
			}
		}
	}
}

// Find implements Finder.
func (f *RoleFinder) Find(root string) iter.Seq2[Found, error] {
	return func(yield func(Found, error) bool) {
		dirs, err := readDirs(root)
		if err != nil {
			yield(Found{}, err)
			return
		}
		for _, dir := range dirs {
			ct, ok := schema.ContentTypeForRoleDir(dir)
			if !ok {
				continue
			}
			if !walkPlugins(root, dir, ct, yield) {
				return
			}
		}
	}
}

// walkPlugins yields every plugin file below root/rel. It returns false
// when the consumer stopped iterating.
func walkPlugins(root, rel string, ct schema.ContentType, yield func(Found, error) bool) bool {
	patterns := pythonPatterns
	if ct.IsPowerShellCapable() {
		patterns = powershellPatterns
	}

	base := filepath.Join(root, filepath.FromSlash(rel))
	stopped := false
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != base && (isHidden(name) || name == "__pycache__") {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(name) || name == "__init__.py" {
			return nil
		}

		sub, err := filepath.Rel(base, p)
		if err != nil {
			return err
		}
		sub = filepath.ToSlash(sub)
		if !matchAny(patterns, sub) {
			return nil
		}
		if ct.IsPowerShellCapable() && hasPowerShellSibling(p) {
			return nil
		}
		if !yield(Found{ContentType: ct, Path: path.Join(rel, sub)}, nil) {
			stopped = true
			return fs.SkipAll
		}
		return nil
	})
	if stopped {
		return false
	}
	if err != nil {
		return yield(Found{}, fmt.Errorf("walking %s: %w", rel, err))
	}
	return true
}

// hasPowerShellSibling reports whether a .py file documents a PowerShell
// plugin of the same stem; the PowerShell file is the content unit.
func hasPowerShellSibling(p string) bool {
	if filepath.Ext(p) != ".py" {
		return false
	}
	stem := strings.TrimSuffix(p, ".py")
	for _, ext := range []string{".ps1", ".psm1"} {
		if info, err := os.Lstat(stem + ext); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// readDirs lists visible subdirectories of dir in lexical order. A missing
// dir yields no entries.
func readDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() && !isHidden(e.Name()) && e.Name() != "__pycache__" {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return logging.Discard()
	}
	return logger
}

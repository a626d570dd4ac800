// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	collectionsDir       = "ansible_collections"
	placeholderNamespace = "placeholder_namespace"
	placeholderName      = "placeholder_name"
)

// ErrAlreadyFinalized is returned when a PendingDir is finalized twice.
var ErrAlreadyFinalized = errors.New("extraction directory already finalized")

type (
	// Workdir is a temporary directory owned by one import run.
	Workdir struct {
		root      string
		closeOnce sync.Once
		closeErr  error
	}

	// PendingDir is a collection extraction directory whose namespace and
	// name are not yet known.
	PendingDir struct {
		path      string
		finalized bool
	}

	// FinalDir is a collection directory named after its declared identity.
	// It can only be obtained from PendingDir.Finalize.
	FinalDir struct {
		path string
	}
)

// Acquire creates a fresh Workdir under tmpRoot (the OS temp dir when empty).
func Acquire(tmpRoot string) (*Workdir, error) {
	if tmpRoot != "" {
		if err := os.MkdirAll(tmpRoot, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create temp root: %w", err)
		}
	}
	root, err := os.MkdirTemp(tmpRoot, "galaxy-importer-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}
	return &Workdir{root: root}, nil
}

// Root returns the workdir path. Role archives are extracted here.
func (w *Workdir) Root() string { return w.root }

// Close removes the workdir and everything below it. It is safe to call
// more than once.
func (w *Workdir) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = os.RemoveAll(w.root)
	})
	return w.closeErr
}

// Placeholder creates ansible_collections/placeholder_namespace/placeholder_name
// under the workdir.
func (w *Workdir) Placeholder() (*PendingDir, error) {
	path := filepath.Join(w.root, collectionsDir, placeholderNamespace, placeholderName)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create extraction directory: %w", err)
	}
	return &PendingDir{path: path}, nil
}

// Path returns the current placeholder path.
func (p *PendingDir) Path() string { return p.path }

// Finalize renames the namespace directory and then the name directory to
// the declared identity.
func (p *PendingDir) Finalize(namespace, name string) (FinalDir, error) {
	if p.finalized {
		return FinalDir{}, ErrAlreadyFinalized
	}
	for _, part := range []string{namespace, name} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return FinalDir{}, fmt.Errorf("invalid collection path component %q", part)
		}
	}

	oldNS := filepath.Dir(p.path)
	newNS := filepath.Join(filepath.Dir(oldNS), namespace)
	if err := os.Rename(oldNS, newNS); err != nil {
		return FinalDir{}, fmt.Errorf("failed to rename namespace directory: %w", err)
	}

	oldName := filepath.Join(newNS, filepath.Base(p.path))
	newName := filepath.Join(newNS, name)
	if err := os.Rename(oldName, newName); err != nil {
		return FinalDir{}, fmt.Errorf("failed to rename name directory: %w", err)
	}

	p.finalized = true
	p.path = newName
	return FinalDir{path: newName}, nil
}

// Path returns the collection root.
func (f FinalDir) Path() string { return f.path }

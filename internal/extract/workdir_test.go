// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"galaxy-importer/internal/testutil"
)

func TestWorkdirLifecycle(t *testing.T) {
	t.Parallel()

	tmpRoot := filepath.Join(t.TempDir(), "nested", "tmp")
	wd, err := Acquire(tmpRoot)
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	if filepath.Dir(wd.Root()) != tmpRoot {
		t.Errorf("Root() = %s, want a child of %s", wd.Root(), tmpRoot)
	}

	testutil.MustWriteFile(t, filepath.Join(wd.Root(), "a", "b.txt"), "x")

	if err := wd.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if _, err := os.Stat(wd.Root()); !os.IsNotExist(err) {
		t.Errorf("workdir still exists after Close(): %v", err)
	}
	if err := wd.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}

func TestWorkdirsAreDistinct(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a, err := Acquire(root)
	if err != nil {
		t.Fatal(err)
	}
	defer testutil.MustClose(t, a)
	b, err := Acquire(root)
	if err != nil {
		t.Fatal(err)
	}
	defer testutil.MustClose(t, b)

	if a.Root() == b.Root() {
		t.Errorf("two workdirs share %s", a.Root())
	}
}

func TestPlaceholderFinalize(t *testing.T) {
	t.Parallel()

	wd, err := Acquire(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer testutil.MustClose(t, wd)

	pending, err := wd.Placeholder()
	if err != nil {
		t.Fatalf("Placeholder() error: %v", err)
	}
	wantPending := filepath.Join(wd.Root(), "ansible_collections", "placeholder_namespace", "placeholder_name")
	if pending.Path() != wantPending {
		t.Errorf("Placeholder().Path() = %s, want %s", pending.Path(), wantPending)
	}
	testutil.MustWriteFile(t, filepath.Join(pending.Path(), "MANIFEST.json"), "{}")

	final, err := pending.Finalize("acme", "tools")
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	wantFinal := filepath.Join(wd.Root(), "ansible_collections", "acme", "tools")
	if final.Path() != wantFinal {
		t.Errorf("FinalDir.Path() = %s, want %s", final.Path(), wantFinal)
	}
	if _, err := os.Stat(filepath.Join(wantFinal, "MANIFEST.json")); err != nil {
		t.Errorf("content not moved: %v", err)
	}
	if _, err := os.Stat(wantPending); !os.IsNotExist(err) {
		t.Errorf("placeholder still exists: %v", err)
	}

	if _, err := pending.Finalize("acme", "tools"); !errors.Is(err, ErrAlreadyFinalized) {
		t.Errorf("second Finalize() = %v, want ErrAlreadyFinalized", err)
	}
}

func TestFinalizeRejectsBadComponents(t *testing.T) {
	t.Parallel()

	for _, tc := range [][2]string{{"", "x"}, {"x", ""}, {"..", "x"}, {"a/b", "x"}, {"x", `a\b`}} {
		wd, err := Acquire(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		pending, err := wd.Placeholder()
		if err != nil {
			t.Fatal(err)
		}
		if _, err := pending.Finalize(tc[0], tc[1]); err == nil {
			t.Errorf("Finalize(%q, %q) succeeded", tc[0], tc[1])
		}
		testutil.MustClose(t, wd)
	}
}

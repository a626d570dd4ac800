// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"galaxy-importer/internal/testutil"
)

var discard = slog.New(slog.DiscardHandler)

func TestSourceResolveLocal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "acme-tools-1.0.0.tar.gz")
	testutil.MustWriteFile(t, path, "data")

	got, err := Source{Path: path, URL: "http://unused.invalid"}.Resolve(context.Background(), failingFetcher{}, dir, discard)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != path {
		t.Errorf("Resolve() = %s, want %s", got, path)
	}
}

func TestSourceResolveDownloads(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		_, _ = w.Write([]byte("archive-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	src := Source{Path: filepath.Join(dir, "missing.tar.gz"), URL: srv.URL + "/download"}
	got, err := src.Resolve(context.Background(), HTTPFetcher{Client: srv.Client()}, dir, discard)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != filepath.Join(dir, DownloadFileName) {
		t.Errorf("Resolve() = %s", got)
	}
	if body := testutil.MustReadFile(t, got); body != "archive-bytes" {
		t.Errorf("downloaded body = %q", body)
	}
}

func TestSourceResolveFailures(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	tests := []struct {
		name string
		src  Source
	}{
		{name: "no path no url", src: Source{Path: "/does/not/exist.tar.gz"}},
		{name: "http status", src: Source{URL: srv.URL}},
		{name: "unreachable", src: Source{URL: "http://127.0.0.1:1/archive"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			_, err := tt.src.Resolve(context.Background(), HTTPFetcher{}, dir, discard)
			if !errors.Is(err, ErrSourceUnavailable) {
				t.Fatalf("Resolve() error = %v, want ErrSourceUnavailable", err)
			}
			if _, statErr := os.Stat(filepath.Join(dir, DownloadFileName)); !os.IsNotExist(statErr) {
				t.Errorf("partial download left behind: %v", statErr)
			}
		})
	}
}

func TestSourceString(t *testing.T) {
	t.Parallel()

	if got := (Source{Path: "/a", URL: "http://b"}).String(); got != "/a" {
		t.Errorf("String() = %q", got)
	}
	if got := (Source{URL: "http://b"}).String(); got != "http://b" {
		t.Errorf("String() = %q", got)
	}
}

type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context, string, string) (string, error) {
	return "", errors.New("fetch should not be called")
}

// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// DownloadFileName is the name a fetched archive is stored under.
const DownloadFileName = "archive.tar.gz"

type (
	// Source locates an archive. Path is tried first; URL is fetched only
	// when Path does not exist.
	Source struct {
		Path string
		URL  string
	}

	// Fetcher retrieves a remote archive into dir and returns its path.
	Fetcher interface {
		Fetch(ctx context.Context, url, dir string) (string, error)
	}

	// HTTPFetcher fetches archives with a single GET request.
	HTTPFetcher struct {
		Client *http.Client
	}
)

// String returns the path, or the URL when no path is set.
func (s Source) String() string {
	if s.Path != "" {
		return s.Path
	}
	return s.URL
}

// Resolve returns an absolute path to a local copy of the archive, using f
// to download it into dir when the local path is missing.
func (s Source) Resolve(ctx context.Context, f Fetcher, dir string, logger *slog.Logger) (string, error) {
	if s.Path != "" {
		if info, err := os.Stat(s.Path); err == nil && !info.IsDir() {
			return filepath.Abs(s.Path)
		}
	}
	if s.URL == "" {
		return "", fmt.Errorf("%w: %s does not exist and no download URL was given", ErrSourceUnavailable, s.Path)
	}

	logger.Debug("archive not found locally, downloading", "url", s.URL)
	path, err := f.Fetch(ctx, s.URL, dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return path, nil
}

// Fetch downloads url to dir/archive.tar.gz.
func (h HTTPFetcher) Fetch(ctx context.Context, url, dir string) (path string, err error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req) //nolint:gosec // URL comes from the caller
	if err != nil {
		return "", fmt.Errorf("failed to download: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("download failed with status: %s", resp.Status)
	}

	path = filepath.Join(dir, DownloadFileName)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if _, err = io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to save downloaded file: %w", err)
	}
	return path, nil
}

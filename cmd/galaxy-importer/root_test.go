// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"galaxy-importer/internal/config"
	"galaxy-importer/internal/importer"
	"galaxy-importer/internal/testutil"
	"galaxy-importer/pkg/types"
)

type staticProvider struct {
	cfg *config.Config
	err error
}

func (p staticProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	return p.cfg, p.err
}

// newTestApp returns an App that extracts in-process and captures output.
func newTestApp(t *testing.T) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.TmpRootDir = t.TempDir()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: staticProvider{cfg: cfg},
		NewImporter: func(cfg *config.Config, logger *slog.Logger) ImportService {
			return importer.New(
				importer.WithConfig(cfg),
				importer.WithLogger(logger),
				importer.WithExtractor(testutil.NativeExtractor{}),
			)
		},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	return app, &stdout, &stderr
}

func execute(t *testing.T, app *App, args ...string) error {
	t.Helper()
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestGetVersionString(t *testing.T) {
	// Not parallel: mutates package-level Version/Commit/BuildDate vars.
	origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
	})

	Version, Commit, BuildDate = "v1.2.3", "abc1234", "2026-01-02T03:04:05Z"
	if got, want := getVersionString(), "v1.2.3 (commit: abc1234, built: 2026-01-02T03:04:05Z)"; got != want {
		t.Errorf("getVersionString() = %q, want %q", got, want)
	}

	Version = "dev"
	if got, want := getVersionString(), "dev (built from source)"; got != want {
		t.Errorf("getVersionString() = %q, want %q", got, want)
	}
}

func TestImportCommandWritesResult(t *testing.T) {
	t.Parallel()

	files := testutil.CollectionFiles("acme", "tools", "1.0.0")
	files["plugins/modules/hello.py"] = testutil.PluginSource("hello", "Say hello")
	archive := testutil.MustWriteTarGz(t, t.TempDir(), "acme-tools-1.0.0.tar.gz", files)
	output := filepath.Join(t.TempDir(), "result.json")

	app, stdout, _ := newTestApp(t)
	if err := execute(t, app, "--output", output, "--print-result", "--summary", archive); err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	data := testutil.MustReadFile(t, output)
	var res map[string]any
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if res["artifact_type"] != "collection" {
		t.Errorf("artifact_type = %v", res["artifact_type"])
	}
	if !strings.Contains(data, "\n    \"") {
		t.Error("result should be indented with four spaces")
	}

	out := stdout.String()
	if !strings.Contains(out, `"artifact_type": "collection"`) {
		t.Errorf("--print-result output missing result:\n%s", out)
	}
	if !strings.Contains(out, "hello") || !strings.Contains(out, "Say hello") {
		t.Errorf("--summary output missing content row:\n%s", out)
	}
}

func TestImportCommandClassifiedFailure(t *testing.T) {
	t.Parallel()

	archive := testutil.MustWriteTarGz(t, t.TempDir(), "acme-tools-1.0.0.tar.gz",
		testutil.CollectionFiles("acme", "hammers", "1.0.0"))
	errorFile := filepath.Join(t.TempDir(), "error.json")
	output := filepath.Join(t.TempDir(), "result.json")

	app, _, stderr := newTestApp(t)
	err := execute(t, app, "--output", output, "--error-file", errorFile, archive)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != types.ExitImportFailed {
		t.Fatalf("execute() error = %v, want ExitError with code 1", err)
	}
	if !errors.Is(err, importer.ErrValidation) {
		t.Errorf("error %v should unwrap to ErrValidation", err)
	}
	if !strings.Contains(stderr.String(), "The import failed for the following reason") {
		t.Errorf("stderr missing classified reason:\n%s", stderr.String())
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("result file written for a failed import")
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(testutil.MustReadFile(t, errorFile)), &rec); err != nil {
		t.Fatalf("error file is not JSON: %v", err)
	}
	if rec["code"] != "INVALID_INPUT" {
		t.Errorf("code = %v, want INVALID_INPUT", rec["code"])
	}
	if !strings.Contains(rec["message"].(string), `Filename name "tools" did not match metadata "hammers"`) {
		t.Errorf("message = %v", rec["message"])
	}
	ctx, _ := rec["context"].(map[string]any)
	if ctx["kind"] != importer.ErrValidation.Error() {
		t.Errorf("context = %v", ctx)
	}
}

func TestImportCommandRejectsBadFilename(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "not-a-valid-name.zip")
	testutil.MustWriteFile(t, path, "x")

	app, _, stderr := newTestApp(t)
	err := execute(t, app, path)
	if !errors.Is(err, importer.ErrSource) {
		t.Fatalf("execute() error = %v, want ErrSource", err)
	}
	if !strings.Contains(stderr.String(), "does not match") {
		t.Errorf("stderr = %s", stderr.String())
	}
}

func TestImportCommandConfigFailure(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: staticProvider{err: errors.New("config file not found: /nope.cue")},
		Stdout: &bytes.Buffer{},
		Stderr: &stderr,
	})
	errorFile := filepath.Join(t.TempDir(), "error.json")

	err := execute(t, app, "--error-file", errorFile, "acme-tools-1.0.0.tar.gz")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("execute() error = %v, want ExitError", err)
	}
	if !strings.Contains(stderr.String(), "/nope.cue") {
		t.Errorf("stderr = %s", stderr.String())
	}
	if !strings.Contains(testutil.MustReadFile(t, errorFile), "INVALID_CONFIGURATION") {
		t.Error("error file should carry INVALID_CONFIGURATION")
	}
}

func TestNewRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		arg      string
		role     bool
		wantURL  bool
		wantName string
		wantErr  bool
	}{
		{name: "local collection", arg: "/tmp/acme-tools-1.0.0.tar.gz", wantName: "tools"},
		{name: "url", arg: "https://example.com/dl/acme-tools-1.0.0.tar.gz?sig=x", wantURL: true, wantName: "tools"},
		{name: "role", arg: "acme-web-2.0.0.tar.gz", role: true, wantName: "web"},
		{name: "bad name", arg: "acme.tar.gz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := newRequest(tt.arg, tt.role)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (req.Source.URL != "") != tt.wantURL {
				t.Errorf("Source = %+v", req.Source)
			}
			if req.Identity.Name != tt.wantName {
				t.Errorf("Identity = %+v", req.Identity)
			}
			if tt.role && req.ArtifactType != "role" {
				t.Errorf("ArtifactType = %q", req.ArtifactType)
			}
		})
	}
}

func TestFailureCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{&importer.Error{Kind: importer.ErrManifestNotFound, Err: errors.New("x")}, "NOT_FOUND"},
		{&importer.Error{Kind: importer.ErrExtraction, Err: errors.New("x")}, "EXECUTION_FAILED"},
		{&importer.Error{Kind: importer.ErrRoleMetadata, Err: errors.New("x")}, "SCHEMA_VALIDATION_FAILED"},
		{&importer.Error{Kind: importer.ErrContent, Err: errors.New("x")}, "INVALID_INPUT"},
		{errors.New("boom"), "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		if got := string(failureCode(tt.err)); got != tt.want {
			t.Errorf("failureCode(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

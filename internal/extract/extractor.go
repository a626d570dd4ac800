// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	osexec "os/exec"
	"path/filepath"

	"galaxy-importer/internal/logging"

	"github.com/jmgilman/go/exec"
)

type (
	// Extractor unpacks archive into target.
	Extractor interface {
		Extract(ctx context.Context, archive, target string) error
	}

	// TarExtractor shells out to tar, running in the archive's directory:
	//
	//	tar --directory=<target> -xf <archive basename>
	TarExtractor struct {
		logger      *slog.Logger
		newExecutor func() exec.Executor
	}

	// TarOption configures a TarExtractor.
	TarOption func(*TarExtractor)
)

// WithExecutorFactory replaces the executor used to run tar. A new executor
// is requested for every extraction.
func WithExecutorFactory(f func() exec.Executor) TarOption {
	return func(t *TarExtractor) {
		t.newExecutor = f
	}
}

// WithTarLogger sets the logger used for command tracing.
func WithTarLogger(logger *slog.Logger) TarOption {
	return func(t *TarExtractor) {
		t.logger = logger
	}
}

// NewTarExtractor returns a TarExtractor backed by jmgilman/go/exec.
func NewTarExtractor(opts ...TarOption) *TarExtractor {
	t := &TarExtractor{
		logger: logging.Discard(),
		newExecutor: func() exec.Executor {
			return exec.New(exec.WithInheritEnv(), exec.WithDisableColors())
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Extract implements Extractor.
func (t *TarExtractor) Extract(ctx context.Context, archive, target string) error {
	abs, err := filepath.Abs(archive)
	if err != nil {
		return &ExtractionError{Archive: archive, Err: err}
	}
	cwd := filepath.Dir(abs)
	args := []string{"--directory=" + target, "-xf", filepath.Base(abs)}

	t.logger.Debug("tar extract shell command", "args", args, "cwd", cwd)

	tarCmd := exec.NewWrapper(t.newExecutor(), "tar")
	_, err = tarCmd.WithContext(ctx).WithDir(cwd).Run(args...)
	if err == nil {
		return nil
	}

	var execErr *exec.ExecError
	if errors.As(err, &execErr) {
		if errors.Is(execErr.Err, osexec.ErrNotFound) {
			return &ExtractionError{Archive: abs, Err: fmt.Errorf("tar not found: %w", execErr.Err)}
		}
		return &ExtractionError{Archive: abs, Stderr: execErr.Stderr, Err: execErr}
	}
	return &ExtractionError{Archive: abs, Err: err}
}

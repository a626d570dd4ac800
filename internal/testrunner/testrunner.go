// SPDX-License-Identifier: MPL-2.0

// Package testrunner selects the ansible-test backend that runs after a
// collection import. Every backend is a placeholder: it logs and skips.
package testrunner

import (
	"context"
	"log/slog"

	"galaxy-importer/internal/config"
	"galaxy-importer/internal/logging"
)

type (
	// Target is what a runner tests: an extracted collection.
	Target struct {
		// Root is the finalized collection directory.
		Root string
		// Archive is the original archive path.
		Archive string
		// FQCN is "<namespace>.<name>".
		FQCN string
	}

	// Runner runs ansible-test against an imported collection.
	Runner interface {
		Name() string
		Run(ctx context.Context, target Target) error
	}

	// JobRunner runs ansible-test as a cluster job.
	JobRunner struct {
		logger *slog.Logger
	}

	// ImageRunner runs ansible-test in a local container image.
	ImageRunner struct {
		logger *slog.Logger
	}

	// LocalRunner runs ansible-test directly on the host.
	LocalRunner struct {
		logger *slog.Logger
	}
)

// Select returns the runner the configuration asks for, or nil when
// ansible-test is disabled.
func Select(cfg *config.Config, logger *slog.Logger) Runner {
	if cfg == nil || !cfg.RunAnsibleTest {
		return nil
	}
	if logger == nil {
		logger = logging.Discard()
	}
	switch {
	case cfg.InfraOSD:
		return &JobRunner{logger: logger}
	case cfg.AnsibleTestLocalImage:
		return &ImageRunner{logger: logger}
	default:
		return &LocalRunner{logger: logger}
	}
}

// Name implements Runner.
func (r *JobRunner) Name() string { return "openshift-job" }

// Run implements Runner.
func (r *JobRunner) Run(ctx context.Context, target Target) error {
	return skip(ctx, r.logger, r.Name(), target)
}

// Name implements Runner.
func (r *ImageRunner) Name() string { return "local-image" }

// Run implements Runner.
func (r *ImageRunner) Run(ctx context.Context, target Target) error {
	return skip(ctx, r.logger, r.Name(), target)
}

// Name implements Runner.
func (r *LocalRunner) Name() string { return "local" }

// Run implements Runner.
func (r *LocalRunner) Run(ctx context.Context, target Target) error {
	return skip(ctx, r.logger, r.Name(), target)
}

func skip(ctx context.Context, logger *slog.Logger, name string, target Target) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.Warn("ansible-test runner not implemented; skipping",
		"runner", name, "collection", target.FQCN)
	return nil
}

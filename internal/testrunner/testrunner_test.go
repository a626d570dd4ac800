// SPDX-License-Identifier: MPL-2.0

package testrunner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"galaxy-importer/internal/config"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*config.Config)
		wantName string
	}{
		{name: "disabled", mutate: func(*config.Config) {}},
		{
			name:     "local image",
			mutate:   func(c *config.Config) { c.RunAnsibleTest = true; c.AnsibleTestLocalImage = true },
			wantName: "local-image",
		},
		{
			name:     "cluster job",
			mutate:   func(c *config.Config) { c.RunAnsibleTest = true; c.InfraOSD = true },
			wantName: "openshift-job",
		},
		{
			name:     "enabled without backend",
			mutate:   func(c *config.Config) { c.RunAnsibleTest = true },
			wantName: "local",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			r := Select(cfg, nil)
			if tt.wantName == "" {
				if r != nil {
					t.Fatalf("Select() = %v, want nil", r.Name())
				}
				return
			}
			if r == nil {
				t.Fatal("Select() = nil")
			}
			if r.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", r.Name(), tt.wantName)
			}
		})
	}

	if Select(nil, nil) != nil {
		t.Error("Select(nil) should be nil")
	}
}

func TestRunnersSkip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	target := Target{Root: "/tmp/x", FQCN: "acme.tools"}

	for _, r := range []Runner{&JobRunner{logger: logger}, &ImageRunner{logger: logger}, &LocalRunner{logger: logger}} {
		if err := r.Run(context.Background(), target); err != nil {
			t.Errorf("%s.Run() = %v", r.Name(), err)
		}
	}
	if got := strings.Count(buf.String(), "not implemented"); got != 3 {
		t.Errorf("expected three skip warnings, got %d:\n%s", got, buf.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (&LocalRunner{logger: logger}).Run(ctx, target); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() with canceled ctx = %v", err)
	}
}

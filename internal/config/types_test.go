// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestLogLevelValidate(t *testing.T) {
	t.Parallel()

	for _, level := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError} {
		if err := level.Validate(); err != nil {
			t.Errorf("%q.Validate() = %v", level, err)
		}
	}

	err := LogLevel("trace").Validate()
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Fatalf("Validate() = %v, want ErrInvalidLogLevel", err)
	}
	var lvlErr *InvalidLogLevelError
	if !errors.As(err, &lvlErr) || lvlErr.Value != "trace" {
		t.Errorf("errors.As() = %v", lvlErr)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "local image", mutate: func(c *Config) { c.AnsibleTestLocalImage = true }},
		{name: "bad level", mutate: func(c *Config) { c.LogLevelMain = "verbose" }, wantErr: true},
		{
			name: "both test backends",
			mutate: func(c *Config) {
				c.AnsibleTestLocalImage = true
				c.InfraOSD = true
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

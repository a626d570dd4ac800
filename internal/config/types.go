// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// LogLevelDebug logs everything.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is the sentinel error wrapped by InvalidLogLevelError.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written to the log.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// Config holds the importer settings.
	Config struct {
		LogLevelMain          LogLevel `json:"log_level_main" mapstructure:"log_level_main"`
		RunAnsibleDoc         bool     `json:"run_ansible_doc" mapstructure:"run_ansible_doc"`
		TmpRootDir            string   `json:"tmp_root_dir" mapstructure:"tmp_root_dir"`
		RunAnsibleTest        bool     `json:"run_ansible_test" mapstructure:"run_ansible_test"`
		AnsibleTestLocalImage bool     `json:"ansible_test_local_image" mapstructure:"ansible_test_local_image"`
		InfraOSD              bool     `json:"infra_osd" mapstructure:"infra_osd"`
	}

	// InvalidConfigError wraps the field errors of an invalid Config.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Validate returns an error if the level is not recognized.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// String returns the level name.
func (l LogLevel) String() string { return string(l) }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate checks the values CUE cannot see, such as those set through the environment.
func (c Config) Validate() error {
	var errs []error
	if err := c.LogLevelMain.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.AnsibleTestLocalImage && c.InfraOSD {
		errs = append(errs, errors.New("ansible_test_local_image and infra_osd are mutually exclusive"))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevelMain:          LogLevelInfo,
		RunAnsibleDoc:         true,
		TmpRootDir:            "",
		RunAnsibleTest:        false,
		AnsibleTestLocalImage: false,
		InfraOSD:              false,
	}
}

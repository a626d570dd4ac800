// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"galaxy-importer/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree. The root command imports one
// archive; `config` manages the configuration file.
func NewRootCommand(app *App) *cobra.Command {
	opts := &importOptions{}

	rootCmd := &cobra.Command{
		Use:   "galaxy-importer [flags] <file>",
		Short: "Validate and index Ansible collection and role archives",
		Long: TitleStyle.Render("galaxy-importer") + SubtitleStyle.Render(" - Validate and index Ansible content archives") + `

galaxy-importer extracts a collection or role archive, checks its metadata
against the archive filename, loads every module, plugin and role it
contains and writes the import result as JSON.

The archive must be named <namespace>-<name>-<version>.tar.gz. An http(s)
URL is downloaded first.

` + SubtitleStyle.Render("Examples:") + `
  galaxy-importer acme-tools-1.0.0.tar.gz
  galaxy-importer --print-result --summary acme-tools-1.0.0.tar.gz
  galaxy-importer --role acme-webserver-1.2.0.tar.gz
  galaxy-importer config show`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runImport(cmd.Context(), app, opts, args[0])
			var exitErr *ExitError
			if errors.As(err, &exitErr) {
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
			}
			return err
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.printResult, "print-result", false, "print the import result JSON to stdout")
	flags.BoolVar(&opts.role, "role", false, "import a role archive instead of a collection")
	flags.StringVarP(&opts.output, "output", "o", DefaultOutputFile, "file the import result is written to")
	flags.StringVar(&opts.errorFile, "error-file", "", "write a JSON failure record to this file when the import fails")
	flags.BoolVar(&opts.summary, "summary", false, "print a table of the imported contents")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is <user config dir>/galaxy-importer/config.cue)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging and full error chains")

	rootCmd.AddCommand(newConfigCommand(app, opts))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main.
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// include their suggestions; verbose mode adds the error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

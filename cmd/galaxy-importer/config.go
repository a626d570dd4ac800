// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"galaxy-importer/internal/config"
	"galaxy-importer/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `galaxy-importer config` command tree.
func newConfigCommand(app *App, opts *importOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage galaxy-importer configuration",
		Long: `Manage galaxy-importer configuration.

Configuration is read from, in order:
  - the --config flag
  - $GALAXY_IMPORTER_CONFIG
  - <user config dir>/galaxy-importer/config.cue

Any key can be overridden with GALAXY_IMPORTER_<KEY>, for example
GALAXY_IMPORTER_RUN_ANSIBLE_DOC=false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, opts)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, opts *importOptions) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
	if err != nil {
		if rendered, renderErr := issue.Get(issue.ConfigLoadFailedId).Render("dark"); renderErr == nil {
			fmt.Fprint(app.stderr, rendered)
		}
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	if path := activeConfigFile(opts); path != "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.stdout)

	tmpRoot := cfg.TmpRootDir
	if tmpRoot == "" {
		tmpRoot = os.TempDir()
	}
	rows := []struct{ key, value string }{
		{"log_level_main", cfg.LogLevelMain.String()},
		{"run_ansible_doc", fmt.Sprint(cfg.RunAnsibleDoc)},
		{"tmp_root_dir", tmpRoot},
		{"run_ansible_test", fmt.Sprint(cfg.RunAnsibleTest)},
		{"ansible_test_local_image", fmt.Sprint(cfg.AnsibleTestLocalImage)},
		{"infra_osd", fmt.Sprint(cfg.InfraOSD)},
	}
	for _, r := range rows {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render(r.key), valueStyle.Render(r.value))
	}
	return nil
}

// activeConfigFile returns the file configuration is read from, or "" when
// only defaults apply.
func activeConfigFile(opts *importOptions) string {
	if opts.configPath != "" {
		return opts.configPath
	}
	if env := os.Getenv(config.EnvConfigFile); env != "" {
		return env
	}
	path, err := config.FilePath()
	if err != nil || !fileExistsCheck(path) {
		return ""
	}
	return path
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	path, err := config.FilePath()
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", path)
	return nil
}

func initConfig(app *App, opts *importOptions) error {
	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.FilePath(); err != nil {
			return err
		}
	}

	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

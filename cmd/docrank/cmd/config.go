package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/docrank/internal/config"
	"github.com/Aman-CERP/docrank/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage configuration",
		Long: `Configuration is merged from, lowest precedence first:
  defaults
  user config      ~/.config/docrank/config.yaml
  project config   .docrank.yaml or .docrank.yml
  environment      DOCRANK_K1, DOCRANK_B, DOCRANK_MAX_RESULTS,
                   DOCRANK_INDEX_PATH, DOCRANK_INDEX_FORMAT, DOCRANK_LOG_LEVEL`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigRestoreCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := loadProject(cmd, "")
			if err != nil {
				return err
			}
			if jsonOutput {
				return output.JSON(cmd.OutOrStdout(), p.cfg)
			}

			data, err := yaml.Marshal(p.cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "# project root: %s\n%s", p.root, data)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var user, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default values",
		Long: `Write .docrank.yaml in the project root (or, with --user, the user config)
containing every setting at its default. An existing file is only replaced
with --force, and is backed up first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configTarget(user)
			if err != nil {
				return err
			}
			out := output.New(cmd.OutOrStdout())

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to replace it)", path)
			}
			backup, err := config.BackupFile(path)
			if err != nil {
				return err
			}
			if err := config.NewConfig().WriteYAML(path); err != nil {
				return err
			}

			if backup != "" {
				out.Statusf("", "Previous config saved to %s", backup)
			}
			out.Successf("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Write the user config instead of the project config")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing config file")
	return cmd
}

func newConfigRestoreCmd() *cobra.Command {
	var user bool

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore the most recent config backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configTarget(user)
			if err != nil {
				return err
			}
			backups, err := config.ListBackups(path)
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				return errors.New("no backups found for " + path)
			}
			if err := config.RestoreFile(path, backups[0]); err != nil {
				return err
			}
			output.New(cmd.OutOrStdout()).Successf("Restored %s from %s", path, filepath.Base(backups[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&user, "user", false, "Restore the user config instead of the project config")
	return cmd
}

// configTarget returns the config file that init and restore act on.
func configTarget(user bool) (string, error) {
	if user {
		return config.GetUserConfigPath(), nil
	}
	root, err := config.FindProjectRoot(".")
	if err != nil {
		return "", err
	}
	if existing := config.ProjectConfigPath(root); existing != "" {
		return existing, nil
	}
	return filepath.Join(root, config.ProjectConfigNames[0]), nil
}

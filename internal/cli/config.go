package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pathogo/internal/config"
	"pathogo/internal/git"
	"pathogo/internal/printer"
)

func newConfigCmd(s *state) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialize pathogo configuration",
		Long: `Show the resolved manifest and bundle locations and the settings
read from the optional config.toml, or write one holding the defaults.`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := s.cfg
			gitVersion, err := git.Version(cmd.Context(), newRunner(cfg.GitBinary))
			if err != nil {
				gitVersion = "unavailable: " + err.Error()
			}

			s.out.Plain("%s", printer.Bold("Configuration:"))
			s.out.Plain("  manifest:       %s (%s)", cfg.ManifestPath, cfg.ManifestSource)
			s.out.Plain("  bundle_dir:     %s", cfg.BundleDir)
			s.out.Plain("  disabled_dir:   %s", cfg.DisabledDir)
			s.out.Plain("  settings_file:  %s", cfg.SettingsPath)
			s.out.Plain("  git:            %s (%s)", cfg.GitBinary, gitVersion)
			s.out.Plain("  remote:         %s", cfg.Remote)
			s.out.Plain("  branch:         %s", cfg.Branch)
			s.out.Plain("  clone_base_url: %s", cfg.CloneBaseURL)
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s.out.Plain("%s", s.cfg.SettingsPath)
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file holding the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := s.cfg.SettingsPath
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("settings file %s already exists", path)
			} else if !errors.Is(err, os.ErrNotExist) {
				return err
			}

			settings := config.Settings{
				BundleDir:    s.cfg.BundleDir,
				Git:          s.cfg.GitBinary,
				Remote:       s.cfg.Remote,
				Branch:       s.cfg.Branch,
				CloneBaseURL: s.cfg.CloneBaseURL,
			}
			if err := config.SaveSettings(path, settings); err != nil {
				return fmt.Errorf("failed to write settings: %w", err)
			}
			s.out.Success("Wrote %s.", path)
			return nil
		},
	}

	configCmd.AddCommand(showCmd, pathCmd, initCmd)
	return configCmd
}

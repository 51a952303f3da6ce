package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"pathogo/internal/engine"
)

type toggleFunc func(ctx context.Context, names []string) ([]engine.Result, error)

func newDisableCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "disable <plugin>...",
		Short: "Move plugins out of the bundle without deleting them",
		Long: `Move plugins into the bundle's .disabled directory so pathogen
stops loading them, and mark them disabled in the manifest.

Examples:
  pathogo disable vim-fugitive vim-surround`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, s, "disable", "disabled", s.engine.Disable, args)
		},
	}
}

func newEnableCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "enable <plugin>...",
		Short: "Move disabled plugins back into the bundle",
		Long: `Move plugins out of the bundle's .disabled directory and mark
them enabled in the manifest.

Examples:
  pathogo enable vim-fugitive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, s, "enable", "enabled", s.engine.Enable, args)
		},
	}
}

func runToggle(cmd *cobra.Command, s *state, verb, past string, toggle toggleFunc, names []string) error {
	results, err := toggle(cmd.Context(), names)
	if errors.Is(err, engine.ErrNoNames) {
		s.out.Error("No dependencies to %s were specified.", verb)
		exit(1)
		return err
	}

	for _, r := range results {
		switch {
		case r.NotFound:
			s.out.Notice("Could not find `%s`. It may not be installed or is named differently. No action taken.", r.Name)
		case r.Failed():
			s.out.Error("Failed to %s `%s`: %v", verb, r.Name, r.Err)
		default:
			s.out.Success("Successfully %s `%s`.", past, r.Name)
		}
	}
	if err != nil {
		return err
	}
	return failures(verb, results)
}

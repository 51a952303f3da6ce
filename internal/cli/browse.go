package cli

import (
	"github.com/spf13/cobra"

	"pathogo/internal/engine"
	"pathogo/internal/tui"
)

func newBrowseCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Launch the interactive plugin browser",
		Long:  `Browse enabled and disabled plugins in an interactive terminal UI.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, s)
		},
	}
}

// The browser owns the terminal, so its engine reports nothing on stdout.
func runBrowse(cmd *cobra.Command, s *state) error {
	return tui.Run(cmd.Context(), engine.New(*s.cfg, newRunner(s.cfg.GitBinary)))
}

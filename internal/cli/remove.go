package cli

import (
	"github.com/spf13/cobra"
)

func newRemoveCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <plugin>",
		Aliases: []string{"rm"},
		Short:   "Delete a plugin and drop it from the manifest",
		Long: `Delete a plugin's directory, enabled or disabled, and remove it
from the manifest. Removing a plugin that is not there does nothing.

Examples:
  pathogo remove vim-fugitive
  pathogo rm vim-fugitive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.engine.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if r.Skipped {
				s.out.Notice("`%s` is not installed or tracked. No action taken.", r.Name)
				return nil
			}
			s.out.Success("Successfully removed `%s`.", r.Name)
			return nil
		},
	}
}

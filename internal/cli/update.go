package cli

import (
	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"
)

func newUpdateCmd(s *state) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "update [plugin]",
		Aliases: []string{"u"},
		Short:   "Pull the latest changes for installed plugin(s)",
		Long: `Run git pull inside a plugin's directory.

The plugin may be named by its directory or as owner/repo. With --all,
every enabled plugin in the manifest that is installed is updated.
Plugins that are not installed are skipped.

Examples:
  pathogo update vim-fugitive
  pathogo update tpope/vim-fugitive
  pathogo update --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			if name == "" && !all {
				slogcontext.FromCtx(cmd.Context()).Debug("no plugin named and --all not set")
				return nil
			}

			results, err := s.engine.Update(cmd.Context(), name, all)
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.Skipped {
					continue
				}
				s.out.Output(r.Stdout, r.Stderr)
				printFailure(s.out, r)
			}
			return failures("update", results)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "update every enabled plugin")
	return cmd
}

package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"pathogo/internal/engine"
	"pathogo/internal/git"
	"pathogo/internal/printer"
)

func newInstallCmd(s *state) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:     "install [owner/repo]",
		Aliases: []string{"i"},
		Short:   "Clone a plugin, or every plugin in the manifest",
		Long: `Clone a plugin from GitHub into the bundle directory.

With no argument every enabled plugin in the manifest that is not yet
present is cloned, which is how a manifest is provisioned on a new
machine. A failed clone does not stop the others.

Examples:
  pathogo install
  pathogo install tpope/vim-fugitive
  pathogo install --save https://github.com/tpope/vim-surround.git`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var repo string
			if len(args) == 1 {
				repo = args[0]
			}

			results, err := s.engine.Install(cmd.Context(), repo, engine.InstallOptions{Save: save})
			for _, r := range results {
				printInstall(s.out, r)
			}
			if err != nil {
				return err
			}

			for _, r := range results {
				if r.Saved {
					s.out.Success("Saved `%s` to %s.", r.Name, s.cfg.ManifestPath)
				}
			}
			return failures("install", results)
		},
	}

	cmd.Flags().BoolVarP(&save, "save", "S", false, "record the plugin in the manifest")
	return cmd
}

func printInstall(out *printer.Printer, r engine.Result) {
	if r.Skipped {
		out.Notice("`%s` is already installed. No action taken.", r.Name)
		return
	}
	out.Output(r.Stdout, r.Stderr)
	printFailure(out, r)
}

// printFailure reports r.Err when git's own stderr does not already explain it.
func printFailure(out *printer.Printer, r engine.Result) {
	if r.Err == nil {
		return
	}
	var cmdErr *git.CommandError
	if errors.As(r.Err, &cmdErr) {
		if hint := git.Classify(cmdErr.Stderr); hint != nil {
			out.Error("%s: %s", hint.Message, hint.Suggestion)
			return
		}
		if r.Stderr != "" {
			return
		}
	}
	out.Error("%v", r.Err)
}

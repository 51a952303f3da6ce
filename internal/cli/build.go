package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"pathogo/internal/engine"
	"pathogo/internal/printer"
)

func newBuildCmd(s *state) *cobra.Command {
	var opts engine.BuildOptions
	var verbose bool

	cmd := &cobra.Command{
		Use:     "build",
		Aliases: []string{"purge"},
		Short:   "Record every plugin found in the bundle directory",
		Long: `Scan the bundle directory and write each plugin's GitHub origin
into the manifest. Directories that are not GitHub clones are skipped.
Existing manifest entries are kept even when their directory is gone.

Examples:
  pathogo build
  pathogo build --disabled`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := s.engine.Build(cmd.Context(), opts)
			if err != nil {
				return err
			}

			for _, id := range report.Enabled {
				s.out.Plain("%s %s", printer.Success(id.Name), printer.Faint(id.RepoID))
			}
			for _, id := range report.Disabled {
				s.out.Plain("%s %s", printer.Warning(id.Name), printer.Faint(id.RepoID+" (disabled)"))
			}
			if verbose {
				for _, sk := range report.Skipped {
					s.out.Notice("Skipped %s: %s", sk.Name, sk.Reason)
				}
			}
			s.out.Success("Successfully updated `%s`.", filepath.Base(s.cfg.ManifestPath))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.IncludeDisabled, "disabled", false, "also record plugins in the disabled directory")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list directories that were skipped")
	return cmd
}

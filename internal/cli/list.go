package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pathogo/internal/engine"
	"pathogo/internal/printer"
)

func newListCmd(s *state) *cobra.Command {
	var opts engine.ListOptions
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List enabled and disabled plugins",
		Long: `List the plugins recorded in the manifest.

Examples:
  pathogo list
  pathogo list --disabled
  pathogo ls -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listing, err := s.engine.List(opts)
			if err != nil {
				return err
			}

			switch output {
			case "text":
				printListing(s.out, listing, opts)
				return nil
			case "json":
				return writeJSON(cmd.OutOrStdout(), listing)
			case "yaml":
				return writeYAML(cmd.OutOrStdout(), listing)
			default:
				return fmt.Errorf("invalid output format: %s", output)
			}
		},
	}

	cmd.Flags().BoolVarP(&opts.Enabled, "enabled", "e", false, "only list enabled plugins")
	cmd.Flags().BoolVarP(&opts.Disabled, "disabled", "d", false, "only list disabled plugins")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json, yaml)")
	return cmd
}

func printListing(out *printer.Printer, listing engine.Listing, opts engine.ListOptions) {
	both := opts.Enabled == opts.Disabled
	if both || opts.Enabled {
		out.Group("Enabled", printer.Success, listLines(listing.Enabled))
	}
	if both {
		out.Plain("")
	}
	if both || opts.Disabled {
		out.Group("Disabled", printer.Warning, listLines(listing.Disabled))
	}
}

func listLines(entries []engine.ListEntry) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("%s (%s)", e.Name, e.RepoID)
		if !e.Installed {
			line += " [not installed]"
		}
		lines = append(lines, line)
	}
	return lines
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

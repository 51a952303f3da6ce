package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	"pathogo/internal/config"
	"pathogo/internal/engine"
	"pathogo/internal/git"
	"pathogo/internal/log"
	"pathogo/internal/printer"
)

var version = "dev"

// Hooks replaced by tests.
var (
	newRunner = func(binary string) git.Runner { return git.NewExecRunner(binary) }
	loadEnv   = config.EnvFromOS
	exit      = os.Exit
	isTTY     = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
	}
)

// state is what every subcommand shares once flags are parsed.
type state struct {
	opts   config.Options
	cfg    *config.Config
	engine *engine.Engine
	out    *printer.Printer
}

// setup resolves configuration and installs the logger into the command context.
func (s *state) setup(cmd *cobra.Command) error {
	logger, err := log.GetBaseLogger(cmd)
	if err != nil {
		return err
	}
	cmd.SetContext(slogcontext.NewCtx(cmd.Context(), logger))

	env, err := loadEnv()
	if err != nil {
		return err
	}
	cfg, err := config.Load(s.opts, env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("resolved configuration",
		"manifest", cfg.ManifestPath,
		"manifest_source", string(cfg.ManifestSource),
		"bundle", cfg.BundleDir,
	)

	s.cfg = cfg
	s.out = printer.New(cmd.OutOrStdout())
	s.engine = engine.New(*cfg, newRunner(cfg.GitBinary), engine.WithProgress(s.progress))
	return nil
}

// progress announces each clone and pull as it starts, so a long batch shows
// where it is before git's output arrives.
func (s *state) progress(action, name string) {
	switch action {
	case "install":
		s.out.Success("Installing %s...", name)
	case "update":
		s.out.Success("Updating %s...", name)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	s := &state{}

	rootCmd := &cobra.Command{
		Use:   "pathogo",
		Short: "Manage pathogen-style vim plugins from a JSON manifest",
		Long: `pathogo keeps a JSON manifest of vim plugins in sync with your
bundle directory. Plugins are cloned from GitHub with git, and can be
updated, removed, disabled and re-enabled without editing anything by hand.

The manifest is ~/.pathogo.json unless --to or $PATHOGO points elsewhere.
The bundle directory is ~/.vim/bundle (vimfiles\bundle on Windows) unless
--bundle-path names an existing directory.

Run without a subcommand on a terminal to browse plugins interactively.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTTY() {
				return cmd.Help()
			}
			return runBrowse(cmd, s)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&s.opts.ManifestPath, "to", "", "path to the manifest file")
	flags.StringVar(&s.opts.BundlePath, "bundle-path", "", "path to the plugin bundle directory")
	flags.StringVar(&s.opts.SettingsPath, "config", "", "path to the settings file")
	log.RegisterLoggingFlags(rootCmd)

	rootCmd.AddCommand(
		newInstallCmd(s),
		newUpdateCmd(s),
		newRemoveCmd(s),
		newBuildCmd(s),
		newListCmd(s),
		newDisableCmd(s),
		newEnableCmd(s),
		newConfigCmd(s),
		newBrowseCmd(s),
	)
	return rootCmd
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

// Execute runs the CLI
func Execute() error {
	return execute(NewRootCmd())
}

// execute runs root and points at the failing command's help when the
// arguments were at fault.
func execute(root *cobra.Command) error {
	cmd, err := root.ExecuteC()
	if err != nil && engine.IsInputError(err) {
		cmd.PrintErrf("Run '%s --help' for usage.\n", cmd.CommandPath())
	}
	return err
}

// failures summarizes failed entries of a batch as a single error.
func failures(action string, results []engine.Result) error {
	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%s failed for %d of %d plugin(s)", action, failed, len(results))
}

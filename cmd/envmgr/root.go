package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/envmgr/envmgr/pkg/commands"
	"github.com/envmgr/envmgr/pkg/config"
	"github.com/envmgr/envmgr/pkg/logging"
	"github.com/envmgr/envmgr/pkg/shell"
	"github.com/envmgr/envmgr/pkg/ui"
)

// Populated at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "envmgr",
		Short: "Manage named environments: variables, dotfiles, and tool contexts",
		Long: `envmgr keeps named environments, each with its own variables, dotfiles,
and tool plugins. Switching environments relinks dotfiles into your home
directory and emits the shell commands that update your session.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newCurrentCmd())
	rootCmd.AddCommand(newUseCmd())
	rootCmd.AddCommand(newDotfilesCmd())
	rootCmd.AddCommand(newPluginCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// newApp wires the application against the real filesystem, honoring the
// ENVMGR_CONFIG_DIR override.
func newApp() (*commands.App, error) {
	return commands.NewApp("")
}

// newRenderer builds the output renderer from the user's color setting.
func newRenderer(app *commands.App) *ui.Renderer {
	return ui.NewRenderer(app.Settings.Color)
}

// dialectFlag resolves the activation dialect: the --shell flag wins, then
// the settings file's shell entry, then detection from the running shell's
// environment.
func dialectFlag(name string, settings *config.Settings) (shell.Dialect, error) {
	if name == "" && settings != nil {
		name = settings.Shell
	}
	if name == "" {
		return shell.Detect(), nil
	}
	d, ok := shell.ParseDialect(name)
	if !ok {
		return "", fmt.Errorf("unsupported shell %q (bash, zsh, fish)", name)
	}
	return d, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("envmgr version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish]",
		Short:                 "Generate shell completion script",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			}
			return nil
		},
	}
}

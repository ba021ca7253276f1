package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/envmgr/envmgr/pkg/errors"
)

func newUseCmd() *cobra.Command {
	var shellName string

	cmd := &cobra.Command{
		Use:     "use [name]",
		Aliases: []string{"switch"},
		Short:   "Activate an environment",
		Long: `Activate an environment: relink its dotfiles and print the shell
commands that update the session's variables.

Stdout carries only the activation commands; the shell hook evals them.
Run without a name to re-apply the current environment.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			dialect, err := dialectFlag(shellName, app.Settings)
			if err != nil {
				return err
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			result, err := app.Use(name, dialect)
			if err != nil {
				// Nothing reaches stdout on a failed switch; an eval'ing
				// shell must see an empty stream.
				if errors.IsErrorCode(err, errors.ErrLinkConflict) && result != nil && result.Report != nil {
					fmt.Fprintln(os.Stderr, newRenderer(app).RenderConflicts(result.Report))
				}
				return err
			}

			for _, line := range result.Lines {
				fmt.Println(line)
			}
			fmt.Fprintf(os.Stderr, "Switched to environment %q\n", result.Resolved.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&shellName, "shell", "s", "", "Shell dialect to emit (bash, zsh, fish; default: detected)")
	return cmd
}

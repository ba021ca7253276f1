package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envmgr/envmgr/pkg/shell"
)

func newInstallCmd() *cobra.Command {
	var (
		shellName string
		printOnly bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the shell activation hook",
		Long: `Append the activation hook to your shell's rc file. The hook wraps
the use command so its output is eval'd into the running session.

Installing twice is safe: an existing hook is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			dialect, err := dialectFlag(shellName, app.Settings)
			if err != nil {
				return err
			}

			if printOnly {
				fmt.Print(shell.HookSnippet(dialect, app.Paths))
				return nil
			}

			rcPath, modified, err := shell.InstallHooks(dialect, app.Paths)
			if err != nil {
				return err
			}
			if modified {
				fmt.Printf("Installed %s hook in %s\n", dialect, rcPath)
				fmt.Println("Restart your shell or source the file to activate it.")
			} else {
				fmt.Printf("Hook already installed in %s\n", rcPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&shellName, "shell", "s", "", "Shell dialect (bash, zsh, fish; default: detected)")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the hook snippet instead of modifying the rc file")
	return cmd
}

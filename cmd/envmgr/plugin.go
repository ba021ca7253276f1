package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

func newPluginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugin",
		Short: "Manage tool plugins per environment",
	}

	cmd.AddCommand(newPluginListCmd())
	cmd.AddCommand(newPluginEnableCmd())
	cmd.AddCommand(newPluginDisableCmd())
	cmd.AddCommand(newPluginConfigCmd())
	return cmd
}

func newPluginListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			for _, name := range app.PluginList() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func newPluginEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <plugin> <env>",
		Short: "Enable a plugin for an environment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.PluginEnable(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Enabled plugin %q for environment %q\n", args[0], args[1])
			return nil
		},
	}
}

func newPluginDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <plugin> <env>",
		Short: "Disable a plugin for an environment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.PluginDisable(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Disabled plugin %q for environment %q\n", args[0], args[1])
			return nil
		},
	}
}

func newPluginConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config <plugin> <env>",
		Short: "Edit a plugin's configuration for an environment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			path, err := app.PluginConfigFile(args[0], args[1])
			if err != nil {
				return err
			}

			editor := app.Settings.EditorCommand()
			edit := exec.Command(editor, path)
			edit.Stdin = os.Stdin
			edit.Stdout = os.Stdout
			edit.Stderr = os.Stderr
			return edit.Run()
		},
	}
}

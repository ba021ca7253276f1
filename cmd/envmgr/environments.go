package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new environment",
		Long: `Create a new environment with its config, dotfiles tree, and plugins
directory. With --base, the new environment inherits variables, plugins,
and dotfiles from the named parent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			var basePtr *string
			if base != "" {
				basePtr = &base
			}
			cfg, err := app.Add(args[0], basePtr)
			if err != nil {
				return err
			}

			if cfg.Base != nil {
				fmt.Printf("Created environment %q (inherits from %q)\n", cfg.Name, *cfg.Base)
			} else {
				fmt.Printf("Created environment %q\n", cfg.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&base, "base", "b", "", "Parent environment to inherit from")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Delete an environment",
		Long:    `Delete an environment and everything under it. The active environment cannot be removed.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.Remove(args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed environment %q\n", args[0])
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <name>",
		Short: "Open an environment's config in your editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return app.Edit(args[0])
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List environments",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			infos, err := app.List()
			if err != nil {
				return err
			}
			fmt.Println(newRenderer(app).RenderEnvList(infos))
			return nil
		},
	}
}

func newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the active environment's name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			current, err := app.Current()
			if err != nil {
				return err
			}
			if current == "" {
				return fmt.Errorf("no environment is currently active")
			}
			fmt.Println(current)
			return nil
		},
	}
}

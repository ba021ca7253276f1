package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDotfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dotfiles",
		Short: "Inspect and manage dotfile links",
	}

	cmd.AddCommand(newDotfilesListCmd())
	cmd.AddCommand(newDotfilesLinkCmd())
	cmd.AddCommand(newDotfilesDiffCmd())
	return cmd
}

func newDotfilesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the dotfiles the active environment provides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			entries, err := app.DotfilesList()
			if err != nil {
				return err
			}
			fmt.Println(newRenderer(app).RenderDotfileEntries(entries))
			return nil
		},
	}
}

func newDotfilesLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link",
		Short: "Relink the active environment's dotfiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			report, err := app.DotfilesLink()
			if report != nil {
				fmt.Println(newRenderer(app).RenderLinkReport(report))
			}
			return err
		},
	}
}

func newDotfilesDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <name>",
		Short: "Preview what linking an environment's dotfiles would change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			report, err := app.DotfilesDiff(args[0])
			if err != nil {
				return err
			}
			fmt.Println(newRenderer(app).RenderLinkReport(report))
			return nil
		},
	}
}

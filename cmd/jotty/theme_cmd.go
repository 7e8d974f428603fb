package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xxxsen/jotty/internal/model"
)

func newThemeCmd(opts *rootOptions) *cobra.Command {
	var systemDark bool
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "show or change the display theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app) error {
				theme := a.themeSvc.Get()
				if theme == model.ThemeSystem {
					fmt.Printf("%s (%s)\n", theme, a.themeSvc.Effective(systemDark))
					return nil
				}
				fmt.Println(theme)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&systemDark, "system-dark", false, "resolve system as dark")
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <light|dark|system>",
			Short: "set the theme",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(opts, func(ctx context.Context, a *app) error {
					theme := model.Theme(args[0])
					if err := a.themeSvc.Set(ctx, theme); err != nil {
						return fmt.Errorf("set theme %q: %w", args[0], err)
					}
					fmt.Println(theme)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "cycle light, dark, system",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(opts, func(ctx context.Context, a *app) error {
					theme, err := a.themeSvc.Toggle(ctx)
					if err != nil {
						return err
					}
					fmt.Println(theme)
					return nil
				})
			},
		},
	)
	return cmd
}

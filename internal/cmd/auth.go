// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-recall/internal/output"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the session credential",
		Long: `Sign in to the arc-recall service or back out to guest mode.

Signed in, commands operate on your account's data on the service.
Signed out, they operate on this device's local store. The two data
sets never mix; switching discards nothing on either side.`,
	}

	cmd.AddCommand(newAuthLoginCmd(app))
	cmd.AddCommand(newAuthLogoutCmd(app))
	cmd.AddCommand(newAuthStatusCmd(app))

	return cmd
}

func newAuthLoginCmd(app *App) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return fmt.Errorf("a session token is required (--token)")
			}
			ctx := cmd.Context()

			// Verify the credential before storing it by loading the
			// account's data through it.
			if err := app.Manager.SwitchBackend(ctx, app.RemoteBackend(token)); err != nil {
				return fmt.Errorf("sign in: %w", err)
			}
			if err := app.SaveToken(ctx, token); err != nil {
				return err
			}

			fmt.Printf("Signed in. %d categor(ies), %d flashcard(s) loaded.\n",
				len(app.Manager.Categories()), len(app.Manager.Flashcards()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "Session token issued by the service")

	return cmd
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and return to guest mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.ClearToken(ctx); err != nil {
				return err
			}
			if err := app.Manager.SwitchBackend(ctx, app.LocalBackend()); err != nil {
				return fmt.Errorf("load guest collections: %w", err)
			}
			fmt.Println("Signed out. Using this device's local store.")
			return nil
		},
	}
}

func newAuthStatusCmd(app *App) *cobra.Command {
	var out output.OutputOptions

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current session mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			token, err := app.Token(cmd.Context())
			if err != nil {
				return err
			}

			mode := "guest"
			if token != "" {
				mode = "signed-in"
			}

			if out.Is(output.OutputJSON) {
				return output.JSON(map[string]any{
					"mode":    mode,
					"service": app.Cfg.APIBaseURL,
				})
			}

			fmt.Printf("Mode: %s\n", mode)
			if token != "" {
				fmt.Printf("Service: %s\n", app.Cfg.APIBaseURL)
			}
			return nil
		},
	}

	out.AddOutputFlags(cmd, output.OutputTable)
	return cmd
}

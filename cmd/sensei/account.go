package main

import (
	"fmt"

	"github.com/mark3labs/sensei/internal/storage"
	"github.com/mark3labs/sensei/internal/wizard"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the remembered username",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(store storage.Store) error {
			name, ok, err := store.Get(cmd.Context(), storage.KeyUsername)
			if err != nil {
				return fmt.Errorf("failed to read username: %w", err)
			}
			if !ok || name == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the remembered username",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(store storage.Store) error {
			ctrl := wizard.New(cmd.Context(), store)
			name := ctrl.Session().Username
			ctrl.Logout(cmd.Context())

			if name == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged out %s.\n", name)
			return nil
		})
	},
}

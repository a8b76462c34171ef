package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCommand(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := app.session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("login failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.session.Logout()
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := app.requireAuthenticated()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "%s <%s> (%s)\n", identity.Name, identity.Email, identity.Role)
			return nil
		},
	}
}

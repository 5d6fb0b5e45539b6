package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Kinvey management API",
		Long: `Authenticate against the management API and cache the session token.

Credentials may be passed as flags, supplied through the KINVEY_CLI_EMAIL and
KINVEY_CLI_PASSWORD environment variables, or entered interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			err = c.Session().Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Println("You are logged in.")

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "e-mail address of your Kinvey account")
	cmd.Flags().StringVar(&password, "password", "", "password of your Kinvey account")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the cached session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			err = c.Session().Logout(cmd.Context())
			if err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}

			fmt.Println("You are logged out.")

			return nil
		},
	}
}

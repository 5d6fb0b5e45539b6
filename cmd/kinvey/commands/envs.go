package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinvey/cli/internal/client"
	"github.com/kinvey/cli/pkg/kinvey"
)

// NewEnvsCommand creates the envs command group. Environments live under an
// app; the --app flag selects it, defaulting to the active app.
func NewEnvsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "envs",
		Short: "Manage backend environments",
	}

	cmd.AddCommand(newEnvsListCommand())
	cmd.AddCommand(newEnvsGetCommand())
	cmd.AddCommand(newEnvsCreateCommand())
	cmd.AddCommand(newEnvsDeleteCommand())
	cmd.AddCommand(newEnvsUseCommand())

	return cmd
}

func newEnvsListCommand() *cobra.Command {
	var appFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the environments of an app",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			app, err := c.Apps().GetByIdOrName(cmd.Context(), appFlag)
			if err != nil {
				return err
			}

			envs, err := c.Environments().GetAll(cmd.Context(), app.ID)
			if err != nil {
				return err
			}

			return renderOutput(envs, func() {
				rows := make([][]string, 0, len(envs))
				for _, env := range envs {
					rows = append(rows, []string{env.ID, env.Name})
				}

				printTable([]string{"ID", "Name"}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&appFlag, "app", "", "app id or name (defaults to the active app)")

	return cmd
}

func newEnvsGetCommand() *cobra.Command {
	var appFlag string

	cmd := &cobra.Command{
		Use:   "get [env]",
		Short: "Show an environment by id or name, or the active environment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			env, err := resolveEnv(cmd, c, identifierArg(args), appFlag)
			if err != nil {
				return err
			}

			return renderOutput(env, func() {
				printTable([]string{"ID", "Name", "App"}, [][]string{{env.ID, env.Name, env.App}})
			})
		},
	}

	cmd.Flags().StringVar(&appFlag, "app", "", "app id or name (defaults to the active app)")

	return cmd
}

func newEnvsCreateCommand() *cobra.Command {
	var appFlag string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an environment under an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			app, err := c.Apps().GetByIdOrName(cmd.Context(), appFlag)
			if err != nil {
				return err
			}

			env, err := c.Environments().Create(cmd.Context(), app.ID, &kinvey.EnvironmentCreateRequest{Name: args[0]})
			if err != nil {
				return err
			}

			fmt.Printf("Created environment %s (%s)\n", env.Name, env.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&appFlag, "app", "", "app id or name (defaults to the active app)")

	return cmd
}

func newEnvsDeleteCommand() *cobra.Command {
	var appFlag string

	cmd := &cobra.Command{
		Use:   "delete [env]",
		Short: "Delete an environment by id or name, or the active environment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			identifier := identifierArg(args)

			appID, err := envParentAppID(cmd, c, identifier, appFlag)
			if err != nil {
				return err
			}

			removedID, err := c.Environments().RemoveByIdOrName(cmd.Context(), identifier, appID)
			if err != nil {
				return err
			}

			if item, ok := c.Session().ActiveItem(kinvey.ItemTypeEnv); ok && item.ID == removedID {
				_ = c.ClearActiveItem(kinvey.ItemTypeEnv)
			}

			fmt.Printf("Deleted environment %s\n", removedID)

			return nil
		},
	}

	cmd.Flags().StringVar(&appFlag, "app", "", "app id or name (defaults to the active app)")

	return cmd
}

func newEnvsUseCommand() *cobra.Command {
	var appFlag string

	cmd := &cobra.Command{
		Use:   "use <env>",
		Short: "Set the active environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			appID, err := envParentAppID(cmd, c, args[0], appFlag)
			if err != nil {
				return err
			}

			env, err := c.UseEnvironment(cmd.Context(), args[0], appID)
			if err != nil {
				return err
			}

			fmt.Printf("Using environment: %s\n", env.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&appFlag, "app", "", "app id or name (defaults to the active app)")

	return cmd
}

// resolveEnv resolves an environment, falling back to the active environment
// when identifier is empty. Name resolution needs the parent app.
func resolveEnv(cmd *cobra.Command, c *client.Client, identifier, appFlag string) (*kinvey.Environment, error) {
	appID, err := envParentAppID(cmd, c, identifier, appFlag)
	if err != nil {
		return nil, err
	}

	return c.Environments().GetByIdOrName(cmd.Context(), identifier, appID)
}

// envParentAppID resolves the app an environment operation is scoped to. An
// id-shaped or absent identifier needs no app; a name lookup does.
func envParentAppID(cmd *cobra.Command, c *client.Client, identifier, appFlag string) (string, error) {
	needsApp := identifier != "" && !client.IsEnvID(identifier)
	if !needsApp && appFlag == "" {
		return "", nil
	}

	app, err := c.Apps().GetByIdOrName(cmd.Context(), appFlag)
	if err != nil {
		return "", err
	}

	return app.ID, nil
}

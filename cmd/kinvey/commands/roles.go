package commands

import (
	"github.com/spf13/cobra"
)

// NewRolesCommand creates the roles command group. Roles are read through the
// data plane of an environment; the --env flag selects it, defaulting to the
// active environment.
func NewRolesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Inspect the roles of an environment",
	}

	cmd.AddCommand(newRolesListCommand())
	cmd.AddCommand(newRolesGetCommand())

	return cmd
}

func newRolesListCommand() *cobra.Command {
	var envFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the roles of an environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			env, err := resolveEnv(cmd, c, envFlag, "")
			if err != nil {
				return err
			}

			roles, err := c.Roles().GetAll(cmd.Context(), env)
			if err != nil {
				return err
			}

			return renderOutput(roles, func() {
				rows := make([][]string, 0, len(roles))
				for _, role := range roles {
					rows = append(rows, []string{role.ID, role.Name, role.Description})
				}

				printTable([]string{"ID", "Name", "Description"}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&envFlag, "env", "", "environment id or name (defaults to the active environment)")

	return cmd
}

func newRolesGetCommand() *cobra.Command {
	var envFlag string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a role by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			env, err := resolveEnv(cmd, c, envFlag, "")
			if err != nil {
				return err
			}

			role, err := c.Roles().Get(cmd.Context(), env, args[0])
			if err != nil {
				return err
			}

			return renderOutput(role, func() {
				printTable([]string{"ID", "Name", "Description"}, [][]string{{role.ID, role.Name, role.Description}})
			})
		},
	}

	cmd.Flags().StringVar(&envFlag, "env", "", "environment id or name (defaults to the active environment)")

	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinvey/cli/internal/client"
	"github.com/kinvey/cli/pkg/kinvey"
)

// NewCollectionsCommand creates the collections command group. Collections
// live inside an environment; the --env flag selects it, defaulting to the
// active environment.
func NewCollectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Manage data collections",
	}

	cmd.AddCommand(newCollectionsListCommand())
	cmd.AddCommand(newCollectionsCreateCommand())
	cmd.AddCommand(newCollectionsDeleteCommand())

	return cmd
}

func newCollectionsListCommand() *cobra.Command {
	var envFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the collections of an environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			env, err := collectionEnv(cmd, c, envFlag)
			if err != nil {
				return err
			}

			collections, err := c.Collections().GetAll(cmd.Context(), env.ID)
			if err != nil {
				return err
			}

			return renderOutput(collections, func() {
				rows := make([][]string, 0, len(collections))
				for _, coll := range collections {
					rows = append(rows, []string{coll.Name, coll.Type})
				}

				printTable([]string{"Name", "Type"}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&envFlag, "env", "", "environment id or name (defaults to the active environment)")

	return cmd
}

func newCollectionsCreateCommand() *cobra.Command {
	var envFlag string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a collection in an environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			env, err := collectionEnv(cmd, c, envFlag)
			if err != nil {
				return err
			}

			collection, err := c.Collections().Create(cmd.Context(), env.ID, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Created collection %s\n", collection.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&envFlag, "env", "", "environment id or name (defaults to the active environment)")

	return cmd
}

func newCollectionsDeleteCommand() *cobra.Command {
	var envFlag string

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a collection by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			env, err := collectionEnv(cmd, c, envFlag)
			if err != nil {
				return err
			}

			err = c.Collections().Remove(cmd.Context(), env.ID, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Deleted collection %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&envFlag, "env", "", "environment id or name (defaults to the active environment)")

	return cmd
}

// collectionEnv resolves the environment a collection operation targets.
func collectionEnv(cmd *cobra.Command, c *client.Client, envFlag string) (*kinvey.Environment, error) {
	return resolveEnv(cmd, c, envFlag, "")
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinvey/cli/pkg/kinvey"
)

// NewAppsCommand creates the apps command group.
func NewAppsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Manage applications",
	}

	cmd.AddCommand(newAppsListCommand())
	cmd.AddCommand(newAppsGetCommand())
	cmd.AddCommand(newAppsCreateCommand())
	cmd.AddCommand(newAppsDeleteCommand())
	cmd.AddCommand(newAppsUseCommand())

	return cmd
}

func newAppsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			apps, err := c.Apps().GetAll(cmd.Context())
			if err != nil {
				return err
			}

			return renderOutput(apps, func() {
				rows := make([][]string, 0, len(apps))
				for _, app := range apps {
					rows = append(rows, []string{app.ID, app.Name, app.OrganizationID, fmt.Sprintf("%d", len(app.Environments))})
				}

				printTable([]string{"ID", "Name", "Organization", "Environments"}, rows)
			})
		},
	}
}

func newAppsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [app]",
		Short: "Show an application by id or name, or the active app",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			app, err := c.Apps().GetByIdOrName(cmd.Context(), identifierArg(args))
			if err != nil {
				return err
			}

			return renderOutput(app, func() {
				printTable([]string{"ID", "Name", "Organization"}, [][]string{{app.ID, app.Name, app.OrganizationID}})
			})
		},
	}
}

func newAppsCreateCommand() *cobra.Command {
	var orgID string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			app, err := c.Apps().Create(cmd.Context(), &kinvey.AppCreateRequest{
				Name:           args[0],
				OrganizationID: orgID,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created application %s (%s)\n", app.Name, app.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "organization id to create the app under")

	return cmd
}

func newAppsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [app]",
		Short: "Delete an application by id or name, or the active app",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			removedID, err := c.Apps().RemoveByIdOrName(cmd.Context(), identifierArg(args))
			if err != nil {
				return err
			}

			// Drop the active app if it pointed at the removed entity.
			if item, ok := c.Session().ActiveItem(kinvey.ItemTypeApp); ok && item.ID == removedID {
				_ = c.ClearActiveItem(kinvey.ItemTypeApp)
			}

			fmt.Printf("Deleted application %s\n", removedID)

			return nil
		},
	}
}

func newAppsUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <app>",
		Short: "Set the active application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			app, err := c.UseApp(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Using app: %s\n", app.Name)

			return nil
		},
	}
}

// identifierArg returns the optional positional identifier, empty when the
// command relies on the active item.
func identifierArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return ""
}

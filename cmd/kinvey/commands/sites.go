package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinvey/cli/pkg/kinvey"
)

// NewSitesCommand creates the sites command group.
func NewSitesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "Manage static websites",
	}

	cmd.AddCommand(newSitesListCommand())
	cmd.AddCommand(newSitesGetCommand())
	cmd.AddCommand(newSitesCreateCommand())
	cmd.AddCommand(newSitesDeleteCommand())
	cmd.AddCommand(newSitesUseCommand())
	cmd.AddCommand(newSitesPublishCommand())
	cmd.AddCommand(newSitesUnpublishCommand())
	cmd.AddCommand(newSitesStatusCommand())

	return cmd
}

func newSitesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			sites, err := c.Sites().GetAll(cmd.Context())
			if err != nil {
				return err
			}

			return renderOutput(sites, func() {
				rows := make([][]string, 0, len(sites))
				for _, site := range sites {
					rows = append(rows, []string{site.ID, site.Name})
				}

				printTable([]string{"ID", "Name"}, rows)
			})
		},
	}
}

func newSitesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [site]",
		Short: "Show a site by id or name, or the active site",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			site, err := c.Sites().GetByIdOrName(cmd.Context(), identifierArg(args))
			if err != nil {
				return err
			}

			return renderOutput(site, func() {
				printTable([]string{"ID", "Name"}, [][]string{{site.ID, site.Name}})
			})
		},
	}
}

func newSitesCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			site, err := c.Sites().Create(cmd.Context(), &kinvey.SiteCreateRequest{Name: args[0]})
			if err != nil {
				return err
			}

			fmt.Printf("Created site %s (%s)\n", site.Name, site.ID)

			return nil
		},
	}
}

func newSitesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [site]",
		Short: "Delete a site by id or name, or the active site",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			removedID, err := c.Sites().RemoveByIdOrName(cmd.Context(), identifierArg(args))
			if err != nil {
				return err
			}

			if item, ok := c.Session().ActiveItem(kinvey.ItemTypeSite); ok && item.ID == removedID {
				_ = c.ClearActiveItem(kinvey.ItemTypeSite)
			}

			fmt.Printf("Deleted site %s\n", removedID)

			return nil
		},
	}
}

func newSitesUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <site>",
		Short: "Set the active site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			site, err := c.UseSite(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Using site: %s\n", site.Name)

			return nil
		},
	}
}

func newSitesPublishCommand() *cobra.Command {
	var domain string

	cmd := &cobra.Command{
		Use:   "publish [site]",
		Short: "Publish a site on a domain",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			site, err := c.Sites().GetByIdOrName(cmd.Context(), identifierArg(args))
			if err != nil {
				return err
			}

			err = c.Sites().Publish(cmd.Context(), site, domain)
			if err != nil {
				return err
			}

			fmt.Printf("Published site %s\n", site.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "domain name to publish on; must match the site name")

	return cmd
}

func newSitesUnpublishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unpublish [site]",
		Short: "Take a published site offline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			site, err := c.Sites().GetByIdOrName(cmd.Context(), identifierArg(args))
			if err != nil {
				return err
			}

			err = c.Sites().Unpublish(cmd.Context(), site.ID)
			if err != nil {
				return err
			}

			fmt.Printf("Unpublished site %s\n", site.Name)

			return nil
		},
	}
}

func newSitesStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status [site]",
		Short: "Show the publish status of a site",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			site, err := c.Sites().GetByIdOrName(cmd.Context(), identifierArg(args))
			if err != nil {
				return err
			}

			status, err := c.Sites().GetStatus(cmd.Context(), site.ID)
			if err != nil {
				return err
			}

			return renderOutput(status, func() {
				printTable([]string{"Status", "Public URL"}, [][]string{{status.Status, status.PublicURL}})
			})
		},
	}
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewOrgsCommand creates the orgs command group.
func NewOrgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orgs",
		Short: "Manage organizations",
	}

	cmd.AddCommand(newOrgsListCommand())
	cmd.AddCommand(newOrgsGetCommand())
	cmd.AddCommand(newOrgsUseCommand())

	return cmd
}

func newOrgsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			orgs, err := c.Organizations().GetAll(cmd.Context())
			if err != nil {
				return err
			}

			return renderOutput(orgs, func() {
				rows := make([][]string, 0, len(orgs))
				for _, org := range orgs {
					rows = append(rows, []string{org.ID, org.Name})
				}

				printTable([]string{"ID", "Name"}, rows)
			})
		},
	}
}

func newOrgsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [org]",
		Short: "Show an organization by id or name, or the active organization",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			org, err := c.Organizations().GetByIdOrName(cmd.Context(), identifierArg(args))
			if err != nil {
				return err
			}

			return renderOutput(org, func() {
				printTable([]string{"ID", "Name"}, [][]string{{org.ID, org.Name}})
			})
		},
	}
}

func newOrgsUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <org>",
		Short: "Set the active organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			org, err := c.UseOrganization(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Using organization: %s\n", org.Name)

			return nil
		},
	}
}

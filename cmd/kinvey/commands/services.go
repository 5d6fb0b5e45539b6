package commands

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/kinvey/cli/internal/client"
	"github.com/kinvey/cli/pkg/kinvey"
)

// NewServicesCommand creates the services command group.
func NewServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Manage Flex services",
	}

	cmd.AddCommand(newServicesListCommand())
	cmd.AddCommand(newServicesGetCommand())
	cmd.AddCommand(newServicesCreateCommand())
	cmd.AddCommand(newServicesDeleteCommand())
	cmd.AddCommand(newServicesUseCommand())
	cmd.AddCommand(newServicesStatusCommand())
	cmd.AddCommand(newServicesLogsCommand())

	return cmd
}

func newServicesListCommand() *cobra.Command {
	var internalOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List services",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			var (
				services []kinvey.Service
				listErr  error
			)

			if internalOnly {
				services, listErr = c.Services().GetInternalServices(cmd.Context())
			} else {
				services, listErr = c.Services().GetAll(cmd.Context())
			}

			if listErr != nil {
				return listErr
			}

			return renderOutput(services, func() {
				rows := make([][]string, 0, len(services))
				for _, svc := range services {
					rows = append(rows, []string{svc.ID, svc.Name, svc.Type})
				}

				printTable([]string{"ID", "Name", "Type"}, rows)
			})
		},
	}

	cmd.Flags().BoolVar(&internalOnly, "internal", false, "only show internal (Flex runtime) services")

	return cmd
}

func newServicesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [service]",
		Short: "Show a service by id or name, or the active service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			service, err := c.Services().GetByIdOrName(cmd.Context(), identifierArg(args))
			if err != nil {
				return err
			}

			return renderOutput(service, func() {
				printTable([]string{"ID", "Name", "Type"}, [][]string{{service.ID, service.Name, service.Type}})
			})
		},
	}
}

func newServicesCreateCommand() *cobra.Command {
	var (
		serviceType string
		orgID       string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			service, err := c.Services().Create(cmd.Context(), &kinvey.ServiceCreateRequest{
				Name:           args[0],
				Type:           serviceType,
				OrganizationID: orgID,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created service %s (%s)\n", service.Name, service.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&serviceType, "type", "", "service type, e.g. internal")
	cmd.Flags().StringVar(&orgID, "org", "", "organization id to create the service under")

	return cmd
}

func newServicesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [service]",
		Short: "Delete a service by id or name, or the active service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			removedID, err := c.Services().RemoveByIdOrName(cmd.Context(), identifierArg(args))
			if err != nil {
				return err
			}

			if item, ok := c.Session().ActiveItem(kinvey.ItemTypeService); ok && item.ID == removedID {
				_ = c.ClearActiveItem(kinvey.ItemTypeService)
			}

			fmt.Printf("Deleted service %s\n", removedID)

			return nil
		},
	}
}

func newServicesUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <service>",
		Short: "Set the active service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			service, err := c.UseService(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Using service: %s\n", service.Name)

			return nil
		},
	}
}

func newServicesStatusCommand() *cobra.Command {
	var svcEnv string

	cmd := &cobra.Command{
		Use:   "status [service]",
		Short: "Show the deployment status of a service environment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			service, env, err := resolveServiceEnv(cmd, c, identifierArg(args), svcEnv)
			if err != nil {
				return err
			}

			status, err := c.Services().GetStatus(cmd.Context(), service.ID, env.ID)
			if err != nil {
				return err
			}

			return renderOutput(status, func() {
				printTable(
					[]string{"Status", "Version", "Deployed At"},
					[][]string{{status.Status, status.Version, status.DeployedAt}},
				)
			})
		},
	}

	cmd.Flags().StringVar(&svcEnv, "env", "", "service environment id or name")

	return cmd
}

func newServicesLogsCommand() *cobra.Command {
	var (
		svcEnv string
		from   string
		to     string
		page   string
		number string
	)

	cmd := &cobra.Command{
		Use:   "logs [service]",
		Short: "Fetch the logs of a service environment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			service, env, err := resolveServiceEnv(cmd, c, identifierArg(args), svcEnv)
			if err != nil {
				return err
			}

			query := url.Values{}
			if from != "" {
				query.Set("from", from)
			}
			if to != "" {
				query.Set("to", to)
			}
			if page != "" {
				query.Set("page", page)
			}
			if number != "" {
				query.Set("limit", number)
			}

			entries, err := c.Services().GetLogs(cmd.Context(), service.ID, env.ID, query)
			if err != nil {
				return err
			}

			return renderOutput(entries, func() {
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{entry.Timestamp, entry.Threshold, entry.Message})
				}

				printTable([]string{"Timestamp", "Threshold", "Message"}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&svcEnv, "env", "", "service environment id or name")
	cmd.Flags().StringVar(&from, "from", "", "fetch log entries after this ISO-8601 timestamp")
	cmd.Flags().StringVar(&to, "to", "", "fetch log entries before this ISO-8601 timestamp")
	cmd.Flags().StringVar(&page, "page", "", "page of log entries to fetch")
	cmd.Flags().StringVar(&number, "number", "", "number of log entries to fetch per page")

	return cmd
}

// resolveServiceEnv resolves a service and one of its environments. An empty
// environment identifier picks the only environment when the service has
// exactly one.
func resolveServiceEnv(cmd *cobra.Command, c *client.Client, serviceIdentifier, envIdentifier string) (*kinvey.Service, *kinvey.ServiceEnvironment, error) {
	service, err := c.Services().GetByIdOrName(cmd.Context(), serviceIdentifier)
	if err != nil {
		return nil, nil, err
	}

	if envIdentifier == "" {
		envs, err := c.Services().GetEnvironments(cmd.Context(), service.ID)
		if err != nil {
			return nil, nil, err
		}

		switch len(envs) {
		case 0:
			return nil, nil, kinvey.NewNotFoundError(kinvey.ItemTypeServiceEnv, service.Name)
		case 1:
			return service, &envs[0], nil
		default:
			return nil, nil, kinvey.NewItemNotSpecifiedError(kinvey.ItemTypeServiceEnv)
		}
	}

	env, err := c.Services().GetEnvironmentByIdOrName(cmd.Context(), envIdentifier, service.ID)
	if err != nil {
		return nil, nil, err
	}

	return service, env, nil
}

package commands

import (
	"github.com/spf13/cobra"
)

// NewJobsCommand creates the jobs command group.
func NewJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect asynchronous jobs",
	}

	cmd.AddCommand(newJobsGetCommand())

	return cmd
}

func newJobsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show the status of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			job, err := c.Jobs().GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return renderOutput(job, func() {
				printTable([]string{"ID", "Status", "Progress"}, [][]string{{job.ID, job.Status, job.Progress}})
			})
		},
	}
}

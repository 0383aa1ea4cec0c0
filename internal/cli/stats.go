package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/demo"
)

// AverageResult is the JSON payload of stats gpa.
// AverageGPA is null when there are no students.
type AverageResult struct {
	AverageGPA *float64 `json:"average_gpa"`
}

// NewStatsCommand creates the stats command group.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate queries",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "gpa",
		Short:         "Class average GPA",
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			avg, err := rootOpts.store().AverageGPA(cmd.Context())
			if err != nil {
				return operationError(err)
			}
			f := rootOpts.formatter(cmd)
			if f.IsJSON() {
				return f.Success(AverageResult{AverageGPA: avg})
			}
			demo.RenderAverageGPA(cmd.OutOrStdout(), avg)
			return nil
		},
	})

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InitResult is the JSON payload of the init command.
type InitResult struct {
	Path          string `json:"path"`
	SchemaVersion int    `json:"schema_version"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database file and schema",
		Long: `Create the database directory, file and tables if they do not exist.

Safe to run repeatedly; existing rows are kept. Every other command
requires an initialized database.

Example:
  gradebook init --db ./data/grades.db`,
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, cmd)
		},
	}
}

func runInit(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	st := opts.store()

	if err := st.Initialize(ctx); err != nil {
		return operationError(err)
	}

	version, err := st.SchemaVersion(ctx)
	if err != nil {
		return operationError(err)
	}

	f := opts.formatter(cmd)
	if f.IsJSON() {
		return f.Success(InitResult{Path: st.Path(), SchemaVersion: version})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Database initialized: %s\n", st.Path())
	return nil
}

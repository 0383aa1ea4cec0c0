package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/demo"
)

// DemoOptions holds flags for the demo command.
type DemoOptions struct {
	*RootOptions
	Scenario string // optional scenario file; the embedded default when empty
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DemoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a demonstration scenario",
		Long: `Run a scenario of store operations and print each result.

Without --scenario the built-in walkthrough runs: it initializes the store,
adds three students, three courses and five grades, then lists, joins,
aggregates, filters, updates and deletes.

Constraint violations (for example re-running against the same database)
are printed and the scenario continues. Storage failures stop the run.

Exit codes:
  0 - Scenario completed (constraint violations included)
  2 - Command error (scenario not loadable, storage failure)

Examples:
  gradebook demo
  gradebook demo --scenario ./scenarios/cascade.cue --db /tmp/demo.db`,
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "scenario file (.yaml or .cue)")

	return cmd
}

func runDemo(opts *DemoOptions, cmd *cobra.Command) error {
	var (
		sc  *demo.Scenario
		err error
	)
	if opts.Scenario != "" {
		sc, err = demo.LoadScenario(opts.Scenario)
	} else {
		sc, err = demo.DefaultScenario()
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	f := opts.formatter(cmd)
	f.VerboseLog("scenario %s: %d steps against %s", sc.Name, len(sc.Steps), opts.cfg.Database.Path)

	// JSON output reports only the summary; the console transcript is text
	var out io.Writer = cmd.OutOrStdout()
	if f.IsJSON() {
		out = io.Discard
	}

	runner := demo.NewRunner(opts.store(), out, opts.logger, opts.RunIDs)
	result, err := runner.Run(cmd.Context(), sc)
	if err != nil {
		return operationError(err)
	}

	if f.IsJSON() {
		return f.SuccessWithRunID(result, result.RunID)
	}
	return nil
}

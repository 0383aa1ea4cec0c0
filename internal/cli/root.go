package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/config"
	"github.com/roach88/gradebook/internal/demo"
	"github.com/roach88/gradebook/internal/logging"
	"github.com/roach88/gradebook/internal/records"
	"github.com/roach88/gradebook/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Database   string // overrides database.path from config
	ConfigPath string

	// RunIDs overrides the demo run ID generator (for testing).
	// If nil, defaults to demo.UUIDv7Generator.
	RunIDs demo.RunIDGenerator

	cfg    *config.Config
	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the gradebook CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	demoOpts := &DemoOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "gradebook",
		Short: "Student grade records over an embedded SQLite store",
		Long: `Manage students, courses and grades in a single SQLite file.

Run without a subcommand to execute the built-in demonstration, which
creates the schema, adds sample data, then reads, joins, aggregates,
filters, updates and deletes grades.

Example:
  gradebook
  gradebook --db /tmp/grades.db student list
  gradebook grade range 2025-01-20 2025-01-22 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(demoOpts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config: "+config.DefaultDatabasePath+")")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $"+config.EnvConfigPath+" or ./"+config.ConfigFileName+")")
	cmd.Flags().StringVar(&demoOpts.Scenario, "scenario", "", "scenario file (.yaml or .cue) for the default demo")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	// Add subcommands
	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewStudentCommand(opts))
	cmd.AddCommand(NewCourseCommand(opts))
	cmd.AddCommand(NewGradeCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

// Execute runs the CLI with args and returns the process exit code.
// Errors are reported on stderr, or as a JSON error response on stdout
// when --format json is in effect.
func Execute(args []string, stdout, stderr io.Writer) int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	// Anything not already classified came from argument parsing
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		err = WrapExitError(ExitCommandError, "command error", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: stderr}
	if f.IsJSON() {
		f.Writer = stdout
	}
	_ = f.Error(errorCode(err), err.Error(), nil)
	return GetExitCode(err)
}

// setup validates global flags, loads configuration and builds the logger.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	cfg, err := config.Load(config.FindConfigPath(o.ConfigPath))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if o.Database != "" {
		cfg.Database.Path = o.Database
	}
	o.cfg = cfg

	o.logger = logging.New(cmd.ErrOrStderr(), cfg.Logging, o.Verbose)
	return nil
}

// store returns the facade for the configured database path.
func (o *RootOptions) store() *store.Store {
	return store.New(o.cfg.Database.Path, store.Options{
		BusyTimeout: o.cfg.GetBusyTimeout(),
		WAL:         o.cfg.Database.WAL,
		Logger:      o.logger,
	})
}

// formatter returns an OutputFormatter writing to the command's stdout.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// exactArgs is cobra.ExactArgs with the error classified as a command error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}

func parseID(name, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid %s %q: want an integer", name, s))
	}
	return id, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid %s %q: want a number", name, s))
	}
	return v, nil
}

func parseDate(name, s string) (records.Date, error) {
	d, err := records.ParseDate(s)
	if err != nil {
		return records.Date{}, WrapExitError(ExitCommandError, "invalid "+name, err)
	}
	return d, nil
}

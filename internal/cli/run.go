package cli

import (
	"github.com/spf13/cobra"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Data        string
	SQLite      string
	SQL         string
	Limit       int
	SkipFaults  bool
	MaxBuffered int
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [query-file]",
		Short: "Run a query and print the resulting records",
		Long: `Run a query over a dataset and print the resulting records.

The query file is YAML holding a source and a list of steps. Source flags
override the file's source; with no query file the records are printed
unchanged.

Example:
  mq run queries/adults.yaml
  mq run queries/adults.yaml --data people.json --limit 10
  mq run --sqlite app.db --sql "SELECT name, team FROM users" --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qf := &QueryFile{}
			if len(args) == 1 {
				var err error
				if qf, err = LoadQueryFile(args[0]); err != nil {
					return WrapExitError(ExitCommandError, "failed to load query", err)
				}
			}
			opts.override(cmd, qf)
			if err := qf.Source.Validate(); err != nil {
				return WrapExitError(ExitCommandError, "invalid source", err)
			}
			return runQuery(cmd, opts, qf)
		},
	}

	cmd.Flags().StringVar(&opts.Data, "data", "", "data file: a YAML or JSON list, CSV with a header row, or JSON lines")
	cmd.Flags().StringVar(&opts.SQLite, "sqlite", "", "path to a SQLite database")
	cmd.Flags().StringVar(&opts.SQL, "sql", "", "statement to run against --sqlite")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "stop after this many records (0 for all)")
	cmd.Flags().BoolVar(&opts.SkipFaults, "skip-faults", false, "drop source records that fail to load")
	cmd.Flags().IntVar(&opts.MaxBuffered, "max-buffered", 0, "cap on records held by ordering and grouping steps (0 for no cap)")

	return cmd
}

// override applies the flags the user set on top of the query file.
func (o *RunOptions) override(cmd *cobra.Command, qf *QueryFile) {
	flags := cmd.Flags()
	if flags.Changed("data") {
		qf.Source = Source{File: o.Data}
	}
	if flags.Changed("sqlite") {
		qf.Source = Source{SQLite: o.SQLite, SQL: qf.Source.SQL}
	}
	if flags.Changed("sql") {
		qf.Source.SQL = o.SQL
	}
	if o.Limit > 0 {
		limit := o.Limit
		qf.Steps = append(qf.Steps, Step{Take: &limit})
	}
}

func runQuery(cmd *cobra.Command, opts *RunOptions, qf *QueryFile) error {
	runner := Runner{
		Logger:      opts.Logger,
		SkipFaults:  opts.SkipFaults,
		MaxBuffered: opts.MaxBuffered,
	}
	out := &RecordWriter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if err := runner.Run(cmd.Context(), qf, out.Write); err != nil {
		return WrapExitError(ExitFailure, "query failed", err)
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sarchlab/hbmsim/datarecording"
	"github.com/sarchlab/hbmsim/mem/hbm/stats"
)

type reportOptions struct {
	dbPath string
	runID  string
	stat   string
}

var reportOpts reportOptions

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the statistics recorded by earlier runs.",
	Long: "`report --db runs` prints the statistics that `run --db runs` " +
		"recorded, one block per run. The default of --db can be set with " +
		envDB + ".",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return report(cmd.Context(), cmd.OutOrStdout(), reportOpts)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	f := reportCmd.Flags()
	f.StringVar(&reportOpts.dbPath, "db", envOr(envDB, ""),
		"SQLite database written by run (without .sqlite3)")
	f.StringVar(&reportOpts.runID, "run", "", "only print this run")
	f.StringVar(&reportOpts.stat, "stat", "", "only print this statistic")
}

func report(ctx context.Context, out io.Writer, opts reportOptions) error {
	if opts.dbPath == "" {
		return fmt.Errorf("no database given, use --db or %s", envDB)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	reader, err := datarecording.NewReader(opts.dbPath + ".sqlite3")
	if err != nil {
		return err
	}
	defer reader.Close()

	entries, err := datarecording.ReadStats(ctx, reader, opts.runID, opts.stat)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return fmt.Errorf("no statistics recorded in %s.sqlite3", opts.dbPath)
	}

	for _, run := range groupByRun(entries) {
		fmt.Fprintf(out, "run %s\n", run.id)

		if _, err := run.report.WriteTo(out); err != nil {
			return fmt.Errorf("printing report: %w", err)
		}
	}

	return nil
}

type recordedRun struct {
	id     string
	report stats.Report
}

// groupByRun splits the entries into runs, in the order the runs were
// recorded.
func groupByRun(entries []datarecording.StatEntry) []recordedRun {
	var runs []recordedRun

	index := make(map[string]int)

	for _, e := range entries {
		i, found := index[e.RunID]
		if !found {
			i = len(runs)
			index[e.RunID] = i
			runs = append(runs, recordedRun{id: e.RunID})
		}

		runs[i].report.AddValue(e.Name, e.Desc, e.Value, e.Precision)
	}

	return runs
}

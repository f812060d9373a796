package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"

	"github.com/sarchlab/hbmsim/datarecording"
	"github.com/sarchlab/hbmsim/mem/hbm"
	"github.com/sarchlab/hbmsim/sim/hooking"
)

type runOptions struct {
	configPath string
	tracePath  string
	dbPath     string
	yamlPath   string
	quiet      bool
	logEvents  bool

	overrides hbm.Config
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a memory trace.",
	Long: "`run --trace mem.trace` replays the trace on the memory system " +
		"described by the configuration file and prints the statistics. " +
		"The defaults of --config and --db can be set with " +
		envConfig + " and " + envDB + ".",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(runOpts.configPath)
		if err != nil {
			return err
		}

		applyOverrides(cmd, &cfg, runOpts.overrides)

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		return run(cmd.OutOrStdout(), cfg, runOpts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.StringVar(&runOpts.configPath, "config", envOr(envConfig, ""),
		"YAML configuration file")
	f.StringVar(&runOpts.tracePath, "trace", "", "memory trace to replay")
	f.StringVar(&runOpts.dbPath, "db", envOr(envDB, ""),
		"record the run into this SQLite database (without .sqlite3)")
	f.StringVar(&runOpts.yamlPath, "yaml", "", "write the report as YAML")
	f.BoolVar(&runOpts.quiet, "quiet", false, "hide the progress bar")
	f.BoolVar(&runOpts.logEvents, "log-events", false,
		"print every request event to stderr")

	o := &runOpts.overrides
	f.IntVar(&o.Channels, "channels", 0, "number of channels")
	f.IntVar(&o.Ranks, "ranks", 0, "number of ranks per channel")
	f.StringVar(&o.Scheme, "scheme", "", "RoBaRaCoCh or ChRaBaRoCo")
	f.StringVar(&o.Translation, "translation", "", "None or Random")
	f.BoolVar(&o.PIMMode, "pim", false, "estimate PIM data movement")
	f.BoolVar(&o.NetworkOverhead, "network-overhead", false,
		"delay requests by their PIM hop latency")
	f.IntVar(&o.NumCores, "cores", 0, "number of cores")
	f.Int64Var(&o.Seed, "seed", 0, "seed of the random page translation")

	_ = runCmd.MarkFlagRequired("trace")
}

// applyOverrides copies the options given on the command line.
func applyOverrides(cmd *cobra.Command, cfg *hbm.Config, o hbm.Config) {
	f := cmd.Flags()

	if f.Changed("channels") {
		cfg.Channels = o.Channels
	}

	if f.Changed("ranks") {
		cfg.Ranks = o.Ranks
	}

	if f.Changed("scheme") {
		cfg.Scheme = o.Scheme
	}

	if f.Changed("translation") {
		cfg.Translation = o.Translation
	}

	if f.Changed("pim") {
		cfg.PIMMode = o.PIMMode
	}

	if f.Changed("network-overhead") {
		cfg.NetworkOverhead = o.NetworkOverhead
	}

	if f.Changed("cores") {
		cfg.NumCores = o.NumCores
	}

	if f.Changed("seed") {
		cfg.Seed = o.Seed
	}
}

func run(out io.Writer, cfg hbm.Config, opts runOptions) error {
	reqs, err := readTrace(opts.tracePath)
	if err != nil {
		return err
	}

	events := hooking.NewPosCounter()

	b := hbm.MakeBuilder().WithConfig(cfg).WithHook(events)
	if opts.logEvents {
		b = b.WithHook(hbm.NewLogTracer(log.New(os.Stderr, "", 0)))
	}

	comp := b.Build("HBM")

	progress := newProgress(opts.quiet)
	bar := progress.AddBar(int64(len(reqs)),
		mpb.PrependDecorators(
			decor.Name("replay "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)

	res, err := simulate(comp, cfg, reqs, func() { bar.Increment() })
	if err != nil {
		bar.Abort(false)
		progress.Wait()

		return err
	}

	bar.SetTotal(int64(len(reqs)), true)
	progress.Wait()

	if _, err := res.report.WriteTo(out); err != nil {
		return fmt.Errorf("printing report: %w", err)
	}

	log.Printf("%s: %s", comp.Name(), eventSummary(events))

	if opts.dbPath != "" {
		recordRun(datarecording.New(opts.dbPath), res)
	}

	if opts.yamlPath != "" {
		return writeYAMLFile(opts.yamlPath, res)
	}

	return nil
}

// eventSummary counts the events of a run, in the order they first
// happened.
func eventSummary(events *hooking.PosCounter) string {
	names := events.Names()
	if len(names) == 0 {
		return "no events"
	}

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, events.CountName(name))
	}

	return strings.Join(parts, " ")
}

func newProgress(quiet bool) *mpb.Progress {
	if quiet {
		return mpb.New(mpb.WithOutput(io.Discard))
	}

	return mpb.New(mpb.WithOutput(os.Stderr), mpb.WithWidth(60))
}

func recordRun(recorder datarecording.DataRecorder, res result) {
	rec := datarecording.NewRunRecorder(recorder)
	rec.RecordConfig(res.cfg)
	rec.RecordReport(res.report)
	rec.RecordAccessPattern(res.records)

	if err := recorder.Close(); err != nil {
		log.Printf("closing database: %v", err)
	}
}

func writeYAMLFile(path string, res result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating YAML report: %w", err)
	}

	if err := writeYAMLReport(f, res); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

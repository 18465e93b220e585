package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/sarchlab/pagingsim/config"
	"github.com/sarchlab/pagingsim/datarecording"
	"github.com/sarchlab/pagingsim/mem/trace"
	"github.com/sarchlab/pagingsim/mem/vm/mmu"
	"github.com/sarchlab/pagingsim/monitoring"
	"github.com/sarchlab/pagingsim/report"
	"github.com/sarchlab/pagingsim/sim/hooking"
	"github.com/sarchlab/pagingsim/sim/id"
	"github.com/sarchlab/pagingsim/simulation"
	"github.com/sarchlab/pagingsim/tracing"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [trace-file]",
	Short: "Run a trace of memory references.",
	Long: "Run reads one reference per line, `R <address>` or `W <address>`, " +
		"from the trace file or from the standard input when the file is " +
		"omitted or `-`.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd, args)
		if err != nil {
			return err
		}

		level, _ := cfg.Level()
		setupLogger(level)

		in, closeInput, err := openTrace(cfg, cmd.InOrStdin())
		if err != nil {
			return err
		}
		defer closeInput()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return runSimulation(ctx, cfg, in, cmd.OutOrStdout())
	},
}

func init() {
	d := config.Default()

	runCmd.Flags().Int("page-size", d.PageSize, "Bytes per page")
	runCmd.Flags().Int("pages", d.NumPages, "Number of logical pages")
	runCmd.Flags().Int("frames", d.NumFrames, "Number of physical frames")
	runCmd.Flags().String("policy", d.Policy, "Replacement policy (FIFO or LRU)")
	runCmd.Flags().Bool("detailed", false, "Print every paging step")
	runCmd.Flags().Bool("report", false,
		"Print the page table, the frame table and the replacement report")
	runCmd.Flags().String("db", "", "Record the events into this SQLite file")
	runCmd.Flags().Bool("monitor", false, "Serve the state of the run over HTTP")
	runCmd.Flags().Int("port", 0, "Port of the monitoring server")
	runCmd.Flags().Bool("open-browser", false,
		"Open the monitoring page in a browser")

	rootCmd.AddCommand(runCmd)
}

// resolveConfig layers the flags that were set over the env file and the
// environment.
func resolveConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg, err := config.Load(mustGetString(cmd, "env-file"))
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()

	ints := map[string]*int{
		"page-size": &cfg.PageSize,
		"pages":     &cfg.NumPages,
		"frames":    &cfg.NumFrames,
		"port":      &cfg.MonitorPort,
	}
	for name, v := range ints {
		if flags.Changed(name) {
			*v, _ = flags.GetInt(name)
		}
	}

	bools := map[string]*bool{
		"detailed":     &cfg.Detailed,
		"report":       &cfg.Report,
		"monitor":      &cfg.Monitor,
		"open-browser": &cfg.OpenBrowser,
	}
	for name, v := range bools {
		if flags.Changed(name) {
			*v, _ = flags.GetBool(name)
		}
	}

	strs := map[string]*string{
		"policy":    &cfg.Policy,
		"db":        &cfg.DBPath,
		"log-level": &cfg.LogLevel,
	}
	for name, v := range strs {
		if flags.Changed(name) {
			*v, _ = flags.GetString(name)
		}
	}

	if len(args) > 0 {
		cfg.TraceFile = args[0]
	}

	return cfg, cfg.Validate()
}

func openTrace(
	cfg config.Config,
	stdin io.Reader,
) (io.Reader, func(), error) {
	if cfg.ReadsStdin() {
		return stdin, func() {}, nil
	}

	f, err := os.Open(cfg.TraceFile)
	if err != nil {
		return nil, nil, fmt.Errorf("opening trace: %w", err)
	}

	return f, func() { f.Close() }, nil
}

// runSimulation builds the system and its observers from cfg, runs the trace
// and prints the reports to out.
func runSimulation(
	ctx context.Context,
	cfg config.Config,
	in io.Reader,
	out io.Writer,
) error {
	logger := slog.Default()

	sys, err := cfg.Builder().WithLogger(logger).Build("MMU")
	if err != nil {
		return err
	}

	counter := tracing.NewEventCountTracer()
	sys.AcceptHook(counter)

	if cfg.Detailed {
		sys.AcceptHook(tracing.NewDetailTracer(out))
	}

	if cfg.DBPath != "" {
		recorder, err := datarecording.New(
			strings.TrimSuffix(cfg.DBPath, ".sqlite3"))
		if err != nil {
			return err
		}
		defer recorder.Close()

		sys.AcceptHook(tracing.NewDBTracer(recorder, id.NewRunIDGenerator()))
	}

	simBuilder := simulation.MakeBuilder().WithSystem(sys).WithLogger(logger)

	var monitor *monitoring.Monitor
	if cfg.Monitor {
		monitor = monitoring.NewMonitor().
			WithLogger(logger).
			WithPortNumber(cfg.MonitorPort)

		bar := monitor.CreateProgressBar("trace", 0)
		simBuilder = simBuilder.WithProgressBar(bar)
	}

	s := simBuilder.Build()

	if monitor != nil {
		monitor.RegisterSimulation(s)

		url := monitor.StartServer()
		defer monitor.StopServer()

		if cfg.OpenBrowser {
			monitor.OpenBrowser(url)
		}
	}

	n, err := s.Run(ctx, trace.NewReader(in))
	if err != nil {
		return fmt.Errorf("run %s: %w", s.ID(), err)
	}

	logger.Info("trace finished", "id", s.ID(), "accesses", n)
	logEventCounts(logger, counter)

	if err := printReports(cfg, out, s); err != nil {
		return err
	}

	if monitor != nil {
		logger.Info("simulation finished, press Ctrl+C to stop monitoring")
		<-ctx.Done()
	}

	return nil
}

func logEventCounts(logger *slog.Logger, counter *tracing.EventCountTracer) {
	for _, pos := range []*hooking.HookPos{
		mmu.HookPosPageFault,
		mmu.HookPosReplace,
		mmu.HookPosWriteBack,
		mmu.HookPosIllegalRef,
	} {
		logger.Debug("event count",
			"event", pos.Name,
			"count", counter.GetCount(pos))
	}
}

func printReports(
	cfg config.Config,
	out io.Writer,
	s *simulation.Simulation,
) (err error) {
	s.Inspect(func(sys *mmu.System) {
		if cfg.Report {
			err = report.All(out, sys)
			return
		}

		err = report.Summary(out, sys)
	})

	return err
}

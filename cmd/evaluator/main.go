// Command evaluator runs evaluator operations from the command
// line and executes scenario suites against them.
//
// Usage:
//
//	evaluator calc <operation> <args...>
//	evaluator run [flags]
//	evaluator validate <suite-file>
//	evaluator ops
//	evaluator watch [-addr url]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"digital.vasic.evaluator/pkg/assertion"
	"digital.vasic.evaluator/pkg/bank"
	"digital.vasic.evaluator/pkg/env"
	"digital.vasic.evaluator/pkg/evaluator"
	"digital.vasic.evaluator/pkg/logging"
	"digital.vasic.evaluator/pkg/metrics"
	"digital.vasic.evaluator/pkg/monitor"
	"digital.vasic.evaluator/pkg/plugin"
	"digital.vasic.evaluator/pkg/report"
	"digital.vasic.evaluator/pkg/runner"
	"digital.vasic.evaluator/pkg/scenario"
)

const usage = `usage: evaluator <command> [arguments]

commands:
  calc <operation> <args...>   apply one operation and print the result
  run [flags]                  run a scenario suite (the seed suite by default)
  validate <suite-file>        check a suite file for errors
  ops                          list supported operations
  watch [-addr url]            stream events from a running monitor
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	switch args[0] {
	case "calc":
		return runCalc(args[1:], stdout, stderr)
	case "run":
		return runSuite(ctx, args[1:], stdout, stderr)
	case "validate":
		return runValidate(args[1:], stdout, stderr)
	case "ops":
		return runOps(stdout)
	case "watch":
		return runWatch(ctx, args[1:], stdout, stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
}

// runCalc applies a single operation. Operation errors are
// reported on stdout as "Error: <message>".
func runCalc(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: evaluator calc <operation> <args...>")
		return 2
	}
	op := args[0]
	operands, err := parseOperands(args[1:])
	if err != nil {
		fmt.Fprintf(stderr, "invalid operand: %v\n", err)
		return 2
	}

	e := evaluator.New(evaluator.WithOutput(stdout))
	value, err := e.Apply(op, operands...)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	if value != nil {
		fmt.Fprintf(stdout, "Result: %v\n", value)
	}
	return 0
}

func parseOperands(args []string) ([]int32, error) {
	operands := make([]int32, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseInt(a, 10, 32)
		if err != nil {
			return nil, err
		}
		operands = append(operands, int32(v))
	}
	return operands, nil
}

func runOps(stdout io.Writer) int {
	for _, op := range evaluator.Operations() {
		arity, _ := evaluator.Arity(op)
		fmt.Fprintf(stdout, "%-16s %d\n", op, arity)
	}
	return 0
}

func runValidate(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "usage: evaluator validate <suite-file>")
		return 2
	}
	errs := bank.ValidateFile(args[0])
	if len(errs) == 0 {
		fmt.Fprintf(stdout, "%s: ok\n", args[0])
		return 0
	}
	for _, e := range errs {
		fmt.Fprintf(stdout, "%s: %v\n", args[0], e)
	}
	return 1
}

// suiteFlags holds the command-line flags of the run command.
type suiteFlags struct {
	suite      string
	extra      string
	configPath string
	envPath    string
	parallel   int
	strict     bool
	reportDir  string
	logPath    string
	monitor    string
	hold       time.Duration
	timeout    time.Duration
	jsonOut    bool
	verbose    bool
}

func parseSuiteFlags(
	args []string,
	stderr io.Writer,
) (*suiteFlags, map[string]bool, error) {
	f := &suiteFlags{}
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.suite, "suite", "", "suite file or directory (default: built-in seed suite)")
	fs.StringVar(&f.extra, "extra", "", "additional suite file loaded alongside -suite")
	fs.StringVar(&f.configPath, "config", "", "YAML run configuration")
	fs.StringVar(&f.envPath, "env", "", "KEY=VALUE environment file")
	fs.IntVar(&f.parallel, "parallel", 0, "number of scenarios run at once")
	fs.BoolVar(&f.strict, "strict", false, "fail the run on unexpected passes")
	fs.StringVar(&f.reportDir, "report", "", "directory for JSON and Markdown summaries")
	fs.StringVar(&f.logPath, "log", "", "JSON Lines log file")
	fs.StringVar(&f.monitor, "monitor", "", "serve live events on this address")
	fs.DurationVar(&f.hold, "hold", 0, "keep the monitor serving this long after the run")
	fs.DurationVar(&f.timeout, "timeout", 0, "per-scenario timeout")
	fs.BoolVar(&f.jsonOut, "json", false, "print the summary as JSON")
	fs.BoolVar(&f.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set, nil
}

// loadRunConfig layers defaults, the config file, the
// environment and explicitly set flags, in that order.
func loadRunConfig(
	f *suiteFlags,
	set map[string]bool,
) (*scenario.Config, error) {
	cfg := scenario.NewConfig()
	if f.configPath != "" {
		loaded, err := scenario.LoadConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	loader := env.NewLoader()
	if f.envPath != "" {
		if err := loader.Load(f.envPath); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(loader); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if set["parallel"] {
		cfg.Parallelism = f.parallel
	}
	if set["strict"] {
		cfg.Strict = f.strict
	}
	if set["report"] {
		cfg.ResultsDir = f.reportDir
	}
	if set["monitor"] {
		cfg.MonitorAddr = f.monitor
	}
	if set["hold"] {
		cfg.MonitorHold = f.hold
	}
	if set["timeout"] {
		cfg.Timeout = f.timeout
	}
	if set["v"] {
		cfg.Verbose = f.verbose
	}
	return cfg, cfg.Validate()
}

func newLogger(
	cfg *scenario.Config,
	logPath string,
	stderr io.Writer,
) (logging.Logger, error) {
	level := logging.LevelWarn
	if cfg.Verbose {
		level = logging.LevelDebug
	}
	loggers := []logging.Logger{logging.NewConsoleLoggerTo(stderr, level)}

	switch {
	case logPath != "":
		jl, err := logging.NewJSONLogger(logging.LoggerConfig{
			OutputPath: logPath,
			Level:      logging.LevelDebug,
		})
		if err != nil {
			return nil, err
		}
		loggers = append(loggers, jl)
	case cfg.LogsDir != "":
		jl, err := logging.SetupLogging(cfg.LogsDir, cfg.Verbose)
		if err != nil {
			return nil, err
		}
		loggers = append(loggers, jl)
	}
	return logging.NewMultiLogger(loggers...), nil
}

func loadBank(path string) (*bank.Bank, error) {
	if path == "" {
		return bank.Seed()
	}
	b := bank.New()
	if err := b.LoadPath(path); err != nil {
		return nil, err
	}
	return b, nil
}

func runSuite(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
) int {
	f, set, err := parseSuiteFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	cfg, err := loadRunConfig(f, set)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	logger, err := newLogger(cfg, f.logPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "logging: %v\n", err)
		return 2
	}
	defer logger.Close()

	b, err := loadBank(f.suite)
	if err != nil {
		fmt.Fprintf(stderr, "suite: %v\n", err)
		return 2
	}

	engine := assertion.NewEngine()
	loaded := []plugin.Plugin{plugin.NumericPlugin{}}
	if f.extra != "" {
		data, err := os.ReadFile(f.extra)
		if err != nil {
			fmt.Fprintf(stderr, "suite: %v\n", err)
			return 2
		}
		loaded = append(loaded, &plugin.SuitePlugin{
			PluginName:    "extra",
			PluginVersion: "1",
			Source:        f.extra,
			Data:          data,
		})
	}
	plugins := plugin.NewRegistry()
	if err := plugins.LoadAndInit(
		loaded,
		&plugin.Context{Engine: engine, Bank: b, Logger: logger},
	); err != nil {
		fmt.Fprintf(stderr, "plugins: %v\n", err)
		return 2
	}

	collector := monitor.NewEventCollector()
	var srv *monitor.Server
	if cfg.MonitorAddr != "" {
		dashboard := monitor.NewDashboard(
			time.Now().Format("20060102_150405"),
		)
		srv = monitor.NewServer(cfg.MonitorAddr, collector, dashboard)
		go func() {
			if err := srv.Start(ctx); err != nil {
				logger.Error("monitor_failed", logging.ErrorField(err))
			}
		}()
		defer func() {
			stopCtx, cancel := context.WithTimeout(
				context.Background(), time.Second,
			)
			defer cancel()
			_ = srv.Stop(stopCtx)
		}()
		logger.Info("monitor_listening",
			logging.StringField("addr", cfg.MonitorAddr),
		)
	}

	rec := metrics.NewInMemoryMetrics()
	r := runner.NewRunner(
		runner.WithConfig(cfg),
		runner.WithEngine(engine),
		runner.WithLogger(logger),
		runner.WithMetrics(rec),
		runner.WithCollector(collector),
	)

	logger.Info("suite_started",
		logging.IntField("scenarios", b.Count()),
		logging.StringField("sources", strings.Join(b.Sources(), ",")),
		logging.IntField("parallelism", cfg.Parallelism),
		logging.BoolField("strict", cfg.Strict),
	)

	var results []*scenario.Result
	if cfg.Parallelism > 1 {
		results, err = r.RunParallel(ctx, b.All(), cfg.Parallelism)
	} else {
		results, err = r.RunAll(ctx, b.All())
	}
	if err != nil {
		logger.Warn("suite_interrupted", logging.ErrorField(err))
	}

	var reporter report.Reporter = report.NewTextReporter(cfg.Strict)
	if f.jsonOut {
		reporter = report.NewJSONReporter(true, cfg.Strict)
	}
	out, genErr := reporter.GenerateSummary(results)
	if genErr != nil {
		fmt.Fprintf(stderr, "report: %v\n", genErr)
		return 1
	}
	_, _ = stdout.Write(out)
	if f.jsonOut {
		fmt.Fprintln(stdout)
	}

	summary := report.BuildSummary(results, cfg.Strict)
	if srv != nil {
		status := monitor.RunCompleted
		if err != nil || !summary.Success {
			status = monitor.RunFailed
		}
		srv.SetRunStatus(status)
	}
	if cfg.ResultsDir != "" {
		if err := report.SaveSummary(summary, cfg.ResultsDir); err != nil {
			fmt.Fprintf(stderr, "report: %v\n", err)
			return 1
		}
	}

	logger.Info("suite_completed",
		logging.BoolField("success", summary.Success),
		logging.IntField("run_total", rec.RunTotal()),
		logging.DurationField(
			"duration_seconds", summary.TotalDuration.Seconds(),
		),
	)

	if srv != nil && cfg.MonitorHold > 0 {
		logger.Info("monitor_holding",
			logging.DurationField(
				"hold_seconds", cfg.MonitorHold.Seconds(),
			),
		)
		hold := time.NewTimer(cfg.MonitorHold)
		select {
		case <-ctx.Done():
		case <-hold.C:
		}
		hold.Stop()
	}

	if err != nil || !summary.Success {
		return 1
	}
	return 0
}

// runWatch follows a run started with -monitor and prints one
// line per finished scenario. It returns once the run reports a
// final state or the server goes away.
func runWatch(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", "http://127.0.0.1:8090",
		"base URL of the monitor server")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	client := monitor.NewClient(*addr)
	if err := client.Health(ctx); err != nil {
		fmt.Fprintf(stderr, "monitor unavailable: %v\n", err)
		return 1
	}

	printed := make(map[scenario.ID]bool)
	finished := func(id scenario.ID, status string) {
		if printed[id] {
			return
		}
		printed[id] = true
		fmt.Fprintf(stdout, "%-9s %s\n", status, id)
	}

	err := client.Watch(ctx, func(m monitor.Message) bool {
		switch {
		case m.Dashboard != nil:
			d := m.Dashboard
			for _, st := range d.Scenarios {
				if st.Status != scenario.StatusRunning {
					finished(st.ID, st.Status)
				}
			}
			s := d.Summary
			if d.Status == monitor.RunRunning {
				fmt.Fprintf(stdout, "run %s (%s): %d seen, %d running\n",
					d.RunID, d.Status, s.Total, s.Running)
				return true
			}
			fmt.Fprintf(stdout,
				"run %s %s: %d passed, %d failed, %d skipped, "+
					"%d xfail, %d xpass, %d errors\n",
				d.RunID, d.Status, s.Passed, s.Failed, s.Skipped,
				s.XFail, s.XPass, s.Errors)
			return false
		case m.Event != nil && m.Event.IsFinal():
			finished(m.Event.ScenarioID, m.Event.Status)
		}
		return true
	})
	if err != nil {
		fmt.Fprintf(stderr, "watch: %v\n", err)
		return 1
	}
	return 0
}

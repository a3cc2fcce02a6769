package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/creditrisk/config"
	"github.com/rustyeddy/creditrisk/internal/logger"
	"github.com/rustyeddy/creditrisk/journal"
	"github.com/rustyeddy/creditrisk/metrics"
	"github.com/rustyeddy/creditrisk/risk"
)

const version = "0.3.0"

// RootConfig holds the persistent flags.
type RootConfig struct {
	ConfigPath    string
	DBPath        string
	LogLevel      string
	MetricsAddr   string
	MetricsLinger time.Duration
	NoJournal     bool
	Strict        bool
}

// app is the state shared by subcommands once the root pre-run has loaded
// configuration.
type app struct {
	rc        *RootConfig
	cfg       *config.Config
	log       *zap.Logger
	collector *metrics.Collector
	server    *http.Server
}

func NewRootCmd() *cobra.Command {
	a := &app{rc: &RootConfig{}}

	cmd := &cobra.Command{
		Use:   "creditrisk",
		Short: "Credit risk: expected loss, RWA, stress tests and Basel III capital",
		Long: `creditrisk evaluates a scored loan portfolio.

It provides tools for:
  - Expected loss and risk-weighted assets per loan and per portfolio
  - PD stress scenarios and normal-vs-stressed comparison
  - Basel III minimum capital and adequacy checks
  - A journal of every run in CSV or SQLite`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&a.rc.ConfigPath, "config", "", "Path to config file (optional)")
	pf.StringVar(&a.rc.DBPath, "db", "", "SQLite journal database (overrides config)")
	pf.StringVar(&a.rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")
	pf.StringVar(&a.rc.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9102")
	pf.DurationVar(&a.rc.MetricsLinger, "metrics-linger", 0, "Keep serving metrics this long after the command finishes")
	pf.BoolVar(&a.rc.NoJournal, "no-journal", false, "Do not record runs")
	pf.BoolVar(&a.rc.Strict, "strict", false, "Fail on the first invalid loan instead of excluding it")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return a.teardown()
	}

	cmd.AddCommand(
		newAssessCmd(a),
		newStressCmd(a),
		newCompareCmd(a),
		newCapitalCmd(a),
		newConfigCmd(),
		newJournalCmd(a),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "creditrisk version %s\n", version)
		},
	})

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.rc.ConfigPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(a.rc.ConfigPath); err != nil {
			return err
		}
	}

	if a.rc.DBPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = a.rc.DBPath
	}
	if a.rc.NoJournal {
		cfg.Journal.Type = "none"
	}
	if a.rc.LogLevel != "" {
		cfg.Log.Level = a.rc.LogLevel
	}
	if a.rc.MetricsAddr != "" {
		cfg.Metrics.Addr = a.rc.MetricsAddr
	}
	if a.rc.Strict {
		cfg.Strict = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.NewWithWriter(cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	a.cfg = cfg
	a.log = log.With(zap.String("cmd", cmd.Name()))
	a.collector = metrics.NewCollector(a.log)
	if cfg.Metrics.Addr != "" {
		a.server = a.collector.StartServer(cfg.Metrics.Addr)
	}
	return nil
}

func (a *app) teardown() error {
	if a.server != nil {
		if a.rc.MetricsLinger > 0 {
			a.log.Info("holding metrics server", zap.Duration("linger", a.rc.MetricsLinger))
			time.Sleep(a.rc.MetricsLinger)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.server.Shutdown(ctx); err != nil {
			a.log.Warn("metrics server shutdown", zap.Error(err))
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return nil
}

// engine returns a risk engine built from the loaded config, reporting to
// the metrics collector.
func (a *app) engine() *risk.Engine {
	e := a.cfg.Engine(a.log)
	e.Observer = a.collector
	return e
}

// openJournal returns nil when journaling is disabled.
func (a *app) openJournal() (journal.Journal, error) {
	jc := a.cfg.Journal
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.RunsFile, jc.LoansFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return nil, nil
	}
}

// record journals each result and logs the run IDs.
func (a *app) record(source string, results ...risk.Result) error {
	j, err := a.openJournal()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j == nil {
		return nil
	}
	defer j.Close()

	for _, r := range results {
		run, err := journal.Record(j, source, r)
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		a.log.Info("recorded run",
			zap.String("run_id", run.RunID),
			zap.String("scenario", run.Scenario),
			zap.String("journal", a.cfg.Journal.Type))
	}
	return nil
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

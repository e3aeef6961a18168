package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/olsonco/calckit/internal/calculation"
	"github.com/olsonco/calckit/internal/calculators"
	"github.com/olsonco/calckit/internal/config"
	"github.com/olsonco/calckit/internal/logging"
	"github.com/olsonco/calckit/internal/taxrules"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the state built once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	rulesDir   string

	settings *config.Settings
	logger   *zap.Logger
	registry *calculators.Registry
}

// setup loads settings, builds the logger and assembles the registry over
// the embedded rule tables plus any rules directory.
func (a *app) setup() error {
	settings, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.rulesDir != "" {
		settings.Tax.RulesDir = a.rulesDir
	}

	logger, err := logging.New(logging.Config{
		Level:      settings.Logging.Level,
		Format:     settings.Logging.Format,
		OutputFile: settings.Logging.OutputFile,
	}, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	table := taxrules.Embedded()
	if settings.Tax.RulesDir != "" {
		table, err = table.WithDir(settings.Tax.RulesDir)
		if err != nil {
			return fmt.Errorf("failed to load tax rules: %w", err)
		}
		logger.Debug("loaded tax rules", zap.String("dir", settings.Tax.RulesDir), zap.Ints("years", table.Years()))
	}

	calcLogger := logging.NewCalcLogger(logger)
	engine := calculation.NewTaxEngine(table)
	engine.SetLogger(calcLogger)
	registry := calculators.NewRegistry(engine)
	registry.SetLogger(calcLogger)

	a.settings = settings
	a.logger = logger
	a.registry = registry
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "calckit",
		Short: "Canadian personal and small-business finance calculators",
		Long: "calckit runs sixteen planning calculators, including a federal + BC income tax estimator, " +
			"from the command line, a terminal form or a JSON HTTP API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./calckit.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.rulesDir, "rules-dir", "", "directory of additional tax rule files")

	root.AddCommand(
		listCmd(a),
		fieldsCmd(a),
		runCmd(a),
		shareCmd(a),
		compareCmd(a),
		taxCmd(a),
		yearsCmd(a),
		serveCmd(a),
		tuiCmd(a),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// version needs no config or logger
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "calckit %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

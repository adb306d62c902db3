package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielpatrickdp/mandeval/internal/config"
	"github.com/danielpatrickdp/mandeval/internal/logging"
	"github.com/danielpatrickdp/mandeval/internal/params"
	"github.com/danielpatrickdp/mandeval/internal/scenario"
	"github.com/danielpatrickdp/mandeval/internal/support"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// #region app
// app carries state shared by every subcommand for one invocation.
type app struct {
	configPath string
	dbPath     string
	seed       uint32
	draws      int
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = a.dbPath
	}
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("draws") {
		cfg.Draws = a.draws
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) openStore() (*scenario.Store, error) {
	if dir := filepath.Dir(a.cfg.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	return scenario.NewStore(a.cfg.DBPath)
}

func (a *app) table() (*params.Table, error) {
	if a.cfg.CoefficientsPath == "" {
		return params.Default(), nil
	}
	return params.LoadYAML(a.cfg.CoefficientsPath)
}

func (a *app) simulator() (*support.Simulator, error) {
	table, err := a.table()
	if err != nil {
		return nil, err
	}
	a.logger.Debug("building panel", zap.Uint32("seed", a.cfg.Seed), zap.Int("draws", a.cfg.Draws))
	return support.NewSimulator(table, nil, a.cfg.Seed, a.cfg.Draws), nil
}
// #endregion app

// #region root
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mandeval",
		Short: "Estimate public support for vaccine mandate designs",
		Long: `mandeval predicts the share of the public supporting a vaccine mandate
design, using a mixed logit model averaged over a fixed, seeded panel of
random draws, and pairs it with a simple cost–benefit readout.

Every estimate made with the same seed and draw count is reproducible.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "mandeval.yaml", "YAML config file")
	pf.StringVar(&a.dbPath, "db", "", "SQLite database path (overrides config)")
	pf.Uint32Var(&a.seed, "seed", 0, "panel seed (overrides config)")
	pf.IntVar(&a.draws, "draws", 0, "panel size (overrides config)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newEstimateCmd(a),
		newSweepCmd(a),
		newServeCmd(a),
		newScenariosCmd(a),
		newPanelCmd(a),
		newSettingsCmd(a),
	)
	return root
}
// #endregion root

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielpatrickdp/mandeval/internal/sweep"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// #region sweep-cmd
func newSweepCmd(a *app) *cobra.Command {
	var lives []float64
	var workers, top int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Rank every mandate design by predicted support",
		Long: `Evaluates every country, severity, scope, exemption and coverage level at
each --lives value on one shared panel and prints the designs ranked by support.

Example:
  mandeval sweep --lives 10,25,50 --top 15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sim, err := a.simulator()
			if err != nil {
				return err
			}
			cfgs := sweep.FullGrid(sim.Table(), lives).Configs()

			start := time.Now()
			results, err := sweep.Run(ctx, sim, cfgs, workers)
			if err != nil {
				return err
			}
			a.logger.Info("sweep complete",
				zap.Int("configs", len(cfgs)),
				zap.Int("workers", workers),
				zap.Duration("elapsed", time.Since(start)))

			for _, r := range results {
				if r.Err != nil {
					a.logger.Warn("sweep config failed", zap.String("config", r.Config.Label()), zap.Error(r.Err))
				}
			}

			ranked := sweep.Ranked(results)
			if top > 0 && top < len(ranked) {
				ranked = ranked[:top]
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%4s  %-8s  %-6s  %-8s  %-10s  %4s  %6s  %s\n",
				"Rank", "Country", "Sev", "Scope", "Exempt", "Cov", "Lives", "Support")
			for i, r := range ranked {
				c := r.Config
				fmt.Fprintf(w, "%4d  %-8s  %-6s  %-8s  %-10s  %3.0f%%  %6.1f  %6.1f%%\n",
					i+1, c.Country, c.Severity, c.Scope, c.Exemptions, float64(c.Coverage)*100, c.LivesPer100k, r.Support*100)
			}
			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&lives, "lives", []float64{10, 25, 50}, "lives saved per 100k to evaluate")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent workers (default GOMAXPROCS)")
	cmd.Flags().IntVar(&top, "top", 20, "show only the N best designs (0 = all)")
	return cmd
}
// #endregion sweep-cmd

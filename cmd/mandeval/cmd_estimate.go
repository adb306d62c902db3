package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/danielpatrickdp/mandeval/internal/benefit"
	"github.com/danielpatrickdp/mandeval/internal/logging"
	"github.com/danielpatrickdp/mandeval/internal/scenario"
	"github.com/danielpatrickdp/mandeval/internal/support"
	"github.com/danielpatrickdp/mandeval/internal/validate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// #region estimate-cmd
type estimateOutput struct {
	Scenario    scenario.Scenario          `json:"scenario"`
	MRS         []support.MRSRow           `json:"mrs"`
	PerCapita   benefit.PerCapitaCost      `json:"per_capita"`
	Sensitivity *benefit.SensitivityResult `json:"sensitivity,omitempty"`
	VSLMissing  bool                       `json:"vsl_missing,omitempty"`
}

func newEstimateCmd(a *app) *cobra.Command {
	var design designFlags
	var econ economicFlags
	var save, jsonOut bool
	var name, notes string

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate support (and cost–benefit) for one mandate design",
		Long: `Estimates the share of the public supporting a mandate design.

With --population the cost–benefit readout is added. Value per life falls back
to the saved settings and cost falls back to the sum of the itemised costs.

Example:
  mandeval estimate --country AU --severity mild --scope all --coverage 70 --lives 25
  mandeval estimate --population 25000000 --cost-admin 4e6 --cost-it 1e6 --save --name "AU baseline"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := design.config()
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sim, err := a.simulator()
			if err != nil {
				return err
			}
			settings, err := store.LoadSettingsOr(a.cfg.Settings)
			if err != nil {
				return err
			}

			harness := validate.NewHarness(validate.ForTable(sim.Table()))
			start := time.Now()
			sc, err := evaluate(harness, sim, cfg, econ.inputs(), econ.costs, settings)
			if err == nil && save {
				sc.Name, sc.Notes = name, notes
				sc, err = store.Save(sc)
			}
			elapsed := time.Since(start)

			entry := logging.NewEstimateEntry("cli", cfg, sim.Seed(), sim.DrawCount(), sim.Fingerprint(), sc.Support, err, elapsed)
			entry.ScenarioID = sc.ID
			if lerr := logging.LogEstimate(store.DB(), entry); lerr != nil {
				a.logger.Warn("estimate log write failed", zap.Error(lerr))
			}
			if err != nil {
				return err
			}
			a.logger.Debug("estimate",
				zap.String("config", cfg.Label()),
				zap.Float64("support", sc.Support),
				zap.Duration("elapsed", elapsed))

			out := estimateOutput{
				Scenario:   sc,
				MRS:        mrsFor(sim, cfg),
				PerCapita:  benefit.PerCapita(sc.Result.Cost, sc.Inputs.Population),
				VSLMissing: sc.VSLMissing(),
			}
			if b := econ.bounds(cmd); b != nil {
				sens := benefit.Sensitivity(sc.Inputs, *b)
				out.Sensitivity = &sens
			}

			w := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			printEstimate(w, out)
			return nil
		},
	}

	design.bind(cmd)
	econ.bind(cmd)
	cmd.Flags().BoolVar(&save, "save", false, "save the result as a scenario")
	cmd.Flags().StringVar(&name, "name", "", "scenario name (with --save)")
	cmd.Flags().StringVar(&notes, "notes", "", "scenario notes (with --save)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

// evaluate validates the request before estimating.
func evaluate(h *validate.Harness, sim *support.Simulator, cfg support.Config, in benefit.Inputs, costs benefit.CostBreakdown, st benefit.Settings) (scenario.Scenario, error) {
	if err := h.Mandate(cfg).Err(); err != nil {
		return scenario.Scenario{}, err
	}
	if err := h.Costs(in).Err(); err != nil {
		return scenario.Scenario{}, err
	}
	return scenario.Evaluate(sim, cfg, in, costs, st)
}

func mrsFor(sim *support.Simulator, cfg support.Config) []support.MRSRow {
	rows, err := sim.MRS(cfg)
	if err != nil {
		return nil
	}
	return rows
}
// #endregion estimate-cmd

// #region estimate-output
func printEstimate(w io.Writer, out estimateOutput) {
	sc := out.Scenario
	fmt.Fprintf(w, "%s\n", sc.Config.Label())
	fmt.Fprintf(w, "  Design:   %s / %s / coverage %.0f%%\n", sc.Config.Scope, sc.Config.Exemptions, float64(sc.Config.Coverage)*100)
	fmt.Fprintf(w, "  Support:  %.1f%%\n", sc.Support*100)
	fmt.Fprintf(w, "  Panel:    seed %d, %d draws\n", sc.Seed, sc.Draws)
	if sc.ID != "" {
		fmt.Fprintf(w, "  Saved:    %s\n", sc.ID)
	}

	if len(out.MRS) > 0 {
		fmt.Fprintf(w, "\nLives per 100k offsetting each attribute change:\n")
		for _, m := range out.MRS {
			fmt.Fprintf(w, "  %-12s %-12s -> %-12s %8.2f\n", m.Attribute, m.From, m.To, m.Value)
		}
	}

	if sc.Inputs.Population <= 0 {
		return
	}
	cur := sc.Settings.CurrencyLabel
	fmt.Fprintf(w, "\nCost–benefit (%s, %s):\n", cur, sc.Settings.Horizon)
	fmt.Fprintf(w, "  Lives saved:  %.1f\n", sc.Result.LivesTotal)
	fmt.Fprintf(w, "  Benefit:      %.0f\n", sc.Result.Benefit)
	fmt.Fprintf(w, "  Cost:         %.0f\n", sc.Result.Cost)
	fmt.Fprintf(w, "  Net benefit:  %.0f\n", sc.Result.NetBenefit)
	fmt.Fprintf(w, "  BCR:          %s\n", formatBCR(sc.Result.BCR))
	if out.PerCapita.Per100k != nil {
		fmt.Fprintf(w, "  Cost/100k:    %.0f\n", *out.PerCapita.Per100k)
	}
	fmt.Fprintf(w, "  Assessment:   %s\n", sc.Assessment)
	if sc.VSLMissing() {
		fmt.Fprintf(w, "  Value per life missing: pass --value-per-life or run `mandeval settings set`\n")
	}

	if s := out.Sensitivity; s != nil {
		fmt.Fprintf(w, "\nSensitivity (BCR):  conservative %s  central %s  optimistic %s\n",
			formatBCR(s.Conservative.BCR), formatBCR(s.Central.BCR), formatBCR(s.Optimistic.BCR))
	}
}
// #endregion estimate-output

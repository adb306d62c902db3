package main

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/mandeval/internal/benefit"
	"github.com/danielpatrickdp/mandeval/internal/params"
	"github.com/danielpatrickdp/mandeval/internal/support"
	"github.com/spf13/cobra"
)

// #region design-flags
// designFlags are the mandate attributes shared by estimate and evaluate-style commands.
type designFlags struct {
	country    string
	severity   string
	scope      string
	exemptions string
	coverage   float64
	lives      float64
}

func (d *designFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&d.country, "country", "AU", "AU, IT or FR")
	f.StringVar(&d.severity, "severity", "mild", "mild or severe")
	f.StringVar(&d.scope, "scope", "highrisk", "highrisk or all")
	f.StringVar(&d.exemptions, "exemptions", "medical", "medical, medrel or medrelpers")
	f.Float64Var(&d.coverage, "coverage", 0.5, "coverage threshold: 0.5, 0.7, 0.9 (or 50, 70, 90)")
	f.Float64Var(&d.lives, "lives", 25, "lives saved per 100,000")
}

func (d *designFlags) config() (support.Config, error) {
	cov, err := support.ParseCoverage(d.coverage)
	if err != nil {
		return support.Config{}, err
	}
	return support.Config{
		Country:      params.Country(strings.ToUpper(d.country)),
		Severity:     params.Severity(strings.ToLower(d.severity)),
		Scope:        support.Scope(strings.ToLower(d.scope)),
		Exemptions:   support.Exemptions(strings.ToLower(d.exemptions)),
		Coverage:     cov,
		LivesPer100k: d.lives,
	}, nil
}
// #endregion design-flags

// #region economic-flags
// economicFlags are the cost–benefit inputs and optional sensitivity bounds.
type economicFlags struct {
	population   float64
	valuePerLife float64
	cost         float64
	costs        benefit.CostBreakdown

	livesLow, livesHigh float64
	vplLow, vplHigh     float64
	costLow, costHigh   float64
}

func (e *economicFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&e.population, "population", 0, "population covered")
	f.Float64Var(&e.valuePerLife, "value-per-life", 0, "monetary value per life saved (default: saved settings)")
	f.Float64Var(&e.cost, "cost", 0, "total programme cost (default: sum of itemised costs)")
	f.Float64Var(&e.costs.Admin, "cost-admin", 0, "itemised cost: administration")
	f.Float64Var(&e.costs.Communication, "cost-communication", 0, "itemised cost: communication")
	f.Float64Var(&e.costs.Enforcement, "cost-enforcement", 0, "itemised cost: enforcement")
	f.Float64Var(&e.costs.IT, "cost-it", 0, "itemised cost: IT")
	f.Float64Var(&e.costs.Support, "cost-support", 0, "itemised cost: support services")
	f.Float64Var(&e.livesLow, "lives-low", 0, "sensitivity: low lives per 100k")
	f.Float64Var(&e.livesHigh, "lives-high", 0, "sensitivity: high lives per 100k")
	f.Float64Var(&e.vplLow, "value-per-life-low", 0, "sensitivity: low value per life")
	f.Float64Var(&e.vplHigh, "value-per-life-high", 0, "sensitivity: high value per life")
	f.Float64Var(&e.costLow, "cost-low", 0, "sensitivity: low cost")
	f.Float64Var(&e.costHigh, "cost-high", 0, "sensitivity: high cost")
}

func (e *economicFlags) inputs() benefit.Inputs {
	return benefit.Inputs{Population: e.population, ValuePerLife: e.valuePerLife, Cost: e.cost}
}

// bounds returns nil when no sensitivity flag was given.
func (e *economicFlags) bounds(cmd *cobra.Command) *benefit.Bounds {
	f := cmd.Flags()
	pick := func(name string, v float64) *float64 {
		if !f.Changed(name) {
			return nil
		}
		return &v
	}
	b := benefit.Bounds{
		LivesPer100k: benefit.Range{Low: pick("lives-low", e.livesLow), High: pick("lives-high", e.livesHigh)},
		ValuePerLife: benefit.Range{Low: pick("value-per-life-low", e.vplLow), High: pick("value-per-life-high", e.vplHigh)},
		Cost:         benefit.Range{Low: pick("cost-low", e.costLow), High: pick("cost-high", e.costHigh)},
	}
	if b == (benefit.Bounds{}) {
		return nil
	}
	return &b
}
// #endregion economic-flags

func formatBCR(bcr *float64) string {
	if bcr == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *bcr)
}

package validate

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/mandeval/internal/benefit"
	"github.com/danielpatrickdp/mandeval/internal/params"
	"github.com/danielpatrickdp/mandeval/internal/support"
)

// #region harness
// Harness checks mandate configurations and cost inputs before they reach
// the estimator, which assumes well-formed categorical values.
type Harness struct {
	config Config
}

// NewHarness creates a harness with the given limits.
func NewHarness(config Config) *Harness {
	return &Harness{config: config}
}

// Mandate validates the categorical fields and livesPer100k of cfg.
func (h *Harness) Mandate(cfg support.Config) Result {
	var checks []Check

	countries, severities := h.known()
	checks = append(checks, oneOf("country", string(cfg.Country), countries...))
	checks = append(checks, oneOf("severity", string(cfg.Severity), severities...))
	checks = append(checks, oneOf("scope", string(cfg.Scope),
		string(support.ScopeHighRisk), string(support.ScopeAll)))
	checks = append(checks, oneOf("exemptions", string(cfg.Exemptions),
		string(support.ExemptMedical), string(support.ExemptMedRel), string(support.ExemptMedRelPersonal)))

	covOK := cfg.Coverage.Is(support.Coverage50) || cfg.Coverage.Is(support.Coverage70) || cfg.Coverage.Is(support.Coverage90)
	checks = append(checks, Check{
		Name:   "coverage",
		Value:  fmt.Sprintf("%g", float64(cfg.Coverage)),
		Pass:   covOK,
		Detail: detailIf(!covOK, "must be 0.5, 0.7 or 0.9"),
	})

	checks = append(checks, bounded("lives_per_100k", cfg.LivesPer100k, h.config.MaxLivesPer100k))

	return summarize(checks)
}

// Costs validates the monetary inputs of a cost–benefit request.
func (h *Harness) Costs(in benefit.Inputs) Result {
	checks := []Check{
		bounded("population", in.Population, h.config.MaxPopulation),
		bounded("value_per_life", in.ValuePerLife, math.Inf(1)),
		bounded("cost", in.Cost, math.Inf(1)),
	}
	return summarize(checks)
}
// #endregion harness

// #region helpers
// known lists the published countries and severities followed by any extra
// ones named in the configured table keys.
func (h *Harness) known() (countries, severities []string) {
	countries = []string{string(params.Australia), string(params.Italy), string(params.France)}
	severities = []string{string(params.Mild), string(params.Severe)}
	for _, k := range h.config.Keys {
		countries = appendNew(countries, string(k.Country))
		severities = appendNew(severities, string(k.Severity))
	}
	return countries, severities
}

func appendNew(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}

func oneOf(name, value string, allowed ...string) Check {
	for _, a := range allowed {
		if value == a {
			return Check{Name: name, Value: value, Pass: true}
		}
	}
	return Check{Name: name, Value: value, Pass: false, Detail: fmt.Sprintf("must be one of %v", allowed)}
}

// bounded requires a finite value in [0, max].
func bounded(name string, v, max float64) Check {
	c := Check{Name: name, Value: fmt.Sprintf("%g", v), Pass: true}
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		c.Pass, c.Detail = false, "must be finite"
	case v < 0:
		c.Pass, c.Detail = false, "must not be negative"
	case v > max:
		c.Pass, c.Detail = false, fmt.Sprintf("must not exceed %g", max)
	}
	return c
}

func detailIf(cond bool, msg string) string {
	if cond {
		return msg
	}
	return ""
}

func summarize(checks []Check) Result {
	var failures []string
	for _, c := range checks {
		if !c.Pass {
			failures = append(failures, fmt.Sprintf("%s %q %s", c.Name, c.Value, c.Detail))
		}
	}
	if len(failures) == 0 {
		return Result{Passed: true, Checks: checks, Reason: "all checks passed"}
	}
	reason := fmt.Sprintf("validation failed: %s", failures[0])
	if len(failures) > 1 {
		reason = fmt.Sprintf("validation failed: %d checks: %s", len(failures), joinFailures(failures))
	}
	return Result{Passed: false, Checks: checks, Reason: reason}
}
// #endregion helpers

package support

import (
	"math"

	"github.com/danielpatrickdp/mandeval/internal/draws"
	"github.com/danielpatrickdp/mandeval/internal/model"
	"github.com/danielpatrickdp/mandeval/internal/params"
)

// #region estimate
// EstimateSupport returns the simulated population share preferring the
// mandate over no mandate: the binary-logit probability averaged over every
// draw in panel. It fails with *params.MissingParametersError when the table
// has no entry for the configuration and *draws.InvalidPanelError when the
// panel is empty or malformed.
//
// The mandate side uses the Policy-A intercept plus the shared attribute
// terms; the three-alternative study design is collapsed to mandate vs opt-out.
func EstimateSupport(cfg Config, table *params.Table, panel draws.Panel) (float64, error) {
	entry, err := table.Lookup(cfg.Country, cfg.Severity)
	if err != nil {
		return 0, err
	}
	if err := panel.Validate(); err != nil {
		return 0, err
	}

	terms := activeTerms(cfg)
	var sum float64
	for _, z := range panel {
		sum += drawProbability(entry, z, terms, cfg.LivesPer100k)
	}
	return sum / float64(len(panel)), nil
}
// #endregion estimate

// #region utility
// activeTerms lists the attribute coefficients switched on by cfg. Reference
// levels (highrisk, medical, 0.5) contribute nothing.
func activeTerms(cfg Config) []model.Coefficient {
	terms := make([]model.Coefficient, 0, 3)
	if cfg.Scope == ScopeAll {
		terms = append(terms, model.ScopeAll)
	}
	switch cfg.Exemptions {
	case ExemptMedRel:
		terms = append(terms, model.ExMedRel)
	case ExemptMedRelPersonal:
		terms = append(terms, model.ExMedRelPers)
	}
	switch {
	case cfg.Coverage.Is(Coverage70):
		terms = append(terms, model.Cov70)
	case cfg.Coverage.Is(Coverage90):
		terms = append(terms, model.Cov90)
	}
	return terms
}

// individual draws one person's coefficient for c: mean + sd·z.
func individual(entry params.Entry, z model.Vector, c model.Coefficient) float64 {
	return entry.Mean[c] + entry.SD[c]*z[c]
}

// drawProbability is the mandate choice probability for a single draw.
func drawProbability(entry params.Entry, z model.Vector, terms []model.Coefficient, livesPer100k float64) float64 {
	uMandate := individual(entry, z, model.AscPolicyA)
	for _, c := range terms {
		uMandate += individual(entry, z, c)
	}
	uMandate += individual(entry, z, model.Lives) * livesPer100k

	uOptOut := individual(entry, z, model.AscOptOut)
	return logistic(uMandate - uOptOut)
}

// logistic is 1/(1+e^-x), evaluated without forming e^x for large x.
func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
// #endregion utility

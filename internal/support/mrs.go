package support

import (
	"github.com/danielpatrickdp/mandeval/internal/model"
	"github.com/danielpatrickdp/mandeval/internal/params"
)

// #region mrs
// MRS returns the lives-saved equivalents of every non-reference attribute
// level in cfg, computed from the mean coefficients as -mean[attr]/mean[lives].
// A positive value means the level costs that many lives per 100k in
// support. The result is empty when the lives mean is zero.
func MRS(entry params.Entry, cfg Config) []MRSRow {
	lives := entry.Mean[model.Lives]
	if lives == 0 {
		return nil
	}

	var rows []MRSRow
	add := func(attr, from, to string, c model.Coefficient) {
		rows = append(rows, MRSRow{Attribute: attr, From: from, To: to, Value: -entry.Mean[c] / lives})
	}

	if cfg.Scope == ScopeAll {
		add("scope", string(ScopeHighRisk), string(ScopeAll), model.ScopeAll)
	}
	switch cfg.Exemptions {
	case ExemptMedRel:
		add("exemptions", string(ExemptMedical), string(ExemptMedRel), model.ExMedRel)
	case ExemptMedRelPersonal:
		add("exemptions", string(ExemptMedical), string(ExemptMedRelPersonal), model.ExMedRelPers)
	}
	switch {
	case cfg.Coverage.Is(Coverage70):
		add("coverage", "0.5", "0.7", model.Cov70)
	case cfg.Coverage.Is(Coverage90):
		add("coverage", "0.5", "0.9", model.Cov90)
	}
	return rows
}
// #endregion mrs

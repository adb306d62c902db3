package support

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/mandeval/internal/params"
)

// #region scope
// Scope is who the mandate applies to.
type Scope string

const (
	ScopeHighRisk Scope = "highrisk" // reference level
	ScopeAll      Scope = "all"
)
// #endregion scope

// #region exemptions
// Exemptions is the set of accepted exemption grounds.
type Exemptions string

const (
	ExemptMedical        Exemptions = "medical" // reference level
	ExemptMedRel         Exemptions = "medrel"
	ExemptMedRelPersonal Exemptions = "medrelpers"
)
// #endregion exemptions

// #region coverage
// Coverage is the vaccination share at which the mandate is lifted.
type Coverage float64

const (
	Coverage50 Coverage = 0.5 // reference level
	Coverage70 Coverage = 0.7
	Coverage90 Coverage = 0.9
)

const coverageTolerance = 1e-6

// Is reports whether c matches level within the form-input tolerance.
func (c Coverage) Is(level Coverage) bool {
	return math.Abs(float64(c-level)) < coverageTolerance
}

// ParseCoverage accepts 0.5/0.7/0.9 or the percentage forms 50/70/90.
func ParseCoverage(v float64) (Coverage, error) {
	if v > 1 {
		v /= 100
	}
	for _, level := range []Coverage{Coverage50, Coverage70, Coverage90} {
		if Coverage(v).Is(level) {
			return level, nil
		}
	}
	return 0, fmt.Errorf("coverage %v is not one of 0.5, 0.7, 0.9", v)
}
// #endregion coverage

// #region config
// Config is one mandate design. Values are expected to be validated upstream.
type Config struct {
	Country      params.Country  `json:"country" yaml:"country"`
	Severity     params.Severity `json:"severity" yaml:"severity"`
	Scope        Scope           `json:"scope" yaml:"scope"`
	Exemptions   Exemptions      `json:"exemptions" yaml:"exemptions"`
	Coverage     Coverage        `json:"coverage" yaml:"coverage"`
	LivesPer100k float64         `json:"lives_per_100k" yaml:"lives_per_100k"`
}

// Label returns a short human-readable description, e.g. "Australia – mild – 25 lives/100k".
func (c Config) Label() string {
	return fmt.Sprintf("%s – %s – %.0f lives/100k", c.Country.Label(), c.Severity, c.LivesPer100k)
}
// #endregion config

// #region mrs-row
// MRSRow expresses one non-reference attribute level as the number of lives
// saved per 100k that would offset it in utility.
type MRSRow struct {
	Attribute string  `json:"attribute"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Value     float64 `json:"value"`
}
// #endregion mrs-row

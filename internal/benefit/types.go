package benefit

// #region inputs
// Inputs are the central values for one cost–benefit calculation.
// Any field may be zero.
type Inputs struct {
	Population   float64 `json:"population"`
	LivesPer100k float64 `json:"lives_per_100k"`
	ValuePerLife float64 `json:"value_per_life"`
	Cost         float64 `json:"cost"`
}
// #endregion inputs

// #region result
// Result is the monetised readout. BCR is nil when cost is not positive.
type Result struct {
	LivesTotal float64  `json:"lives_total"`
	Benefit    float64  `json:"benefit"`
	Cost       float64  `json:"cost"`
	NetBenefit float64  `json:"net_benefit"`
	BCR        *float64 `json:"bcr,omitempty"`
}
// #endregion result

// #region bounds
// Range is an optional low/high pair. A nil end falls back to the central value.
type Range struct {
	Low  *float64 `json:"low,omitempty" yaml:"low,omitempty"`
	High *float64 `json:"high,omitempty" yaml:"high,omitempty"`
}

// Bounds carries sensitivity ranges for the uncertain inputs.
type Bounds struct {
	LivesPer100k Range `json:"lives_per_100k" yaml:"lives_per_100k"`
	ValuePerLife Range `json:"value_per_life" yaml:"value_per_life"`
	Cost         Range `json:"cost" yaml:"cost"`
}

// SensitivityResult pairs the central readout with its conservative
// (low benefit, high cost) and optimistic (high benefit, low cost) bounds.
type SensitivityResult struct {
	Central      Result `json:"central"`
	Conservative Result `json:"conservative"`
	Optimistic   Result `json:"optimistic"`
}
// #endregion bounds

// #region cost-breakdown
// CostBreakdown is the implementation cost split by line item.
type CostBreakdown struct {
	Admin         float64 `json:"admin" yaml:"admin"`
	Communication float64 `json:"communication" yaml:"communication"`
	Enforcement   float64 `json:"enforcement" yaml:"enforcement"`
	IT            float64 `json:"it" yaml:"it"`
	Support       float64 `json:"support" yaml:"support"`
}

// PerCapitaCost expresses a total cost per 100k and per 1M people.
type PerCapitaCost struct {
	Per100k *float64 `json:"per_100k,omitempty"`
	Per1M   *float64 `json:"per_1m,omitempty"`
}
// #endregion cost-breakdown

// #region assessment
// Assessment classifies a design by cost-effectiveness and predicted support.
type Assessment string

const (
	StrongCandidate              Assessment = "strong_candidate"
	CostEffectiveModerateSupport Assessment = "cost_effective_moderate_support"
	SupportedNotCostEffective    Assessment = "supported_not_cost_effective"
	Weak                         Assessment = "weak"
	Incomplete                   Assessment = "incomplete"
)

// HighSupportThreshold is the support share treated as high.
const HighSupportThreshold = 0.70
// #endregion assessment

// #region settings
// Settings are the user's valuation preferences, snapshotted with each saved scenario.
type Settings struct {
	Horizon       string  `json:"horizon" yaml:"horizon"`
	CurrencyLabel string  `json:"currency_label" yaml:"currency_label"`
	VSLScheme     string  `json:"vsl_scheme" yaml:"vsl_scheme"` // "vsl" | "vsly"
	ValuePerLife  float64 `json:"value_per_life" yaml:"value_per_life"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() Settings {
	return Settings{
		Horizon:       "1 year",
		CurrencyLabel: "local currency units",
		VSLScheme:     "vsl",
	}
}
// #endregion settings

package benefit

import "math"

// #region compute
// Compute derives lives saved, monetised benefit, net benefit and BCR.
func Compute(in Inputs) Result {
	lives := in.LivesPer100k / 100000 * in.Population
	benefit := lives * in.ValuePerLife
	r := Result{
		LivesTotal: lives,
		Benefit:    benefit,
		Cost:       in.Cost,
		NetBenefit: benefit - in.Cost,
	}
	if in.Cost > 0 {
		bcr := benefit / in.Cost
		r.BCR = &bcr
	}
	return r
}
// #endregion compute

// #region sensitivity
// Sensitivity recomputes the readout at the bounds. The conservative case
// takes low lives and value-per-life with high cost; the optimistic case the
// reverse. Missing bounds collapse to the central value.
func Sensitivity(in Inputs, b Bounds) SensitivityResult {
	conservative := Inputs{
		Population:   in.Population,
		LivesPer100k: b.LivesPer100k.low(in.LivesPer100k),
		ValuePerLife: b.ValuePerLife.low(in.ValuePerLife),
		Cost:         b.Cost.high(in.Cost),
	}
	optimistic := Inputs{
		Population:   in.Population,
		LivesPer100k: b.LivesPer100k.high(in.LivesPer100k),
		ValuePerLife: b.ValuePerLife.high(in.ValuePerLife),
		Cost:         b.Cost.low(in.Cost),
	}
	return SensitivityResult{
		Central:      Compute(in),
		Conservative: Compute(conservative),
		Optimistic:   Compute(optimistic),
	}
}

func (r Range) low(central float64) float64 {
	if r.Low == nil {
		return central
	}
	return *r.Low
}

func (r Range) high(central float64) float64 {
	if r.High == nil {
		return central
	}
	return *r.High
}
// #endregion sensitivity

// #region costs
// Total sums the line items.
func (c CostBreakdown) Total() float64 {
	return c.Admin + c.Communication + c.Enforcement + c.IT + c.Support
}

// PerCapita spreads total cost over population. Both figures are nil when
// population is not positive.
func PerCapita(total, population float64) PerCapitaCost {
	if population <= 0 {
		return PerCapitaCost{}
	}
	perPerson := total / population
	per100k := perPerson * 1e5
	per1m := perPerson * 1e6
	return PerCapitaCost{Per100k: &per100k, Per1M: &per1m}
}
// #endregion costs

// #region assess
// Assess classifies a design. Support is a probability in (0,1); NaN or a nil
// BCR yields Incomplete.
func Assess(support float64, bcr *float64) Assessment {
	if bcr == nil || math.IsNaN(support) {
		return Incomplete
	}
	high := support >= HighSupportThreshold
	switch {
	case *bcr >= 1 && high:
		return StrongCandidate
	case *bcr >= 1:
		return CostEffectiveModerateSupport
	case high:
		return SupportedNotCostEffective
	default:
		return Weak
	}
}
// #endregion assess

package replay

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/mandeval/internal/draws"
	"github.com/danielpatrickdp/mandeval/internal/params"
	"github.com/danielpatrickdp/mandeval/internal/rng"
	"github.com/danielpatrickdp/mandeval/internal/support"
)

// #region types

// DefaultTolerance absorbs last-ulp differences in math.Log/Cos/Exp across platforms.
const DefaultTolerance = 1e-12

// ReplayConfig identifies the panel a replay runs on and how close results must be.
type ReplayConfig struct {
	Seed      uint32
	Draws     int
	Tolerance float64
}

// DefaultReplayConfig returns the reference seed and draw count.
func DefaultReplayConfig() ReplayConfig {
	return ReplayConfig{
		Seed:      rng.DefaultSeed,
		Draws:     draws.DefaultDrawCount,
		Tolerance: DefaultTolerance,
	}
}

// ReplayResult captures the outcome of re-estimating one fixture case.
type ReplayResult struct {
	Case     string
	Action   string // "match" | "drift" | "error"
	Reason   string
	Expected float64
	Actual   float64
	Diff     float64
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalCases int
	Matches    int
	Drifts     int
	Errors     int
	MaxDiff    float64
}

// Clean reports whether every case matched.
func (s ReplaySummary) Clean() bool {
	return s.Drifts == 0 && s.Errors == 0
}

// #endregion types

// #region reference
// CheckReference verifies the first uniform and first normal for config.Seed.
func CheckReference(ref FixtureReference, config ReplayConfig) error {
	if u := rng.New(config.Seed).Next(); u != ref.FirstUniform {
		return fmt.Errorf("first uniform for seed %d: expected %v, got %v", config.Seed, ref.FirstUniform, u)
	}
	z := draws.NewSampler(rng.New(config.Seed)).Sample()
	if math.Abs(z-ref.FirstNormal) > config.Tolerance {
		return fmt.Errorf("first normal for seed %d: expected %v, got %v", config.Seed, ref.FirstNormal, z)
	}
	return nil
}
// #endregion reference

// #region replay
// Replay re-estimates every case on the panel for (config.Seed, config.Draws)
// and compares against the recorded support. Operates entirely in-memory.
func Replay(table *params.Table, cases []FixtureCase, config ReplayConfig) []ReplayResult {
	panel := draws.Build(config.Seed, config.Draws)
	results := make([]ReplayResult, 0, len(cases))

	for _, c := range cases {
		r := ReplayResult{Case: caseLabel(c.Config), Expected: c.ExpectedSupport}

		p, err := support.EstimateSupport(c.Config, table, panel)
		if err != nil {
			r.Action = "error"
			r.Reason = err.Error()
			results = append(results, r)
			continue
		}

		r.Actual = p
		r.Diff = math.Abs(p - c.ExpectedSupport)
		if r.Diff <= config.Tolerance {
			r.Action = "match"
		} else {
			r.Action = "drift"
			r.Reason = fmt.Sprintf("diff %.3g exceeds tolerance %.3g", r.Diff, config.Tolerance)
		}
		results = append(results, r)
	}

	return results
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult) ReplaySummary {
	s := ReplaySummary{TotalCases: len(results)}
	for _, r := range results {
		switch r.Action {
		case "match":
			s.Matches++
		case "drift":
			s.Drifts++
		case "error":
			s.Errors++
		}
		if r.Diff > s.MaxDiff {
			s.MaxDiff = r.Diff
		}
	}
	return s
}

func caseLabel(c support.Config) string {
	return fmt.Sprintf("%s/%s/%s/%s/%.1f/%g", c.Country, c.Severity, c.Scope, c.Exemptions, float64(c.Coverage), c.LivesPer100k)
}
// #endregion replay

// #region export
// Export computes a fixture for cfgs on the panel for config. Cases whose
// estimate fails are returned as an error rather than recorded.
func Export(description string, table *params.Table, cfgs []support.Config, config ReplayConfig) (*Fixture, error) {
	panel := draws.Build(config.Seed, config.Draws)
	f := &Fixture{
		Description: description,
		Seed:        config.Seed,
		Draws:       config.Draws,
		Tolerance:   config.Tolerance,
		Reference: FixtureReference{
			FirstUniform: rng.New(config.Seed).Next(),
			FirstNormal:  draws.NewSampler(rng.New(config.Seed)).Sample(),
		},
	}
	for _, c := range cfgs {
		p, err := support.EstimateSupport(c, table, panel)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", caseLabel(c), err)
		}
		f.Cases = append(f.Cases, FixtureCase{Config: c, ExpectedSupport: p})
	}
	return f, nil
}
// #endregion export

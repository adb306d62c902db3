package sweep

import (
	"context"
	"runtime"
	"sort"

	"github.com/danielpatrickdp/mandeval/internal/params"
	"github.com/danielpatrickdp/mandeval/internal/support"
	"golang.org/x/sync/errgroup"
)

// #region grid
// Grid is the cross product of attribute levels to evaluate.
type Grid struct {
	Keys       []params.Key
	Scopes     []support.Scope
	Exemptions []support.Exemptions
	Coverages  []support.Coverage
	Lives      []float64
}

// FullGrid covers every table entry and every policy level at the given lives values.
func FullGrid(table *params.Table, lives []float64) Grid {
	return Grid{
		Keys:       table.Keys(),
		Scopes:     []support.Scope{support.ScopeHighRisk, support.ScopeAll},
		Exemptions: []support.Exemptions{support.ExemptMedical, support.ExemptMedRel, support.ExemptMedRelPersonal},
		Coverages:  []support.Coverage{support.Coverage50, support.Coverage70, support.Coverage90},
		Lives:      lives,
	}
}

// Configs expands the grid. Lives varies fastest, table key slowest.
func (g Grid) Configs() []support.Config {
	var out []support.Config
	for _, k := range g.Keys {
		for _, s := range g.Scopes {
			for _, e := range g.Exemptions {
				for _, c := range g.Coverages {
					for _, l := range g.Lives {
						out = append(out, support.Config{
							Country:      k.Country,
							Severity:     k.Severity,
							Scope:        s,
							Exemptions:   e,
							Coverage:     c,
							LivesPer100k: l,
						})
					}
				}
			}
		}
	}
	return out
}
// #endregion grid

// #region run
// Result is the estimate for one configuration. Err is set when that
// configuration could not be estimated; other configurations are unaffected.
type Result struct {
	Config  support.Config
	Support float64
	Err     error
}

// Run estimates every configuration on sim's panel using at most workers
// goroutines (GOMAXPROCS when workers < 1). Results are in input order. The
// only error returned is ctx's.
func Run(ctx context.Context, sim *support.Simulator, cfgs []support.Config, workers int) ([]Result, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(cfgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cfg := range cfgs {
		if gctx.Err() != nil {
			break
		}
		i, cfg := i, cfg
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := sim.Estimate(cfg)
			results[i] = Result{Config: cfg, Support: p, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
// #endregion run

// #region ranked
// Ranked returns the successful results ordered by support, highest first.
// Ties keep grid order.
func Ranked(results []Result) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Support > out[j].Support })
	return out
}
// #endregion ranked

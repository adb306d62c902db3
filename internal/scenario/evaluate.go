package scenario

import (
	"fmt"

	"github.com/danielpatrickdp/mandeval/internal/benefit"
	"github.com/danielpatrickdp/mandeval/internal/support"
)

// #region evaluate
// Evaluate estimates support for cfg on the simulator's panel and computes the
// cost–benefit readout. Lives saved come from cfg; value per life falls back to
// settings and cost falls back to the itemised breakdown when left at zero.
// Without a positive value per life the assessment is Incomplete. The returned
// scenario is not saved.
func Evaluate(sim *support.Simulator, cfg support.Config, in benefit.Inputs, costs benefit.CostBreakdown, st benefit.Settings) (Scenario, error) {
	p, err := sim.Estimate(cfg)
	if err != nil {
		return Scenario{}, fmt.Errorf("evaluate %s: %w", cfg.Label(), err)
	}

	in.LivesPer100k = cfg.LivesPer100k
	if in.ValuePerLife == 0 {
		in.ValuePerLife = st.ValuePerLife
	}
	if in.Cost == 0 {
		in.Cost = costs.Total()
	}
	res := benefit.Compute(in)
	assessment := benefit.Assess(p, res.BCR)
	if !(in.ValuePerLife > 0) {
		assessment = benefit.Incomplete
	}

	return Scenario{
		Config:           cfg,
		Inputs:           in,
		Costs:            costs,
		Support:          p,
		Result:           res,
		Assessment:       assessment,
		Seed:             sim.Seed(),
		Draws:            sim.DrawCount(),
		PanelFingerprint: sim.Fingerprint(),
		Settings:         st,
	}, nil
}
// #endregion evaluate

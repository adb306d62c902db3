package scenario

import (
	"errors"
	"time"

	"github.com/danielpatrickdp/mandeval/internal/benefit"
	"github.com/danielpatrickdp/mandeval/internal/support"
)

// #region scenario
// Scenario is a saved mandate design with the estimate and readout computed
// for it. Seed, Draws and PanelFingerprint pin the panel the estimate came from.
type Scenario struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Notes            string                `json:"notes,omitempty"`
	Config           support.Config        `json:"config"`
	Inputs           benefit.Inputs        `json:"inputs"`
	Costs            benefit.CostBreakdown `json:"costs"`
	Support          float64               `json:"support"`
	Result           benefit.Result        `json:"result"`
	Assessment       benefit.Assessment    `json:"assessment"`
	Seed             uint32                `json:"seed"`
	Draws            int                   `json:"draws"`
	PanelFingerprint string                `json:"panel_fingerprint"`
	Settings         benefit.Settings      `json:"settings"`
	Pinned           bool                  `json:"pinned"`
	CreatedAt        time.Time             `json:"created_at"`
}

// VSLMissing reports whether the scenario was evaluated without a positive
// value per life. Its benefit and BCR are then not meaningful.
func (s Scenario) VSLMissing() bool {
	return !(s.Inputs.ValuePerLife > 0)
}
// #endregion scenario

// #region errors
// ErrNotFound is returned when a scenario ID does not exist.
var ErrNotFound = errors.New("scenario not found")

// ErrMixedPanels is returned when scenarios estimated on different draw panels
// are compared. Their support figures are not comparable.
var ErrMixedPanels = errors.New("scenarios were estimated on different draw panels")
// #endregion errors

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

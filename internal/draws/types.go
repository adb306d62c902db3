package draws

import (
	"fmt"

	"github.com/danielpatrickdp/mandeval/internal/model"
)

// #region constants
// DefaultDrawCount is the panel size used for every published estimate.
const DefaultDrawCount = 1000
// #endregion constants

// #region panel
// Panel is an ordered set of standard-normal draw records, one model.Vector per
// simulated individual. A panel is read-only once built.
type Panel []model.Vector
// #endregion panel

// #region invalid-panel-error
// InvalidPanelError reports an empty or malformed draw panel.
// Index is -1 when the problem is not tied to a single record.
type InvalidPanelError struct {
	Index  int
	Reason string
}

func (e *InvalidPanelError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid panel: %s", e.Reason)
	}
	return fmt.Sprintf("invalid panel: record %d: %s", e.Index, e.Reason)
}
// #endregion invalid-panel-error

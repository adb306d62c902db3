package logging

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielpatrickdp/mandeval/internal/draws"
	"github.com/danielpatrickdp/mandeval/internal/params"
	"github.com/danielpatrickdp/mandeval/internal/validate"
)

// #region log-estimate
// LogEstimate writes an entry to the estimate_log table.
func LogEstimate(db *sql.DB, entry EstimateEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	var supportVal interface{}
	if entry.Support != nil {
		supportVal = *entry.Support
	}

	_, err := db.Exec(
		`INSERT INTO estimate_log (scenario_id, trigger_type, config_json, seed, draws, panel_fingerprint, outcome, reason, support, duration_us, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullIfEmpty(entry.ScenarioID),
		entry.TriggerType,
		entry.ConfigJSON,
		int64(entry.Seed),
		entry.Draws,
		nullIfEmpty(entry.PanelFingerprint),
		string(entry.Outcome),
		nullIfEmpty(entry.Reason),
		supportVal,
		entry.DurationMicros,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log estimate: %w", err)
	}
	return nil
}
// #endregion log-estimate

// #region recent
// RecentEstimates returns the newest limit entries, newest first.
func RecentEstimates(db *sql.DB, limit int) ([]EstimateEntry, error) {
	rows, err := db.Query(
		`SELECT scenario_id, trigger_type, config_json, seed, draws, panel_fingerprint, outcome, reason, support, duration_us, created_at
		 FROM estimate_log ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query estimates: %w", err)
	}
	defer rows.Close()

	var out []EstimateEntry
	for rows.Next() {
		var e EstimateEntry
		var scenarioID, fingerprint, reason sql.NullString
		var supportVal sql.NullFloat64
		var seed int64
		var outcome, created string
		if err := rows.Scan(&scenarioID, &e.TriggerType, &e.ConfigJSON, &seed, &e.Draws, &fingerprint,
			&outcome, &reason, &supportVal, &e.DurationMicros, &created); err != nil {
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		e.ScenarioID = scenarioID.String
		e.PanelFingerprint = fingerprint.String
		e.Reason = reason.String
		e.Seed = uint32(seed)
		e.Outcome = Outcome(outcome)
		if supportVal.Valid {
			v := supportVal.Float64
			e.Support = &v
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, e)
	}
	return out, rows.Err()
}
// #endregion recent

// #region classify
// Classify maps an estimation error to its Outcome.
func Classify(err error) Outcome {
	var mpe *params.MissingParametersError
	var ipe *draws.InvalidPanelError
	var verr *validate.Error
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &mpe):
		return OutcomeMissingParameters
	case errors.As(err, &ipe):
		return OutcomeInvalidPanel
	case errors.As(err, &verr):
		return OutcomeInvalidConfig
	default:
		return OutcomeError
	}
}
// #endregion classify

// #region entry
// NewEstimateEntry builds a log entry for one estimate attempt. cfg is stored as
// JSON; support is recorded only when err is nil.
func NewEstimateEntry(trigger string, cfg interface{}, seed uint32, drawCount int, fingerprint string, support float64, err error, elapsed time.Duration) EstimateEntry {
	cfgJSON, mErr := json.Marshal(cfg)
	if mErr != nil {
		cfgJSON = []byte("{}")
	}
	entry := EstimateEntry{
		TriggerType:      trigger,
		ConfigJSON:       string(cfgJSON),
		Seed:             seed,
		Draws:            drawCount,
		PanelFingerprint: fingerprint,
		Outcome:          Classify(err),
		DurationMicros:   elapsed.Microseconds(),
	}
	if err != nil {
		entry.Reason = err.Error()
	} else {
		entry.Support = &support
	}
	return entry
}
// #endregion entry

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
// #endregion helpers

package logging

import "time"

// #region outcome
// Outcome classifies how an estimate request ended.
type Outcome string

const (
	OutcomeOK                Outcome = "ok"
	OutcomeMissingParameters Outcome = "missing_parameters"
	OutcomeInvalidPanel      Outcome = "invalid_panel"
	OutcomeInvalidConfig     Outcome = "invalid_config"
	OutcomeError             Outcome = "error"
)
// #endregion outcome

// #region estimate-entry
// EstimateEntry is a single row in the estimate_log table.
type EstimateEntry struct {
	ScenarioID       string
	TriggerType      string // "cli" | "rpc" | "sweep"
	ConfigJSON       string
	Seed             uint32
	Draws            int
	PanelFingerprint string
	Outcome          Outcome
	Reason           string
	Support          *float64 // nil unless Outcome is ok
	DurationMicros   int64
	CreatedAt        time.Time
}
// #endregion estimate-entry

package logging

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/danielpatrickdp/mandeval/internal/draws"
	"github.com/danielpatrickdp/mandeval/internal/params"
	"github.com/danielpatrickdp/mandeval/internal/validate"
	_ "modernc.org/sqlite"
)

// #region helpers
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	_, err = db.Exec(`CREATE TABLE estimate_log (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario_id       TEXT,
		trigger_type      TEXT NOT NULL,
		config_json       TEXT NOT NULL,
		seed              INTEGER NOT NULL,
		draws             INTEGER NOT NULL,
		panel_fingerprint TEXT,
		outcome           TEXT NOT NULL,
		reason            TEXT,
		support           REAL,
		duration_us       INTEGER NOT NULL,
		created_at        TEXT NOT NULL
	)`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr(v float64) *float64 { return &v }
// #endregion helpers

// #region log-estimate-tests
func TestLogEstimate_Success(t *testing.T) {
	db := setupDB(t)

	entry := EstimateEntry{
		ScenarioID:       "s1",
		TriggerType:      "cli",
		ConfigJSON:       `{"country":"AU"}`,
		Seed:             123456789,
		Draws:            1000,
		PanelFingerprint: "abc",
		Outcome:          OutcomeOK,
		Support:          ptr(0.9013890931146321),
		DurationMicros:   412,
		CreatedAt:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := LogEstimate(db, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := RecentEstimates(db, 10)
	if err != nil {
		t.Fatalf("RecentEstimates: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	e := got[0]
	if e.Seed != 123456789 || e.Draws != 1000 || e.Outcome != OutcomeOK {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.Support == nil || *e.Support != 0.9013890931146321 {
		t.Fatalf("support not preserved: %v", e.Support)
	}
	if !e.CreatedAt.Equal(entry.CreatedAt) {
		t.Fatalf("expected created_at %v, got %v", entry.CreatedAt, e.CreatedAt)
	}
}

func TestLogEstimate_NullableFields(t *testing.T) {
	db := setupDB(t)

	err := LogEstimate(db, EstimateEntry{
		TriggerType: "rpc",
		ConfigJSON:  `{}`,
		Outcome:     OutcomeMissingParameters,
		Reason:      "no preference parameters",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var scenarioID, fingerprint sql.NullString
	var supportVal sql.NullFloat64
	var created string
	db.QueryRow("SELECT scenario_id, panel_fingerprint, support, created_at FROM estimate_log").
		Scan(&scenarioID, &fingerprint, &supportVal, &created)
	if scenarioID.Valid || fingerprint.Valid || supportVal.Valid {
		t.Fatalf("expected NULLs, got %v %v %v", scenarioID, fingerprint, supportVal)
	}
	if created == "" {
		t.Fatal("expected created_at to default to now")
	}
}

func TestLogEstimate_MissingTable(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := LogEstimate(db, EstimateEntry{TriggerType: "cli", ConfigJSON: "{}", Outcome: OutcomeOK}); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestRecentEstimates_NewestFirst(t *testing.T) {
	db := setupDB(t)
	for i := 0; i < 5; i++ {
		LogEstimate(db, EstimateEntry{
			ScenarioID:  fmt.Sprintf("s%d", i),
			TriggerType: "sweep",
			ConfigJSON:  "{}",
			Outcome:     OutcomeOK,
		})
	}
	got, err := RecentEstimates(db, 2)
	if err != nil {
		t.Fatalf("RecentEstimates: %v", err)
	}
	if len(got) != 2 || got[0].ScenarioID != "s4" || got[1].ScenarioID != "s3" {
		t.Fatalf("unexpected order: %+v", got)
	}
}
// #endregion log-estimate-tests

// #region classify-tests
func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want Outcome
	}{
		{nil, OutcomeOK},
		{&params.MissingParametersError{Country: "DE", Severity: "mild"}, OutcomeMissingParameters},
		{fmt.Errorf("estimate: %w", &draws.InvalidPanelError{Index: -1, Reason: "empty"}), OutcomeInvalidPanel},
		{(validate.Result{Reason: "bad"}).Err(), OutcomeInvalidConfig},
		{errors.New("boom"), OutcomeError},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Errorf("Classify(%v): expected %s, got %s", tc.err, tc.want, got)
		}
	}
}

func TestNewEstimateEntry(t *testing.T) {
	cfg := map[string]string{"country": "AU"}

	ok := NewEstimateEntry("cli", cfg, 123456789, 1000, "fp", 0.9, nil, 1500*time.Microsecond)
	if ok.Outcome != OutcomeOK || ok.Support == nil || *ok.Support != 0.9 {
		t.Fatalf("unexpected ok entry: %+v", ok)
	}
	if ok.ConfigJSON != `{"country":"AU"}` {
		t.Fatalf("unexpected config JSON %s", ok.ConfigJSON)
	}
	if ok.DurationMicros != 1500 {
		t.Fatalf("expected 1500us, got %d", ok.DurationMicros)
	}

	failed := NewEstimateEntry("rpc", cfg, 1, 10, "", 0, &params.MissingParametersError{Country: "DE", Severity: "mild"}, 0)
	if failed.Outcome != OutcomeMissingParameters || failed.Support != nil || failed.Reason == "" {
		t.Fatalf("unexpected failed entry: %+v", failed)
	}
}
// #endregion classify-tests

// #region logger-tests
func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if !logger.Core().Enabled(-1) {
		t.Fatal("expected debug level enabled")
	}
	if _, err := NewLogger("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
// #endregion logger-tests

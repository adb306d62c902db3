package scenario

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielpatrickdp/mandeval/internal/benefit"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS scenarios (
	id                TEXT PRIMARY KEY,
	name              TEXT NOT NULL,
	notes             TEXT,
	country           TEXT NOT NULL,
	severity          TEXT NOT NULL,
	config_json       TEXT NOT NULL,
	inputs_json       TEXT NOT NULL,
	costs_json        TEXT NOT NULL,
	support           REAL NOT NULL,
	result_json       TEXT NOT NULL,
	assessment        TEXT NOT NULL,
	seed              INTEGER NOT NULL,
	draws             INTEGER NOT NULL,
	panel_fingerprint TEXT NOT NULL,
	settings_json     TEXT NOT NULL,
	pinned            INTEGER NOT NULL DEFAULT 0,
	created_at        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS scenarios_created ON scenarios(created_at);

CREATE TABLE IF NOT EXISTS estimate_log (
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
);

CREATE TABLE IF NOT EXISTS settings (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	settings_json TEXT NOT NULL
);
`
// #endregion schema

// #region store-struct
// Store persists scenarios, the estimate log and settings in SQLite.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion constructor

// #region save
// Save inserts sc, assigning an ID and creation time when they are empty.
func (s *Store) Save(sc Scenario) (Scenario, error) {
	if sc.ID == "" {
		sc.ID = uuid.New().String()
	}
	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = time.Now().UTC()
	}
	if sc.Name == "" {
		sc.Name = sc.Config.Label()
	}

	cols, err := encode(sc)
	if err != nil {
		return Scenario{}, err
	}

	_, err = s.db.Exec(
		`INSERT INTO scenarios (id, name, notes, country, severity, config_json, inputs_json, costs_json,
			support, result_json, assessment, seed, draws, panel_fingerprint, settings_json, pinned, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sc.ID, sc.Name, sc.Notes, string(sc.Config.Country), string(sc.Config.Severity),
		cols.config, cols.inputs, cols.costs, sc.Support, cols.result, string(sc.Assessment),
		int64(sc.Seed), sc.Draws, sc.PanelFingerprint, cols.settings, boolInt(sc.Pinned),
		sc.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Scenario{}, fmt.Errorf("insert scenario: %w", err)
	}
	return sc, nil
}
// #endregion save

// #region get
const selectColumns = `SELECT id, name, notes, config_json, inputs_json, costs_json, support, result_json,
	assessment, seed, draws, panel_fingerprint, settings_json, pinned, created_at FROM scenarios`

// Get retrieves a scenario by ID.
func (s *Store) Get(id string) (Scenario, error) {
	row := s.db.QueryRow(selectColumns+` WHERE id = ?`, id)
	sc, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Scenario{}, fmt.Errorf("get scenario %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Scenario{}, fmt.Errorf("get scenario %s: %w", id, err)
	}
	return sc, nil
}
// #endregion get

// #region list
// List returns the most recent scenarios, newest first.
func (s *Store) List(limit int) ([]Scenario, error) {
	return s.query(selectColumns+` ORDER BY created_at DESC LIMIT ?`, limit)
}

// ListPinned returns pinned scenarios, oldest first.
func (s *Store) ListPinned() ([]Scenario, error) {
	return s.query(selectColumns + ` WHERE pinned = 1 ORDER BY created_at ASC`)
}

func (s *Store) query(q string, args ...interface{}) ([]Scenario, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	var out []Scenario
	for rows.Next() {
		sc, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
// #endregion list

// #region mutate
// SetPinned pins or unpins a scenario.
func (s *Store) SetPinned(id string, pinned bool) error {
	res, err := s.db.Exec(`UPDATE scenarios SET pinned = ? WHERE id = ?`, boolInt(pinned), id)
	if err != nil {
		return fmt.Errorf("pin scenario: %w", err)
	}
	return requireRow(res, id)
}

// Delete removes a scenario.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	return requireRow(res, id)
}

// Clear removes every scenario and returns how many were deleted.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM scenarios`)
	if err != nil {
		return 0, fmt.Errorf("clear scenarios: %w", err)
	}
	return res.RowsAffected()
}
// #endregion mutate

// #region compare
// Compare loads the given scenarios for side-by-side comparison. It fails with
// ErrMixedPanels unless all were estimated on the same panel.
func (s *Store) Compare(ids ...string) ([]Scenario, error) {
	out := make([]Scenario, 0, len(ids))
	for _, id := range ids {
		sc, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		if len(out) > 0 && sc.PanelFingerprint != out[0].PanelFingerprint {
			return nil, fmt.Errorf("compare %s with %s: %w", sc.ID, out[0].ID, ErrMixedPanels)
		}
		out = append(out, sc)
	}
	return out, nil
}
// #endregion compare

// #region settings
// SaveSettings replaces the stored valuation settings.
func (s *Store) SaveSettings(st benefit.Settings) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO settings (id, settings_json) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET settings_json = excluded.settings_json`,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// LoadSettings returns the stored settings, or benefit.DefaultSettings when none are saved.
func (s *Store) LoadSettings() (benefit.Settings, error) {
	return s.LoadSettingsOr(benefit.DefaultSettings())
}

// LoadSettingsOr returns the stored settings, or fallback when none are saved.
// Fields missing from the stored JSON keep their fallback value.
func (s *Store) LoadSettingsOr(fallback benefit.Settings) (benefit.Settings, error) {
	var data string
	err := s.db.QueryRow(`SELECT settings_json FROM settings WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return benefit.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	st := fallback
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return benefit.Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return st, nil
}
// #endregion settings

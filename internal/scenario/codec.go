package scenario

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielpatrickdp/mandeval/internal/benefit"
)

// #region encode
type encodedColumns struct {
	config, inputs, costs, result, settings string
}

func encode(sc Scenario) (encodedColumns, error) {
	var cols encodedColumns
	fields := []struct {
		name string
		v    interface{}
		dst  *string
	}{
		{"config", sc.Config, &cols.config},
		{"inputs", sc.Inputs, &cols.inputs},
		{"costs", sc.Costs, &cols.costs},
		{"result", sc.Result, &cols.result},
		{"settings", sc.Settings, &cols.settings},
	}
	for _, f := range fields {
		data, err := json.Marshal(f.v)
		if err != nil {
			return encodedColumns{}, fmt.Errorf("marshal %s: %w", f.name, err)
		}
		*f.dst = string(data)
	}
	return cols, nil
}
// #endregion encode

// #region decode
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scan(r rowScanner) (Scenario, error) {
	var sc Scenario
	var notes sql.NullString
	var cols encodedColumns
	var assessment, created string
	var seed int64
	var pinned int

	err := r.Scan(&sc.ID, &sc.Name, &notes, &cols.config, &cols.inputs, &cols.costs, &sc.Support,
		&cols.result, &assessment, &seed, &sc.Draws, &sc.PanelFingerprint, &cols.settings, &pinned, &created)
	if err != nil {
		return Scenario{}, err
	}

	sc.Notes = notes.String
	sc.Seed = uint32(seed)
	sc.Pinned = pinned != 0
	sc.Assessment = benefit.Assessment(assessment)
	sc.CreatedAt, _ = time.Parse(timeLayout, created)

	fields := []struct {
		name string
		src  string
		dst  interface{}
	}{
		{"config", cols.config, &sc.Config},
		{"inputs", cols.inputs, &sc.Inputs},
		{"costs", cols.costs, &sc.Costs},
		{"result", cols.result, &sc.Result},
		{"settings", cols.settings, &sc.Settings},
	}
	for _, f := range fields {
		if err := json.Unmarshal([]byte(f.src), f.dst); err != nil {
			return Scenario{}, fmt.Errorf("unmarshal %s: %w", f.name, err)
		}
	}
	return sc, nil
}
// #endregion decode

// #region helpers
func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("scenario %s: %w", id, ErrNotFound)
	}
	return nil
}
// #endregion helpers

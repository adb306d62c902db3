package draws

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/danielpatrickdp/mandeval/internal/model"
)

// #region validate
// Validate checks that the panel is non-empty and every value is finite.
func (p Panel) Validate() error {
	if len(p) == 0 {
		return &InvalidPanelError{Index: -1, Reason: "panel has no draws"}
	}
	for i, rec := range p {
		for _, c := range model.Coefficients() {
			if v := rec[c]; math.IsNaN(v) || math.IsInf(v, 0) {
				return &InvalidPanelError{Index: i, Reason: fmt.Sprintf("%s is not finite", c)}
			}
		}
	}
	return nil
}
// #endregion validate

// #region fingerprint
// Fingerprint returns a hex SHA-256 over the panel's float bits. Estimates are
// only comparable when they were computed on panels with equal fingerprints.
func (p Panel) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(p)))
	h.Write(buf[:])
	for _, rec := range p {
		for _, v := range rec {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
// #endregion fingerprint

// #region records
// Records renders the panel as name-keyed maps, the form used in fixtures.
func (p Panel) Records() []map[string]float64 {
	out := make([]map[string]float64, len(p))
	for i, rec := range p {
		out[i] = rec.Map()
	}
	return out
}

// FromRecords builds a panel from name-keyed records. Every record must carry
// all coefficient names and nothing else.
func FromRecords(records []map[string]float64) (Panel, error) {
	if len(records) == 0 {
		return nil, &InvalidPanelError{Index: -1, Reason: "panel has no draws"}
	}
	p := make(Panel, len(records))
	for i, r := range records {
		vec, missing, err := model.VectorFromMap(r)
		if err != nil {
			return nil, &InvalidPanelError{Index: i, Reason: err.Error()}
		}
		if len(missing) > 0 {
			names := make([]string, len(missing))
			for j, c := range missing {
				names[j] = c.String()
			}
			sort.Strings(names)
			return nil, &InvalidPanelError{Index: i, Reason: "missing " + strings.Join(names, ", ")}
		}
		p[i] = vec
	}
	return p, p.Validate()
}
// #endregion records

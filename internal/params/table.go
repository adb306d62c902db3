package params

import (
	"sort"

	"github.com/danielpatrickdp/mandeval/internal/model"
)

// #region table
// Table maps (country, severity) to an immutable coefficient distribution.
type Table struct {
	entries map[Key]Entry
}

// NewTable copies entries into a new table.
func NewTable(entries map[Key]Entry) *Table {
	t := &Table{entries: make(map[Key]Entry, len(entries))}
	for k, e := range entries {
		t.entries[k] = e
	}
	return t
}

// Lookup returns the entry for (country, severity) or a *MissingParametersError.
func (t *Table) Lookup(country Country, severity Severity) (Entry, error) {
	e, ok := t.entries[Key{Country: country, Severity: severity}]
	if !ok {
		return Entry{}, &MissingParametersError{Country: country, Severity: severity}
	}
	return e, nil
}

// Keys returns every table key sorted by country then severity.
func (t *Table) Keys() []Key {
	keys := make([]Key, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Country != keys[j].Country {
			return keys[i].Country < keys[j].Country
		}
		return keys[i].Severity < keys[j].Severity
	})
	return keys
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}
// #endregion table

// #region default-table
// Default returns the embedded study estimates. Means are the published
// mixed-logit means. The published table carries no spreads, so the SDs are
// fixed assumptions; changing any of them moves every golden support value.
// Vector order: ascPolicyA, ascOptOut, scopeAll, exMedRel, exMedRelPers, cov70, cov90, lives.
func Default() *Table {
	return NewTable(map[Key]Entry{
		{Australia, Mild}: {
			Mean: model.Vector{0.464, -0.572, -0.319, -0.157, -0.267, 0.171, 0.158, 0.072},
			SD:   model.Vector{0.611, 1.094, 0.412, 0.203, 0.318, 0.142, 0.267, 0.019},
		},
		{Australia, Severe}: {
			Mean: model.Vector{0.535, -0.694, 0.190, -0.181, -0.305, 0.371, 0.398, 0.079},
			SD:   model.Vector{0.735, 1.212, 0.388, 0.197, 0.341, 0.226, 0.309, 0.021},
		},
		{Italy, Mild}: {
			Mean: model.Vector{0.625, -0.238, -0.276, -0.176, -0.289, 0.185, 0.148, 0.039},
			SD:   model.Vector{0.688, 1.021, 0.447, 0.229, 0.296, 0.151, 0.238, 0.014},
		},
		{Italy, Severe}: {
			Mean: model.Vector{0.799, -0.463, 0.174, -0.178, -0.207, 0.305, 0.515, 0.045},
			SD:   model.Vector{0.804, 1.163, 0.402, 0.183, 0.262, 0.277, 0.361, 0.016},
		},
		{France, Mild}: {
			Mean: model.Vector{0.899, 0.307, -0.160, -0.121, -0.124, 0.232, 0.264, 0.049},
			SD:   model.Vector{0.913, 1.287, 0.366, 0.172, 0.214, 0.198, 0.244, 0.017},
		},
		{France, Severe}: {
			Mean: model.Vector{0.884, 0.083, -0.019, -0.192, -0.247, 0.267, 0.398, 0.052},
			SD:   model.Vector{0.877, 1.249, 0.321, 0.219, 0.288, 0.231, 0.335, 0.018},
		},
	})
}
// #endregion default-table

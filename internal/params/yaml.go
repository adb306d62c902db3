package params

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/danielpatrickdp/mandeval/internal/model"
	"gopkg.in/yaml.v3"
)

// #region yaml-types
// yamlEntry is one (country, severity) block of a coefficients file:
//
//	AU:
//	  mild:
//	    mean: {ascPolicyA: 0.464, ...}
//	    sd:   {ascPolicyA: 0.611, ...}
type yamlEntry struct {
	Mean map[string]float64 `yaml:"mean"`
	SD   map[string]float64 `yaml:"sd"`
}

type yamlTable map[string]map[string]yamlEntry
// #endregion yaml-types

// #region load
// LoadYAML reads a replacement parameter table from path.
func LoadYAML(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read coefficients %s: %w", path, err)
	}
	t, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse coefficients %s: %w", path, err)
	}
	return t, nil
}

// ParseYAML decodes a coefficients document. Every mean must be present;
// an absent SD is taken as 0 (a fixed coefficient).
func ParseYAML(data []byte) (*Table, error) {
	var raw yamlTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("coefficients document is empty")
	}

	entries := make(map[Key]Entry)
	for country, bySeverity := range raw {
		for severity, ye := range bySeverity {
			key := Key{Country: Country(strings.ToUpper(country)), Severity: Severity(strings.ToLower(severity))}

			mean, missing, err := model.VectorFromMap(ye.Mean)
			if err != nil {
				return nil, fmt.Errorf("%s mean: %w", key, err)
			}
			if len(missing) > 0 {
				return nil, fmt.Errorf("%s mean: missing %s", key, joinCoefficients(missing))
			}

			sd, _, err := model.VectorFromMap(ye.SD)
			if err != nil {
				return nil, fmt.Errorf("%s sd: %w", key, err)
			}
			for c, v := range sd {
				if v < 0 {
					return nil, fmt.Errorf("%s sd: %s is negative", key, model.Coefficient(c))
				}
			}

			entries[key] = Entry{Mean: mean, SD: sd}
		}
	}
	return NewTable(entries), nil
}

// MarshalYAML renders the table in the LoadYAML format.
func (t *Table) MarshalYAML() (interface{}, error) {
	out := yamlTable{}
	for _, k := range t.Keys() {
		e := t.entries[k]
		country := string(k.Country)
		if out[country] == nil {
			out[country] = map[string]yamlEntry{}
		}
		out[country][string(k.Severity)] = yamlEntry{Mean: e.Mean.Map(), SD: e.SD.Map()}
	}
	return out, nil
}
// #endregion load

// #region helpers
func joinCoefficients(cs []model.Coefficient) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.String()
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
// #endregion helpers

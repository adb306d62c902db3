package params

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/mandeval/internal/model"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// #region lookup-tests
func TestDefault_HasSixEntries(t *testing.T) {
	tbl := Default()
	if tbl.Len() != 6 {
		t.Fatalf("expected 6 entries, got %d", tbl.Len())
	}
	want := []Key{
		{Australia, Mild}, {Australia, Severe},
		{France, Mild}, {France, Severe},
		{Italy, Mild}, {Italy, Severe},
	}
	if diff := cmp.Diff(want, tbl.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_PublishedMeans(t *testing.T) {
	cases := []struct {
		key   Key
		coef  model.Coefficient
		value float64
	}{
		{Key{Australia, Mild}, model.AscPolicyA, 0.464},
		{Key{Australia, Mild}, model.Lives, 0.072},
		{Key{Australia, Severe}, model.Cov90, 0.398},
		{Key{Italy, Mild}, model.AscOptOut, -0.238},
		{Key{Italy, Severe}, model.Cov90, 0.515},
		{Key{France, Mild}, model.AscOptOut, 0.307},
		{Key{France, Severe}, model.ScopeAll, -0.019},
	}
	tbl := Default()
	for _, tc := range cases {
		e, err := tbl.Lookup(tc.key.Country, tc.key.Severity)
		if err != nil {
			t.Fatalf("Lookup %s: %v", tc.key, err)
		}
		if e.Mean[tc.coef] != tc.value {
			t.Errorf("%s %s: expected %v, got %v", tc.key, tc.coef, tc.value, e.Mean[tc.coef])
		}
	}
}

func TestDefault_SDsNonNegative(t *testing.T) {
	tbl := Default()
	for _, k := range tbl.Keys() {
		e, _ := tbl.Lookup(k.Country, k.Severity)
		for c, v := range e.SD {
			if v < 0 {
				t.Errorf("%s %s: negative sd %v", k, model.Coefficient(c), v)
			}
		}
	}
}

func TestLookup_Missing(t *testing.T) {
	_, err := Default().Lookup("DE", Mild)
	var mpe *MissingParametersError
	if !errors.As(err, &mpe) {
		t.Fatalf("expected MissingParametersError, got %v", err)
	}
	if mpe.Country != "DE" || mpe.Severity != Mild {
		t.Fatalf("unexpected error fields: %+v", mpe)
	}

	if _, err := Default().Lookup(Australia, "moderate"); !errors.As(err, &mpe) {
		t.Fatalf("expected MissingParametersError for unknown severity, got %v", err)
	}
}

func TestNewTable_Copies(t *testing.T) {
	src := map[Key]Entry{{Australia, Mild}: {}}
	tbl := NewTable(src)
	delete(src, Key{Australia, Mild})
	if _, err := tbl.Lookup(Australia, Mild); err != nil {
		t.Fatalf("table should not alias caller map: %v", err)
	}
}
// #endregion lookup-tests

// #region yaml-tests
const sampleYAML = `
au:
  MILD:
    mean: {ascPolicyA: 0.5, ascOptOut: -0.5, scopeAll: 0.1, exMedRel: -0.1, exMedRelPers: -0.2, cov70: 0.2, cov90: 0.3, lives: 0.05}
    sd:   {ascPolicyA: 0.4, lives: 0.01}
`

func TestParseYAML(t *testing.T) {
	tbl, err := ParseYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	e, err := tbl.Lookup(Australia, Mild)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if e.Mean[model.Cov90] != 0.3 {
		t.Fatalf("expected cov90 mean 0.3, got %v", e.Mean[model.Cov90])
	}
	if e.SD[model.AscPolicyA] != 0.4 || e.SD[model.ScopeAll] != 0 {
		t.Fatalf("unexpected sd vector %v", e.SD)
	}
}

func TestParseYAML_MissingMean(t *testing.T) {
	doc := `
AU:
  mild:
    mean: {ascPolicyA: 0.5}
`
	if _, err := ParseYAML([]byte(doc)); err == nil {
		t.Fatal("expected error for incomplete mean vector")
	}
}

func TestParseYAML_UnknownCoefficient(t *testing.T) {
	doc := `
AU:
  mild:
    mean: {ascPolicyA: 0.5, ascOptOut: -0.5, scopeAll: 0.1, exMedRel: -0.1, exMedRelPers: -0.2, cov70: 0.2, cov90: 0.3, lives: 0.05}
    sd: {cov80: 0.1}
`
	if _, err := ParseYAML([]byte(doc)); err == nil {
		t.Fatal("expected error for unknown coefficient")
	}
}

func TestParseYAML_Empty(t *testing.T) {
	if _, err := ParseYAML([]byte("")); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "coefficients.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	back, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	want := Default()
	for _, k := range want.Keys() {
		a, _ := want.Lookup(k.Country, k.Severity)
		b, err := back.Lookup(k.Country, k.Severity)
		if err != nil {
			t.Fatalf("Lookup %s: %v", k, err)
		}
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("%s differs after round trip:\n%s", k, diff)
		}
	}
}

func TestLoadYAML_NotFound(t *testing.T) {
	if _, err := LoadYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
// #endregion yaml-tests

package model

import "testing"

func TestCoefficientOrder(t *testing.T) {
	want := []string{"ascPolicyA", "ascOptOut", "scopeAll", "exMedRel", "exMedRelPers", "cov70", "cov90", "lives"}
	for i, c := range Coefficients() {
		if c.String() != want[i] {
			t.Fatalf("coefficient %d: expected %s, got %s", i, want[i], c.String())
		}
	}
}

func TestParseCoefficient(t *testing.T) {
	c, err := ParseCoefficient("cov90")
	if err != nil {
		t.Fatalf("ParseCoefficient: %v", err)
	}
	if c != Cov90 {
		t.Fatalf("expected Cov90, got %v", c)
	}
	if _, err := ParseCoefficient("cov80"); err == nil {
		t.Fatal("expected error for unknown name")
	}
}

func TestVectorFromMap_Missing(t *testing.T) {
	v, missing, err := VectorFromMap(map[string]float64{"ascPolicyA": 0.5, "lives": 0.07})
	if err != nil {
		t.Fatalf("VectorFromMap: %v", err)
	}
	if v[AscPolicyA] != 0.5 || v[Lives] != 0.07 {
		t.Fatalf("unexpected vector %v", v)
	}
	if len(missing) != NumCoefficients-2 {
		t.Fatalf("expected %d missing, got %d", NumCoefficients-2, len(missing))
	}
}

func TestVectorFromMap_Unknown(t *testing.T) {
	if _, _, err := VectorFromMap(map[string]float64{"bogus": 1}); err == nil {
		t.Fatal("expected error for unknown coefficient")
	}
}

func TestVectorMapRoundTrip(t *testing.T) {
	var v Vector
	for i := range v {
		v[i] = float64(i) + 0.5
	}
	back, missing, err := VectorFromMap(v.Map())
	if err != nil || len(missing) != 0 {
		t.Fatalf("VectorFromMap: err=%v missing=%v", err, missing)
	}
	if back != v {
		t.Fatalf("expected %v, got %v", v, back)
	}
}

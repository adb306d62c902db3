package replay

import (
	"strings"
	"testing"

	"github.com/danielpatrickdp/mandeval/internal/params"
	"github.com/danielpatrickdp/mandeval/internal/support"
)

func referenceCase(expected float64) FixtureCase {
	return FixtureCase{
		Config: support.Config{
			Country:      params.Australia,
			Severity:     params.Mild,
			Scope:        support.ScopeHighRisk,
			Exemptions:   support.ExemptMedical,
			Coverage:     support.Coverage50,
			LivesPer100k: 25,
		},
		ExpectedSupport: expected,
	}
}

func TestReplay_Match(t *testing.T) {
	results := Replay(params.Default(), []FixtureCase{referenceCase(0.9013890931146321)}, DefaultReplayConfig())
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Action != "match" {
		t.Fatalf("expected match, got %s: %s", results[0].Action, results[0].Reason)
	}
}

func TestReplay_Drift(t *testing.T) {
	results := Replay(params.Default(), []FixtureCase{referenceCase(0.85)}, DefaultReplayConfig())
	r := results[0]
	if r.Action != "drift" {
		t.Fatalf("expected drift, got %s", r.Action)
	}
	if r.Diff < 0.05 {
		t.Fatalf("expected diff ~0.051, got %v", r.Diff)
	}
	if !strings.Contains(r.Reason, "exceeds tolerance") {
		t.Fatalf("unexpected reason %q", r.Reason)
	}
}

func TestReplay_ErrorCaseContinues(t *testing.T) {
	bad := referenceCase(0.5)
	bad.Config.Country = "NZ"
	cases := []FixtureCase{bad, referenceCase(0.9013890931146321)}

	results := Replay(params.Default(), cases, DefaultReplayConfig())
	if results[0].Action != "error" {
		t.Fatalf("expected error for unknown country, got %s", results[0].Action)
	}
	if results[1].Action != "match" {
		t.Fatalf("later cases should still run, got %s", results[1].Action)
	}

	s := Summarize(results)
	if s.TotalCases != 2 || s.Errors != 1 || s.Matches != 1 || s.Clean() {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestCheckReference_DetectsWrongSeed(t *testing.T) {
	ref := FixtureReference{FirstUniform: 0.2577907438389957, FirstNormal: 1.618888884291151}
	if err := CheckReference(ref, DefaultReplayConfig()); err != nil {
		t.Fatalf("reference seed should check clean: %v", err)
	}

	other := DefaultReplayConfig()
	other.Seed = 42
	if err := CheckReference(ref, other); err == nil {
		t.Fatal("expected mismatch for a different seed")
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalCases != 0 || !s.Clean() {
		t.Fatalf("expected empty clean summary, got %+v", s)
	}
}

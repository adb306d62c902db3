package main

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielpatrickdp/mandeval/internal/benefit"
	"github.com/danielpatrickdp/mandeval/internal/logging"
	"github.com/danielpatrickdp/mandeval/internal/scenario"
)

// run executes the CLI against a temp database and returns stdout.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	base := []string{"--config", filepath.Join(filepath.Dir(db), "absent.yaml"), "--db", db}
	cmd.SetArgs(append(append([]string{}, args...), base...))
	err := cmd.Execute()
	return out.String(), err
}

func tempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "mandeval.db")
}

func TestEstimateJSON(t *testing.T) {
	db := tempDBPath(t)
	out, err := run(t, db, "estimate", "--country", "au", "--coverage", "50", "--lives", "25", "--json")
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}

	var got estimateOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if math.Abs(got.Scenario.Support-0.9013890931146321) > 1e-12 {
		t.Fatalf("expected reference support, got %v", got.Scenario.Support)
	}
	if len(got.MRS) == 0 {
		t.Fatal("expected MRS rows")
	}

	store, err := scenario.NewStore(db)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()
	entries, err := logging.RecentEstimates(store.DB(), 5)
	if err != nil {
		t.Fatalf("RecentEstimates: %v", err)
	}
	if len(entries) != 1 || entries[0].TriggerType != "cli" || entries[0].Outcome != logging.OutcomeOK {
		t.Fatalf("expected one ok cli log entry, got %+v", entries)
	}
}

func TestEstimateCostBenefitText(t *testing.T) {
	db := tempDBPath(t)
	out, err := run(t, db, "estimate",
		"--population", "1000000", "--value-per-life", "5000000",
		"--cost-admin", "200000000", "--cost-it", "300000000",
		"--lives-high", "40")
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	for _, want := range []string{"Support:  90.1%", "BCR:          2.50", "strong_candidate", "optimistic 4.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestEstimateFlagsMissingValuePerLife(t *testing.T) {
	db := tempDBPath(t)
	out, err := run(t, db, "estimate", "--population", "1000000", "--cost", "500000000")
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	for _, want := range []string{"incomplete", "Value per life missing"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestEstimateRejectsInvalidDesign(t *testing.T) {
	db := tempDBPath(t)
	if _, err := run(t, db, "estimate", "--country", "NZ"); err == nil {
		t.Fatal("expected error for unknown country")
	}
	if _, err := run(t, db, "estimate", "--coverage", "0.6"); err == nil {
		t.Fatal("expected error for unsupported coverage")
	}

	store, _ := scenario.NewStore(db)
	defer store.Close()
	entries, _ := logging.RecentEstimates(store.DB(), 5)
	if len(entries) != 1 || entries[0].Outcome != logging.OutcomeInvalidConfig {
		t.Fatalf("expected one invalid_config entry, got %+v", entries)
	}
}

func TestScenarioLifecycle(t *testing.T) {
	db := tempDBPath(t)
	for _, lives := range []string{"10", "50"} {
		if _, err := run(t, db, "estimate", "--lives", lives, "--save", "--name", "lives "+lives); err != nil {
			t.Fatalf("estimate --save: %v", err)
		}
	}

	store, err := scenario.NewStore(db)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	list, err := store.List(10)
	store.Close()
	if err != nil || len(list) != 2 {
		t.Fatalf("expected 2 saved scenarios, got %d (%v)", len(list), err)
	}

	if _, err := run(t, db, "scenarios", "pin", list[0].ID, list[1].ID); err != nil {
		t.Fatalf("pin: %v", err)
	}
	out, err := run(t, db, "scenarios", "compare")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !strings.Contains(out, "Support") || !strings.Contains(out, "79.4%") || !strings.Contains(out, "97.4%") {
		t.Fatalf("unexpected compare output:\n%s", out)
	}

	out, err = run(t, db, "scenarios", "clear")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !strings.Contains(out, "cleared 2") {
		t.Fatalf("unexpected clear output: %s", out)
	}
}

func TestSettingsSetAndShow(t *testing.T) {
	db := tempDBPath(t)
	if _, err := run(t, db, "settings", "set", "--currency", "EUR", "--value-per-life", "3500000"); err != nil {
		t.Fatalf("settings set: %v", err)
	}
	out, err := run(t, db, "settings", "show")
	if err != nil {
		t.Fatalf("settings show: %v", err)
	}
	if !strings.Contains(out, "currency_label: EUR") || !strings.Contains(out, "value_per_life: 3500000") {
		t.Fatalf("unexpected settings output:\n%s", out)
	}
	if !strings.Contains(out, "horizon:        "+benefit.DefaultSettings().Horizon) {
		t.Fatalf("unset fields should keep defaults:\n%s", out)
	}

	if _, err := run(t, db, "settings", "set", "--vsl-scheme", "qaly"); err == nil {
		t.Fatal("expected error for unknown scheme")
	}
}

func TestPanelHead(t *testing.T) {
	out, err := run(t, tempDBPath(t), "panel", "--rows", "1")
	if err != nil {
		t.Fatalf("panel: %v", err)
	}
	if !strings.Contains(out, "first uniform: 0.2577907438389957") {
		t.Fatalf("expected reference first uniform:\n%s", out)
	}
	if !strings.Contains(out, "1.618888884") {
		t.Fatalf("expected reference first normal:\n%s", out)
	}
}

func TestSweepTop(t *testing.T) {
	out, err := run(t, tempDBPath(t), "sweep", "--draws", "100", "--lives", "25", "--top", "3")
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d:\n%s", len(lines), out)
	}
}

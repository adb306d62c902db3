package scenario

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielpatrickdp/mandeval/internal/benefit"
	"github.com/danielpatrickdp/mandeval/internal/draws"
	"github.com/danielpatrickdp/mandeval/internal/params"
	"github.com/danielpatrickdp/mandeval/internal/rng"
	"github.com/danielpatrickdp/mandeval/internal/support"
	"github.com/google/go-cmp/cmp"
)

func tempDB(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func referenceConfig() support.Config {
	return support.Config{
		Country:      params.Australia,
		Severity:     params.Mild,
		Scope:        support.ScopeHighRisk,
		Exemptions:   support.ExemptMedical,
		Coverage:     support.Coverage50,
		LivesPer100k: 25,
	}
}

func sample(fingerprint string, at time.Time) Scenario {
	bcr := 2.5
	return Scenario{
		Config:           referenceConfig(),
		Inputs:           benefit.Inputs{Population: 1_000_000, LivesPer100k: 25, ValuePerLife: 5_000_000, Cost: 500_000_000},
		Costs:            benefit.CostBreakdown{Admin: 100_000_000, IT: 400_000_000},
		Support:          0.9013890931146321,
		Result:           benefit.Result{LivesTotal: 250, Benefit: 1_250_000_000, Cost: 500_000_000, NetBenefit: 750_000_000, BCR: &bcr},
		Assessment:       benefit.StrongCandidate,
		Seed:             rng.DefaultSeed,
		Draws:            draws.DefaultDrawCount,
		PanelFingerprint: fingerprint,
		Settings:         benefit.DefaultSettings(),
		CreatedAt:        at,
	}
}

func TestSaveAndGet(t *testing.T) {
	s := tempDB(t)

	saved, err := s.Save(sample("fp-a", time.Time{}))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected generated ID")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("expected creation time")
	}
	if saved.Name != referenceConfig().Label() {
		t.Fatalf("expected default name %q, got %q", referenceConfig().Label(), saved.Name)
	}

	got, err := s.Get(saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(saved, got); diff != "" {
		t.Fatalf("round trip mismatch (-saved +got):\n%s", diff)
	}
}

func TestGetMissing(t *testing.T) {
	s := tempDB(t)
	_, err := s.Get("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := tempDB(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		sc, err := s.Save(sample("fp-a", base.Add(time.Duration(i)*time.Second)))
		if err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
		ids = append(ids, sc.ID)
	}

	list, err := s.List(2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(list))
	}
	if list[0].ID != ids[2] || list[1].ID != ids[1] {
		t.Fatalf("unexpected order: %s, %s", list[0].ID, list[1].ID)
	}
}

func TestPinAndUnpin(t *testing.T) {
	s := tempDB(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a, _ := s.Save(sample("fp-a", base))
	b, _ := s.Save(sample("fp-a", base.Add(time.Minute)))

	if err := s.SetPinned(b.ID, true); err != nil {
		t.Fatalf("SetPinned: %v", err)
	}
	if err := s.SetPinned(a.ID, true); err != nil {
		t.Fatalf("SetPinned: %v", err)
	}
	pinned, err := s.ListPinned()
	if err != nil {
		t.Fatalf("ListPinned: %v", err)
	}
	if len(pinned) != 2 || pinned[0].ID != a.ID {
		t.Fatalf("expected both pinned, oldest first, got %d", len(pinned))
	}

	if err := s.SetPinned(a.ID, false); err != nil {
		t.Fatalf("unpin: %v", err)
	}
	pinned, _ = s.ListPinned()
	if len(pinned) != 1 || pinned[0].ID != b.ID {
		t.Fatalf("expected only %s pinned", b.ID)
	}

	if err := s.SetPinned("missing", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAndClear(t *testing.T) {
	s := tempDB(t)
	a, _ := s.Save(sample("fp-a", time.Time{}))
	s.Save(sample("fp-a", time.Time{}))
	s.Save(sample("fp-a", time.Time{}))

	if err := s.Delete(a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}

	n, err := s.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 cleared, got %d", n)
	}
	list, _ := s.List(10)
	if len(list) != 0 {
		t.Fatalf("expected empty store, got %d", len(list))
	}
}

func TestCompareRejectsMixedPanels(t *testing.T) {
	s := tempDB(t)
	a, _ := s.Save(sample("fp-a", time.Time{}))
	b, _ := s.Save(sample("fp-a", time.Time{}))
	c, _ := s.Save(sample("fp-b", time.Time{}))

	got, err := s.Compare(a.ID, b.ID)
	if err != nil {
		t.Fatalf("Compare same panel: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(got))
	}

	if _, err := s.Compare(a.ID, c.ID); !errors.Is(err, ErrMixedPanels) {
		t.Fatalf("expected ErrMixedPanels, got %v", err)
	}
	if _, err := s.Compare(a.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSettingsDefaultAndSave(t *testing.T) {
	s := tempDB(t)

	st, err := s.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if st != benefit.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", st)
	}

	want := benefit.Settings{Horizon: "10 years", CurrencyLabel: "EUR", VSLScheme: "vsly", ValuePerLife: 3_500_000}
	if err := s.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	want.ValuePerLife = 4_000_000
	if err := s.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings overwrite: %v", err)
	}
	got, err := s.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestEvaluate(t *testing.T) {
	sim := support.NewSimulator(params.Default(), draws.NewCache(), rng.DefaultSeed, draws.DefaultDrawCount)
	st := benefit.Settings{ValuePerLife: 5_000_000}
	costs := benefit.CostBreakdown{Admin: 200_000_000, Enforcement: 300_000_000}

	sc, err := Evaluate(sim, referenceConfig(), benefit.Inputs{Population: 1_000_000}, costs, st)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if math.Abs(sc.Support-0.9013890931146321) > 1e-12 {
		t.Fatalf("unexpected support %v", sc.Support)
	}
	if sc.Result.BCR == nil || *sc.Result.BCR != 2.5 {
		t.Fatalf("expected BCR 2.5, got %v", sc.Result.BCR)
	}
	if sc.Assessment != benefit.StrongCandidate {
		t.Fatalf("expected strong candidate, got %s", sc.Assessment)
	}
	if sc.PanelFingerprint != sim.Fingerprint() || sc.Draws != 1000 {
		t.Fatalf("panel identity not recorded: %+v", sc)
	}

	bad := referenceConfig()
	bad.Country = "NZ"
	if _, err := Evaluate(sim, bad, benefit.Inputs{}, costs, st); err == nil {
		t.Fatal("expected error for unknown country")
	}
}

func TestEvaluate_MissingValuePerLife(t *testing.T) {
	sim := support.NewSimulator(params.Default(), draws.NewCache(), rng.DefaultSeed, draws.DefaultDrawCount)
	costs := benefit.CostBreakdown{Admin: 500_000_000}

	sc, err := Evaluate(sim, referenceConfig(), benefit.Inputs{Population: 1_000_000}, costs, benefit.DefaultSettings())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !sc.VSLMissing() {
		t.Fatal("expected VSLMissing with zero value per life")
	}
	if sc.Assessment != benefit.Incomplete {
		t.Fatalf("expected incomplete, got %s", sc.Assessment)
	}

	sc, err = Evaluate(sim, referenceConfig(), benefit.Inputs{Population: 1_000_000, ValuePerLife: 5_000_000}, costs, benefit.DefaultSettings())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if sc.VSLMissing() || sc.Assessment != benefit.StrongCandidate {
		t.Fatalf("explicit value per life should complete the readout, got %s", sc.Assessment)
	}
}

func TestLoadSettingsOrFallback(t *testing.T) {
	s := tempDB(t)
	fallback := benefit.Settings{Horizon: "3 years", CurrencyLabel: "AUD", VSLScheme: "vsl", ValuePerLife: 5_300_000}

	got, err := s.LoadSettingsOr(fallback)
	if err != nil {
		t.Fatalf("LoadSettingsOr: %v", err)
	}
	if got != fallback {
		t.Fatalf("expected fallback, got %+v", got)
	}

	saved := benefit.Settings{Horizon: "1 year", CurrencyLabel: "EUR", VSLScheme: "vsly", ValuePerLife: 1}
	s.SaveSettings(saved)
	got, _ = s.LoadSettingsOr(fallback)
	if got != saved {
		t.Fatalf("stored settings should win, got %+v", got)
	}
}

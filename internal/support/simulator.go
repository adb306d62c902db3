package support

import (
	"sync"

	"github.com/danielpatrickdp/mandeval/internal/draws"
	"github.com/danielpatrickdp/mandeval/internal/params"
)

// #region simulator
// Simulator binds a parameter table to one fixed draw panel and memoizes
// estimates per configuration. It is safe for concurrent use.
type Simulator struct {
	table       *params.Table
	panel       draws.Panel
	seed        uint32
	fingerprint string

	mu   sync.Mutex
	memo map[Config]float64
}

// NewSimulator builds (or reuses from cache) the (seed, drawCount) panel.
// A nil cache builds a private panel.
func NewSimulator(table *params.Table, cache *draws.Cache, seed uint32, drawCount int) *Simulator {
	var panel draws.Panel
	if cache != nil {
		panel = cache.Get(seed, drawCount)
	} else {
		panel = draws.Build(seed, drawCount)
	}
	return &Simulator{
		table:       table,
		panel:       panel,
		seed:        seed,
		fingerprint: panel.Fingerprint(),
		memo:        make(map[Config]float64),
	}
}

// Estimate returns the support estimate for cfg on the simulator's panel.
func (s *Simulator) Estimate(cfg Config) (float64, error) {
	s.mu.Lock()
	v, ok := s.memo[cfg]
	s.mu.Unlock()
	if ok {
		return v, nil
	}

	v, err := EstimateSupport(cfg, s.table, s.panel)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.memo[cfg] = v
	s.mu.Unlock()
	return v, nil
}

// MRS returns lives-saved equivalents for cfg's non-reference levels.
func (s *Simulator) MRS(cfg Config) ([]MRSRow, error) {
	entry, err := s.table.Lookup(cfg.Country, cfg.Severity)
	if err != nil {
		return nil, err
	}
	return MRS(entry, cfg), nil
}

// Table returns the parameter table.
func (s *Simulator) Table() *params.Table { return s.table }

// Panel returns the shared read-only draw panel.
func (s *Simulator) Panel() draws.Panel { return s.panel }

// Seed returns the seed the panel was built from.
func (s *Simulator) Seed() uint32 { return s.seed }

// DrawCount returns the panel size.
func (s *Simulator) DrawCount() int { return len(s.panel) }

// Fingerprint identifies the panel; see draws.Panel.Fingerprint.
func (s *Simulator) Fingerprint() string { return s.fingerprint }

// Cached reports how many configurations have been memoized.
func (s *Simulator) Cached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.memo)
}
// #endregion simulator

package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/mandeval/internal/support"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a golden support fixture.
type Fixture struct {
	Description string           `json:"description"`
	Seed        uint32           `json:"seed"`
	Draws       int              `json:"draws"`
	Tolerance   float64          `json:"tolerance"`
	Reference   FixtureReference `json:"reference"`
	Cases       []FixtureCase    `json:"cases"`
}

// FixtureReference pins the head of the random stream for the fixture's seed.
type FixtureReference struct {
	FirstUniform float64 `json:"first_uniform"`
	FirstNormal  float64 `json:"first_normal"`
}

// FixtureCase is one configuration and the support it is expected to produce.
type FixtureCase struct {
	Config          support.Config `json:"config"`
	ExpectedSupport float64        `json:"expected_support"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.Draws <= 0 {
		return nil, fmt.Errorf("parse fixture %s: draws must be positive, got %d", path, f.Draws)
	}
	return &f, nil
}

// WriteFixture writes f as indented JSON.
func WriteFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// ToReplayConfig extracts the run parameters recorded in the fixture.
func (f *Fixture) ToReplayConfig() ReplayConfig {
	cfg := ReplayConfig{Seed: f.Seed, Draws: f.Draws, Tolerance: f.Tolerance}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}
	return cfg
}

// #endregion fixture-loader

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/mandeval/internal/draws"
	"github.com/danielpatrickdp/mandeval/internal/params"
	"github.com/danielpatrickdp/mandeval/internal/replay"
	"github.com/danielpatrickdp/mandeval/internal/rng"
	"github.com/danielpatrickdp/mandeval/internal/scenario"
	"github.com/danielpatrickdp/mandeval/internal/support"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "export pinned scenarios from mandeval.db instead of the reference grid")
	outPath := flag.String("out", "", "output fixture JSON path")
	coefPath := flag.String("coefficients", "", "optional YAML coefficient table")
	seed := flag.Uint("seed", uint(rng.DefaultSeed), "panel seed")
	n := flag.Int("draws", draws.DefaultDrawCount, "panel size")
	flag.Parse()

	if *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --out path/to/fixture.json [--db path/to/mandeval.db] [--seed S] [--draws N] [--coefficients table.yaml]")
		os.Exit(2)
	}

	config := replay.ReplayConfig{Seed: uint32(*seed), Draws: *n, Tolerance: replay.DefaultTolerance}
	if err := run(*dbPath, *coefPath, *outPath, config); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

// referenceDesigns are the policy combinations pinned for every table entry.
var referenceDesigns = []struct {
	scope      support.Scope
	exemptions support.Exemptions
	coverage   support.Coverage
	lives      float64
}{
	{support.ScopeHighRisk, support.ExemptMedical, support.Coverage50, 25},
	{support.ScopeAll, support.ExemptMedRel, support.Coverage70, 10},
	{support.ScopeAll, support.ExemptMedRelPersonal, support.Coverage90, 50},
	{support.ScopeHighRisk, support.ExemptMedRelPersonal, support.Coverage70, 0},
}

// referenceCountries keeps the fixture in the order the baseline was written.
var referenceCountries = []params.Country{params.Australia, params.Italy, params.France}

func run(dbPath, coefPath, outPath string, config replay.ReplayConfig) error {
	table := params.Default()
	if coefPath != "" {
		t, err := params.LoadYAML(coefPath)
		if err != nil {
			return fmt.Errorf("load coefficients: %w", err)
		}
		table = t
	}

	var cfgs []support.Config
	var description string
	if dbPath != "" {
		pinned, err := pinnedConfigs(dbPath)
		if err != nil {
			return err
		}
		cfgs = pinned
		description = fmt.Sprintf("Pinned scenarios from %s", dbPath)
	} else {
		cfgs = referenceGrid()
		description = "Reference support grid"
	}
	description = fmt.Sprintf("%s: seed %d, %d draws", description, config.Seed, config.Draws)

	f, err := replay.Export(description, table, cfgs, config)
	if err != nil {
		return err
	}
	if err := replay.WriteFixture(outPath, f); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "exported %d cases to %s\n", len(f.Cases), outPath)
	return nil
}

func referenceGrid() []support.Config {
	var cfgs []support.Config
	for _, c := range referenceCountries {
		for _, sev := range []params.Severity{params.Mild, params.Severe} {
			for _, d := range referenceDesigns {
				cfgs = append(cfgs, support.Config{
					Country:      c,
					Severity:     sev,
					Scope:        d.scope,
					Exemptions:   d.exemptions,
					Coverage:     d.coverage,
					LivesPer100k: d.lives,
				})
			}
		}
	}
	return cfgs
}

func pinnedConfigs(dbPath string) ([]support.Config, error) {
	store, err := scenario.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	pinned, err := store.ListPinned()
	if err != nil {
		return nil, err
	}
	if len(pinned) == 0 {
		return nil, fmt.Errorf("no pinned scenarios in %s", dbPath)
	}
	cfgs := make([]support.Config, len(pinned))
	for i, sc := range pinned {
		cfgs[i] = sc.Config
	}
	return cfgs, nil
}

// #endregion extract

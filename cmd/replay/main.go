package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/danielpatrickdp/mandeval/internal/draws"
	"github.com/danielpatrickdp/mandeval/internal/logging"
	"github.com/danielpatrickdp/mandeval/internal/params"
	"github.com/danielpatrickdp/mandeval/internal/replay"
	"github.com/danielpatrickdp/mandeval/internal/scenario"
	"github.com/danielpatrickdp/mandeval/internal/support"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to mandeval.db (estimate log mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	coefPath := flag.String("coefficients", "", "optional YAML coefficient table")
	last := flag.Int("last", 200, "estimate log mode: replay N most recent entries")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--coefficients table.yaml]")
		fmt.Fprintln(os.Stderr, "       replay --db path/to/mandeval.db [--last N]")
		os.Exit(2)
	}

	table := params.Default()
	if *coefPath != "" {
		t, err := params.LoadYAML(*coefPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load coefficients: %v\n", err)
			os.Exit(2)
		}
		table = t
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath, table)
	} else {
		exitCode = runDBMode(*dbPath, table, *last)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region db-extract

// runDBMode re-estimates every successful estimate_log entry on the panel it
// recorded and reports any whose support has moved.
func runDBMode(dbPath string, table *params.Table, last int) int {
	store, err := scenario.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer store.Close()

	entries, err := logging.RecentEstimates(store.DB(), last)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query estimate log: %v\n", err)
		return 2
	}

	cache := draws.NewCache()
	var results []replay.ReplayResult
	for _, e := range entries {
		if e.Outcome != logging.OutcomeOK || e.Support == nil {
			continue
		}
		var cfg support.Config
		if err := json.Unmarshal([]byte(e.ConfigJSON), &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "skip entry: parse config: %v\n", err)
			continue
		}

		panel := cache.Get(e.Seed, e.Draws)
		if e.PanelFingerprint != "" && panel.Fingerprint() != e.PanelFingerprint {
			results = append(results, replay.ReplayResult{
				Case:   cfg.Label(),
				Action: "drift",
				Reason: "panel fingerprint changed",
			})
			continue
		}

		results = append(results, compare(cfg, table, panel, *e.Support))
	}

	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "no successful estimates found in estimate_log")
		return 2
	}
	return printComparison(results)
}

func compare(cfg support.Config, table *params.Table, panel draws.Panel, logged float64) replay.ReplayResult {
	r := replay.ReplayResult{Case: cfg.Label(), Expected: logged}
	p, err := support.EstimateSupport(cfg, table, panel)
	if err != nil {
		r.Action, r.Reason = "error", err.Error()
		return r
	}
	r.Actual = p
	r.Diff = math.Abs(p - logged)
	r.Action = "match"
	if r.Diff > replay.DefaultTolerance {
		r.Action = "drift"
	}
	return r
}

// #endregion db-extract

// #region output

func runFixtureMode(path string, table *params.Table) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	config := f.ToReplayConfig()
	if err := replay.CheckReference(f.Reference, config); err != nil {
		fmt.Fprintf(os.Stderr, "reference drift: %v\n", err)
		return 1
	}

	return printComparison(replay.Replay(table, f.Cases, config))
}

// printComparison outputs a comparison table and returns exit code.
func printComparison(results []replay.ReplayResult) int {
	fmt.Printf("%-44s| %-20s| %-20s| %s\n", "Case", "Expected", "Replayed", "Match")
	fmt.Printf("%-44s+%-21s+%-21s+%s\n",
		"--------------------------------------------", "---------------------", "---------------------", "------")

	for _, r := range results {
		match := "OK"
		if r.Action != "match" {
			match = "DIFF"
		}
		fmt.Printf("%-44s| %-20.16f| %-20.16f| %s\n", r.Case, r.Expected, r.Actual, match)
		if r.Reason != "" && r.Action != "match" {
			fmt.Printf("%-44s  %s\n", "", r.Reason)
		}
	}

	s := replay.Summarize(results)
	fmt.Printf("\nSummary: %d total, %d match, %d drift, %d error (max diff %.3g)\n",
		s.TotalCases, s.Matches, s.Drifts, s.Errors, s.MaxDiff)

	if !s.Clean() {
		return 1
	}
	return 0
}

// #endregion output

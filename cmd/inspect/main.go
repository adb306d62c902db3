package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/mandeval/internal/benefit"
	"github.com/danielpatrickdp/mandeval/internal/logging"
	"github.com/danielpatrickdp/mandeval/internal/params"
	"github.com/danielpatrickdp/mandeval/internal/scenario"
	"github.com/danielpatrickdp/mandeval/internal/support"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to mandeval.db")
	last := flag.Int("last", 20, "show N most recent scenarios (or log entries with --log)")
	id := flag.String("scenario", "", "show single scenario detail")
	pinned := flag.Bool("pinned", false, "list pinned scenarios only")
	logMode := flag.Bool("log", false, "show the estimate log instead of scenarios")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	coefPath := flag.String("coefficients", "", "optional YAML coefficient table for the detail view's MRS")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/mandeval.db [--last N] [--scenario id] [--pinned] [--log] [--json] [--coefficients table.yaml]")
		os.Exit(2)
	}

	table := params.Default()
	if *coefPath != "" {
		t, err := params.LoadYAML(*coefPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load coefficients: %v\n", err)
			os.Exit(1)
		}
		table = t
	}

	store, err := scenario.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case *id != "":
		err = runDetailMode(store, table, *id, *jsonOut)
	case *logMode:
		err = runLogMode(store, *last, *jsonOut)
	default:
		err = runListMode(store, *last, *pinned, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Support    float64            `json:"support"`
	BCR        *float64           `json:"bcr,omitempty"`
	Assessment benefit.Assessment `json:"assessment"`
	Pinned     bool               `json:"pinned"`
	Panel      string             `json:"panel_fingerprint"`
	CreatedAt  string             `json:"created_at"`
}

func runListMode(store *scenario.Store, last int, pinnedOnly, jsonOut bool) error {
	var scenarios []scenario.Scenario
	var err error
	if pinnedOnly {
		scenarios, err = store.ListPinned()
	} else {
		scenarios, err = store.List(last)
	}
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		fmt.Fprintln(os.Stderr, "no scenarios found")
		return nil
	}

	rows := make([]listRow, len(scenarios))
	for i, sc := range scenarios {
		rows[i] = listRow{
			ID:         sc.ID,
			Name:       sc.Name,
			Support:    sc.Support,
			BCR:        sc.Result.BCR,
			Assessment: sc.Assessment,
			Pinned:     sc.Pinned,
			Panel:      sc.PanelFingerprint,
			CreatedAt:  sc.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-8s  %-36s  %7s  %6s  %-32s  %-3s  %-8s  %s\n",
		"ID", "Name", "Support", "BCR", "Assessment", "Pin", "Panel", "Time")
	fmt.Printf("%-8s+-%-36s+-%7s+-%6s+-%-32s+-%-3s+-%-8s+-%s\n",
		"--------", "------------------------------------", "-------", "------",
		"--------------------------------", "---", "--------", "--------------------")
	for _, r := range rows {
		pin := ""
		if r.Pinned {
			pin = "*"
		}
		fmt.Printf("%-8s  %-36s  %6.1f%%  %6s  %-32s  %-3s  %-8s  %s\n",
			shortID(r.ID), r.Name, r.Support*100, formatBCR(r.BCR), r.Assessment, pin, shortID(r.Panel), r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	Scenario   scenario.Scenario     `json:"scenario"`
	PerCapita  benefit.PerCapitaCost `json:"per_capita"`
	VSLMissing bool                  `json:"vsl_missing,omitempty"`
	MRS        []support.MRSRow      `json:"mrs,omitempty"`
}

// buildDetail assembles the detail view. MRS comes from table and is omitted
// when the table has no entry for the scenario.
func buildDetail(table *params.Table, sc scenario.Scenario) detailOutput {
	out := detailOutput{
		Scenario:   sc,
		PerCapita:  benefit.PerCapita(sc.Result.Cost, sc.Inputs.Population),
		VSLMissing: sc.VSLMissing(),
	}
	if entry, err := table.Lookup(sc.Config.Country, sc.Config.Severity); err == nil {
		out.MRS = support.MRS(entry, sc.Config)
	}
	return out
}

func runDetailMode(store *scenario.Store, table *params.Table, id string, jsonOut bool) error {
	sc, err := store.Get(id)
	if err != nil {
		return err
	}

	out := buildDetail(table, sc)

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Scenario:   %s\n", sc.ID)
	fmt.Printf("Name:       %s\n", sc.Name)
	if sc.Notes != "" {
		fmt.Printf("Notes:      %s\n", sc.Notes)
	}
	fmt.Printf("Created:    %s\n", sc.CreatedAt.Format("2006-01-02T15:04:05Z"))
	fmt.Printf("Panel:      seed %d, %d draws, %s\n", sc.Seed, sc.Draws, shortID(sc.PanelFingerprint))
	fmt.Printf("Design:     %s / %s / coverage %.0f%%\n", sc.Config.Scope, sc.Config.Exemptions, float64(sc.Config.Coverage)*100)
	fmt.Printf("Support:    %.1f%%\n", sc.Support*100)
	fmt.Printf("Assessment: %s\n", sc.Assessment)
	if out.VSLMissing {
		fmt.Printf("            value per life missing; benefit and BCR not meaningful\n")
	}

	cur := sc.Settings.CurrencyLabel
	fmt.Printf("\nCost–benefit (%s, %s):\n", cur, sc.Settings.Horizon)
	fmt.Printf("  Lives saved:  %.1f\n", sc.Result.LivesTotal)
	fmt.Printf("  Benefit:      %.0f\n", sc.Result.Benefit)
	fmt.Printf("  Cost:         %.0f\n", sc.Result.Cost)
	fmt.Printf("  Net benefit:  %.0f\n", sc.Result.NetBenefit)
	fmt.Printf("  BCR:          %s\n", formatBCR(sc.Result.BCR))
	if out.PerCapita.Per100k != nil {
		fmt.Printf("  Cost/100k:    %.0f\n", *out.PerCapita.Per100k)
	}

	if len(out.MRS) > 0 {
		fmt.Printf("\nLives per 100k offsetting each attribute change:\n")
		for _, m := range out.MRS {
			fmt.Printf("  %-12s %-12s -> %-12s %8.2f\n", m.Attribute, m.From, m.To, m.Value)
		}
	}
	return nil
}

// #endregion detail-mode

// #region log-mode

func runLogMode(store *scenario.Store, last int, jsonOut bool) error {
	entries, err := logging.RecentEstimates(store.DB(), last)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no estimate log entries found")
		return nil
	}

	fmt.Printf("%-20s  %-7s  %-18s  %8s  %8s  %s\n", "Time", "Trigger", "Outcome", "Support", "Dur(us)", "Reason")
	for _, e := range entries {
		sup := "n/a"
		if e.Support != nil {
			sup = fmt.Sprintf("%.4f", *e.Support)
		}
		fmt.Printf("%-20s  %-7s  %-18s  %8s  %8d  %s\n",
			e.CreatedAt.Format("2006-01-02T15:04:05Z"), e.TriggerType, e.Outcome, sup, e.DurationMicros, e.Reason)
	}
	return nil
}

// #endregion log-mode

// #region output

func formatBCR(bcr *float64) string {
	if bcr == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *bcr)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output

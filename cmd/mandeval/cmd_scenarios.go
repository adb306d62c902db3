package main

import (
	"fmt"

	"github.com/danielpatrickdp/mandeval/internal/scenario"
	"github.com/spf13/cobra"
)

// #region scenarios-cmd
func newScenariosCmd(a *app) *cobra.Command {
	var last int
	var pinnedOnly bool

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List and manage saved scenarios",
		Long: `List and manage saved scenarios.

Subcommands:
  pin <id>...       - Pin scenarios for comparison
  unpin <id>...     - Unpin scenarios
  delete <id>...    - Delete scenarios
  clear             - Delete every scenario
  compare <id>...   - Compare scenarios side by side`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var list []scenario.Scenario
			if pinnedOnly {
				list, err = store.ListPinned()
			} else {
				list, err = store.List(last)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(w, "No saved scenarios found.")
				return nil
			}
			for _, sc := range list {
				pin := " "
				if sc.Pinned {
					pin = "*"
				}
				fmt.Fprintf(w, "%s %s  %-40s  %5.1f%%  BCR %-6s  %s\n",
					pin, sc.ID, sc.Name, sc.Support*100, formatBCR(sc.Result.BCR), sc.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&last, "last", 20, "show N most recent scenarios")
	cmd.Flags().BoolVar(&pinnedOnly, "pinned", false, "show pinned scenarios only")

	cmd.AddCommand(
		newPinCmd(a, "pin", true),
		newPinCmd(a, "unpin", false),
		&cobra.Command{
			Use:   "delete <id>...",
			Short: "Delete scenarios",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.eachScenario(args, func(s *scenario.Store, id string) error {
					if err := s.Delete(id); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every saved scenario",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := a.openStore()
				if err != nil {
					return err
				}
				defer store.Close()
				n, err := store.Clear()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cleared %d scenarios\n", n)
				return nil
			},
		},
		newCompareCmd(a),
	)
	return cmd
}

func newPinCmd(a *app, use string, pinned bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: fmt.Sprintf("%s scenarios", use),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eachScenario(args, func(s *scenario.Store, id string) error {
				if err := s.SetPinned(id, pinned); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%sned %s\n", use, id)
				return nil
			})
		},
	}
}

func (a *app) eachScenario(ids []string, fn func(*scenario.Store, string) error) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	for _, id := range ids {
		if err := fn(store, id); err != nil {
			return err
		}
	}
	return nil
}
// #endregion scenarios-cmd

// #region compare-cmd
func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare [id]...",
		Short: "Compare scenarios side by side (default: pinned)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ids := args
			if len(ids) == 0 {
				pinned, err := store.ListPinned()
				if err != nil {
					return err
				}
				for _, sc := range pinned {
					ids = append(ids, sc.ID)
				}
			}
			if len(ids) < 2 {
				return fmt.Errorf("compare needs at least two scenarios, got %d", len(ids))
			}

			list, err := store.Compare(ids...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			row := func(label string, cell func(scenario.Scenario) string) {
				fmt.Fprintf(w, "%-14s", label)
				for _, sc := range list {
					fmt.Fprintf(w, "  %-22s", cell(sc))
				}
				fmt.Fprintln(w)
			}
			row("", func(sc scenario.Scenario) string { return shortID(sc.ID) })
			row("Country", func(sc scenario.Scenario) string { return sc.Config.Country.Label() })
			row("Severity", func(sc scenario.Scenario) string { return string(sc.Config.Severity) })
			row("Scope", func(sc scenario.Scenario) string { return string(sc.Config.Scope) })
			row("Exemptions", func(sc scenario.Scenario) string { return string(sc.Config.Exemptions) })
			row("Coverage", func(sc scenario.Scenario) string { return fmt.Sprintf("%.0f%%", float64(sc.Config.Coverage)*100) })
			row("Lives/100k", func(sc scenario.Scenario) string { return fmt.Sprintf("%g", sc.Config.LivesPer100k) })
			row("Support", func(sc scenario.Scenario) string { return fmt.Sprintf("%.1f%%", sc.Support*100) })
			row("Net benefit", func(sc scenario.Scenario) string { return fmt.Sprintf("%.0f", sc.Result.NetBenefit) })
			row("BCR", func(sc scenario.Scenario) string { return formatBCR(sc.Result.BCR) })
			row("Assessment", func(sc scenario.Scenario) string { return string(sc.Assessment) })
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
// #endregion compare-cmd

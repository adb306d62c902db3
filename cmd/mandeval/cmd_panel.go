package main

import (
	"fmt"

	"github.com/danielpatrickdp/mandeval/internal/model"
	"github.com/danielpatrickdp/mandeval/internal/rng"
	"github.com/spf13/cobra"
)

// #region panel-cmd
func newPanelCmd(a *app) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Print the head of the draw panel",
		Long: `Prints the first uniform of the generator and the first rows of the
standard-normal panel for the configured seed, plus the panel fingerprint.
Use it to confirm two installations share the same panel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := a.simulator()
			if err != nil {
				return err
			}
			panel := sim.Panel()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "seed:          %d\n", sim.Seed())
			fmt.Fprintf(w, "draws:         %d\n", sim.DrawCount())
			fmt.Fprintf(w, "first uniform: %.16f\n", rng.New(sim.Seed()).Next())
			fmt.Fprintf(w, "fingerprint:   %s\n\n", sim.Fingerprint())

			fmt.Fprintf(w, "%5s", "#")
			for _, c := range model.Coefficients() {
				fmt.Fprintf(w, "  %13s", c)
			}
			fmt.Fprintln(w)
			for i := 0; i < rows && i < len(panel); i++ {
				fmt.Fprintf(w, "%5d", i)
				for _, c := range model.Coefficients() {
					fmt.Fprintf(w, "  %13.9f", panel[i].Get(c))
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&rows, "rows", "n", 5, "number of panel rows to print")
	return cmd
}
// #endregion panel-cmd

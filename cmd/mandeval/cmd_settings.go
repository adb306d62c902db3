package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// #region settings-cmd
func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change valuation settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the saved valuation settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			st, err := store.LoadSettingsOr(a.cfg.Settings)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "horizon:        %s\n", st.Horizon)
			fmt.Fprintf(w, "currency_label: %s\n", st.CurrencyLabel)
			fmt.Fprintf(w, "vsl_scheme:     %s\n", st.VSLScheme)
			fmt.Fprintf(w, "value_per_life: %.0f\n", st.ValuePerLife)
			return nil
		},
	}

	var horizon, currency, scheme string
	var vpl float64
	set := &cobra.Command{
		Use:   "set",
		Short: "Change valuation settings; unset flags keep their current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			st, err := store.LoadSettingsOr(a.cfg.Settings)
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if f.Changed("horizon") {
				st.Horizon = horizon
			}
			if f.Changed("currency") {
				st.CurrencyLabel = currency
			}
			if f.Changed("vsl-scheme") {
				if scheme != "vsl" && scheme != "vsly" {
					return fmt.Errorf("invalid vsl scheme %q (valid: vsl, vsly)", scheme)
				}
				st.VSLScheme = scheme
			}
			if f.Changed("value-per-life") {
				if vpl < 0 {
					return fmt.Errorf("value per life must not be negative, got %v", vpl)
				}
				st.ValuePerLife = vpl
			}
			if err := store.SaveSettings(st); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "settings saved")
			return nil
		},
	}
	set.Flags().StringVar(&horizon, "horizon", "", "evaluation horizon, e.g. \"1 year\"")
	set.Flags().StringVar(&currency, "currency", "", "currency label")
	set.Flags().StringVar(&scheme, "vsl-scheme", "", "vsl or vsly")
	set.Flags().Float64Var(&vpl, "value-per-life", 0, "value per life saved")

	cmd.AddCommand(show, set)
	return cmd
}
// #endregion settings-cmd

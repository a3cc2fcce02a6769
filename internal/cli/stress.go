package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/creditrisk/report"
	"github.com/rustyeddy/creditrisk/risk"
)

func newStressCmd(a *app) *cobra.Command {
	var (
		in  portfolioFlags
		out outputFlags
	)

	cmd := &cobra.Command{
		Use:   "stress [scenario]",
		Short: "Compare a portfolio under normal and a stressed scenario",
		Long: `Run the portfolio under normal conditions and under one stress
scenario (severe by default) and show the change in exposure, RWA and
capital.

Example:
  creditrisk stress moderate --loans loans.csv --scores scores.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			scenario := risk.Severe
			if len(args) == 1 {
				scenario = args[0]
			}

			book, err := a.loadPortfolio(cmd.Context(), in)
			if err != nil {
				return err
			}
			st, err := a.engine().StressTest(cmd.Context(), book, scenario)
			if err != nil {
				return err
			}
			warnExcluded(cmd, st.Stressed)
			if err := a.record(in.LoansPath, st.Normal, st.Stressed); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.json() {
				return report.WriteJSON(w, st)
			}
			fmt.Fprintf(w, "Stress test: normal vs %s (x%.2f)\n", st.Stressed.Scenario, st.Stressed.Multiplier)
			if err := report.WriteComparison(w, st.Comparison); err != nil {
				return err
			}
			fmt.Fprintln(w)
			if err := report.WriteCategories(w, st.Stressed.Summary); err != nil {
				return err
			}
			if out.ShowLoans {
				fmt.Fprintln(w)
				return report.WriteLoans(w, st.Stressed.Loans)
			}
			return nil
		},
	}

	in.register(cmd)
	out.register(cmd)

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/creditrisk/report"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		in  portfolioFlags
		out outputFlags
	)

	cmd := &cobra.Command{
		Use:   "compare [scenario...]",
		Short: "Evaluate a portfolio under several scenarios",
		Long: `Evaluate the portfolio under each named scenario in parallel, or under
every configured scenario when none are named.

Example:
  creditrisk compare --loans loans.csv --scores scores.csv
  creditrisk compare normal severe --loans loans.csv --scores scores.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			book, err := a.loadPortfolio(cmd.Context(), in)
			if err != nil {
				return err
			}

			results, err := a.engine().EvaluateScenarios(cmd.Context(), book, args...)
			if err != nil {
				return err
			}
			for _, r := range results {
				warnExcluded(cmd, r)
			}
			if err := a.record(in.LoansPath, results...); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			stacks := report.Stack(results)
			if out.json() {
				return report.WriteJSON(w, struct {
					Results any `json:"results"`
					Stacks  any `json:"capital_stack"`
				}{results, stacks})
			}
			fmt.Fprintln(w, "Scenario comparison")
			if err := report.WriteScenarios(w, results); err != nil {
				return err
			}
			fmt.Fprintln(w, "\nCapital stack")
			return report.WriteCapitalStack(w, stacks)
		},
	}

	in.register(cmd)
	out.register(cmd)

	return cmd
}

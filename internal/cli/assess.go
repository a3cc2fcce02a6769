package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/creditrisk/report"
	"github.com/rustyeddy/creditrisk/risk"
)

func newAssessCmd(a *app) *cobra.Command {
	var (
		in       portfolioFlags
		out      outputFlags
		scenario string
		byWeight bool
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Compute EL, RWA and capital for a portfolio",
		Long: `Assess a scored portfolio under one scenario (normal by default).

Example:
  creditrisk assess --loans loans.csv --scores scores.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			book, err := a.loadPortfolio(cmd.Context(), in)
			if err != nil {
				return err
			}

			res, err := a.engine().Evaluate(book, scenario)
			if err != nil {
				return err
			}
			warnExcluded(cmd, res)
			if err := a.record(in.LoansPath, res); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.json() {
				return report.WriteJSON(w, res)
			}
			if err := report.WriteResult(w, res); err != nil {
				return err
			}
			if byWeight {
				fmt.Fprintln(w, "\nExposure by risk weight")
				if err := report.WriteExposureByWeight(w, risk.ExposureByWeight(res.Assessments())); err != nil {
					return err
				}
			}
			if out.ShowLoans {
				fmt.Fprintln(w)
				return report.WriteLoans(w, res.Loans)
			}
			return nil
		},
	}

	in.register(cmd)
	out.register(cmd)
	cmd.Flags().StringVar(&scenario, "scenario", risk.Normal, "Scenario to evaluate under")
	cmd.Flags().BoolVar(&byWeight, "by-weight", false, "Include the exposure by risk weight table")

	return cmd
}

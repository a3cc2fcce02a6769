package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/creditrisk/report"
	"github.com/rustyeddy/creditrisk/risk"
)

func newCapitalCmd(a *app) *cobra.Command {
	var (
		in        portfolioFlags
		out       outputFlags
		available float64
		rwa       float64
		scenario  string
	)

	cmd := &cobra.Command{
		Use:   "capital",
		Short: "Check available capital against Basel III minimums",
		Long: `Check available capital against the tier 1, total and buffered
requirements. RWA comes from --rwa or from evaluating --loans under
--scenario.

Examples:
  creditrisk capital --available 5000000 --rwa 40000000
  creditrisk capital --available 5000000 --loans loans.csv --scores scores.csv --scenario severe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("available") {
				return fmt.Errorf("--available is required")
			}

			if in.LoansPath != "" {
				if cmd.Flags().Changed("rwa") {
					return fmt.Errorf("use either --rwa or --loans, not both")
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
				rwa = res.Summary.Totals.RWA
			} else if !cmd.Flags().Changed("rwa") {
				return fmt.Errorf("one of --rwa or --loans is required")
			}

			d := a.cfg.Regime.Evaluate(available, rwa)
			if out.json() {
				return report.WriteJSON(cmd.OutOrStdout(), d)
			}
			return report.WriteDecision(cmd.OutOrStdout(), d)
		},
	}

	in.register(cmd)
	out.register(cmd)
	cmd.Flags().Float64Var(&available, "available", 0, "Available capital")
	cmd.Flags().Float64Var(&rwa, "rwa", 0, "Risk-weighted assets")
	cmd.Flags().StringVar(&scenario, "scenario", risk.Normal, "Scenario for --loans")

	return cmd
}

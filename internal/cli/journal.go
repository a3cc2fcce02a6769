package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/creditrisk/journal"
	"github.com/rustyeddy/creditrisk/report"
)

func newJournalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Query recorded runs",
		Long: `Query and display run records from the SQLite journal.

Subcommands:
  list  - List recent runs
  show  - Show one run, optionally with its loans

Examples:
  creditrisk journal list --limit 5
  creditrisk journal show 01HV6Q0ABCDEF --loans`,
	}

	cmd.AddCommand(
		newJournalListCmd(a),
		newJournalShowCmd(a),
	)
	return cmd
}

func (a *app) openSQLite() (*journal.SQLiteJournal, error) {
	if a.cfg.Journal.Type != "sqlite" {
		return nil, fmt.Errorf("journal queries need a sqlite journal, config has %q", a.cfg.Journal.Type)
	}
	j, err := journal.NewSQLite(a.cfg.Journal.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func newJournalListCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := a.openSQLite()
			if err != nil {
				return err
			}
			defer j.Close()

			runs, err := j.ListRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("query runs: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), journal.FormatRunsOrg(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list (0 for all)")
	return cmd
}

func newJournalShowCmd(a *app) *cobra.Command {
	var withLoans bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := a.openSQLite()
			if err != nil {
				return err
			}
			defer j.Close()

			w := cmd.OutOrStdout()
			org, err := j.ExportRunOrg(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get run: %w", err)
			}
			fmt.Fprintln(w, org)
			if !withLoans {
				return nil
			}

			rows, err := j.ListLoansByRunID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("query loans: %w", err)
			}
			return report.WriteLoanRecords(w, rows)
		},
	}

	cmd.Flags().BoolVar(&withLoans, "loans", false, "also list the run's loans")
	return cmd
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/creditrisk/loans"
	"github.com/rustyeddy/creditrisk/model"
	"github.com/rustyeddy/creditrisk/risk"
)

// portfolioFlags select the loan inputs. PDs come either from a scored
// CSV or from feature columns run through the configured model.
type portfolioFlags struct {
	LoansPath    string
	ScoresPath   string
	FeaturesPath string
}

func (p *portfolioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.LoansPath, "loans", "", "Raw loan CSV with id, loan_amnt, home_ownership (required)")
	cmd.Flags().StringVar(&p.ScoresPath, "scores", "", "Scored CSV with id, pd")
	cmd.Flags().StringVar(&p.FeaturesPath, "features", "", "Feature CSV scored with the configured model")
}

func (a *app) loadPortfolio(ctx context.Context, p portfolioFlags) ([]risk.Loan, error) {
	if p.LoansPath == "" {
		return nil, fmt.Errorf("--loans is required")
	}
	if p.ScoresPath == "" && p.FeaturesPath == "" {
		return nil, fmt.Errorf("one of --scores or --features is required")
	}

	raw, err := readFile(p.LoansPath, loans.ReadRaw)
	if err != nil {
		return nil, err
	}
	if rate, ok := loans.DefaultRate(raw); ok && rate > 0 {
		a.log.Info("observed default rate", zap.Float64("rate", rate), zap.Int("loans", len(raw)))
	}

	var scored []loans.Scored
	if p.ScoresPath != "" {
		if scored, err = readFile(p.ScoresPath, loans.ReadScored); err != nil {
			return nil, err
		}
	} else {
		if scored, err = a.score(ctx, raw, p.FeaturesPath); err != nil {
			return nil, err
		}
	}

	out, err := loans.Join(raw, scored, a.cfg.LGD)
	if err != nil {
		return nil, fmt.Errorf("join %s: %w", p.LoansPath, err)
	}
	a.log.Debug("loaded portfolio", zap.Int("loans", len(out)), zap.String("source", p.LoansPath))
	return out, nil
}

func (a *app) score(ctx context.Context, raw []loans.Raw, path string) ([]loans.Scored, error) {
	m, names, ok := a.cfg.Scorer()
	if !ok {
		return nil, fmt.Errorf("--features needs model.features in the config")
	}
	rows, err := readFile(path, func(r io.Reader) ([]model.Row, error) {
		return loans.ReadFeatures(r, names)
	})
	if err != nil {
		return nil, err
	}
	pds, err := model.ScoreAll(ctx, m, rows)
	if err != nil {
		return nil, fmt.Errorf("score %s: %w", path, err)
	}
	scored, err := loans.FromScores(raw, pds)
	if err != nil {
		return nil, fmt.Errorf("join %s: %w", path, err)
	}
	return scored, nil
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// outputFlags select the report format.
type outputFlags struct {
	Format    string
	ShowLoans bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Format, "output", "o", "text", "Output format: text|json")
	cmd.Flags().BoolVar(&o.ShowLoans, "show-loans", false, "Include per-loan rows in text output")
}

func (o outputFlags) validate() error {
	switch strings.ToLower(o.Format) {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("--output must be text or json, got %q", o.Format)
}

func (o outputFlags) json() bool {
	return strings.EqualFold(o.Format, "json")
}

func warnExcluded(cmd *cobra.Command, r risk.Result) {
	if len(r.Excluded) == 0 {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d invalid loan(s) excluded under %s, first: %v\n",
		len(r.Excluded), r.Scenario, r.Excluded[0])
}


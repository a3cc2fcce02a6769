package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/creditrisk/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  creditrisk config init -o creditrisk.yaml
  creditrisk config validate -f creditrisk.yaml`,
	}

	cmd.AddCommand(
		newConfigInitCmd(),
		newConfigValidateCmd(),
	)
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if err := cfg.SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "✓ Created default configuration: %s\n", output)
			fmt.Fprintln(w, "\nEdit the file and run with:")
			fmt.Fprintf(w, "  creditrisk --config %s assess --loans loans.csv --scores scores.csv\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "creditrisk.yaml", "output config file path")
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "✓ Configuration valid: %s\n", path)
			fmt.Fprintf(w, "  Regime: tier1 %.2f%%, total %.2f%%, buffer %.2f%%\n",
				cfg.Regime.Tier1Ratio*100, cfg.Regime.TotalRatio*100, cfg.Regime.ConservationBuffer*100)

			names := cfg.Scenarios.Names()
			fmt.Fprint(w, "  Scenarios:")
			for _, n := range names {
				fmt.Fprintf(w, " %s=%.2f", n, cfg.Scenarios[n])
			}
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  Model features: %d\n", len(cfg.Model.Features))
			fmt.Fprintf(w, "  Journal: %s\n", cfg.Journal.Type)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "path to config file (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

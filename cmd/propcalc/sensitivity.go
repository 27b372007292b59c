package main

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/config"
	"github.com/rgehrsitz/propcalc/internal/output"
)

func sensitivityCmd() *cobra.Command {
	var (
		param    string
		minValue string
		maxValue string
		steps    int
		scenario string
		format   string
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "sensitivity [input-file]",
		Short: "Sweep one input across a range and report how the figures move",
		Long: `Sweep one input across an evenly spaced range.

Examples:
  propcalc sensitivity house.yaml --param interest_rate --min 0.03 --max 0.06 --steps 7
  propcalc sensitivity house.yaml --param loan_duration_years --min 10 --max 30 --steps 3 --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(calculation.SweepParameters(), param) {
				return fmt.Errorf("unknown parameter %q (available: %v)", param, calculation.SweepParameters())
			}
			lo, err := decimal.NewFromString(minValue)
			if err != nil {
				return fmt.Errorf("invalid --min: %w", err)
			}
			hi, err := decimal.NewFromString(maxValue)
			if err != nil {
				return fmt.Errorf("invalid --max: %w", err)
			}

			cfg, err := loadConfiguration(args[0])
			if err != nil {
				return err
			}
			inputs, err := config.ResolveScenario(cfg, scenario)
			if err != nil {
				return err
			}

			engine := calculation.NewEngine()
			engine.Workers = workers
			result, err := engine.Sweep(cmd.Context(), inputs, calculation.SensitivityParameter{
				Name:  param,
				Min:   lo,
				Max:   hi,
				Steps: steps,
			})
			if err != nil {
				return err
			}

			data, err := output.FormatSensitivity(result, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&param, "param", "p", calculation.ParamInterestRate, "Input to sweep")
	cmd.Flags().StringVar(&minValue, "min", "", "Lowest value of the range")
	cmd.Flags().StringVar(&maxValue, "max", "", "Highest value of the range")
	cmd.Flags().IntVar(&steps, "steps", 5, "Number of evenly spaced values")
	cmd.Flags().StringVarP(&scenario, "scenario", "s", "", "Scenario to vary (default: the configuration defaults)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().IntVar(&workers, "workers", 4, "Maximum concurrent evaluations")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}

package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/propcalc/internal/breakeven"
	"github.com/rgehrsitz/propcalc/internal/config"
)

func affordCmd() *cobra.Command {
	var (
		budget   string
		basis    string
		target   string
		scenario string
		format   string
		debug    bool
	)

	cmd := &cobra.Command{
		Use:   "afford [input-file]",
		Short: "Find the price, rate, down payment or term that fits a monthly budget",
		Long: `Solve for the input value at which the monthly payment meets a budget.

Without --target every input is solved and recommendations are printed.

Examples:
  propcalc afford house.yaml --budget 1500
  propcalc afford house.yaml --budget 1300 --target loan_term
  propcalc afford house.yaml --budget 1100 --basis pi --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(budget)
			if err != nil {
				return fmt.Errorf("invalid --budget: %w", err)
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q (use table or json)", format)
			}

			cfg, err := loadConfiguration(args[0])
			if err != nil {
				return err
			}
			inputs, err := config.ResolveScenario(cfg, scenario)
			if err != nil {
				return err
			}

			solver := breakeven.NewDefaultSolver(newEngine(debug).Logger)
			constraints := breakeven.Constraints{
				MonthlyBudget: amount,
				Basis:         breakeven.Basis(basis),
			}
			formatter := &breakeven.TableFormatter{}

			var out string
			if target == "" {
				mr, err := solver.SolveAll(cmd.Context(), inputs, constraints)
				if err != nil {
					return err
				}
				if format == "json" {
					out, err = breakeven.FormatJSON(mr)
					if err != nil {
						return err
					}
				} else {
					out = formatter.FormatMulti(mr)
				}
			} else {
				res, err := solver.Solve(cmd.Context(), breakeven.Request{
					Base:        inputs,
					Target:      breakeven.Target(target),
					Constraints: constraints,
				})
				if err != nil {
					return err
				}
				if format == "json" {
					out, err = breakeven.FormatJSON(res)
					if err != nil {
						return err
					}
				} else {
					out = formatter.Format(res)
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&budget, "budget", "", "Monthly budget in dollars")
	cmd.Flags().StringVar(&basis, "basis", string(breakeven.BasisTotal), "Figure held to the budget: total or pi")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Solve one input: cost_price, interest_rate, down_payment or loan_term")
	cmd.Flags().StringVarP(&scenario, "scenario", "s", "", "Scenario to solve (defaults when empty)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log solver progress")
	_ = cmd.MarkFlagRequired("budget")

	return cmd
}

package breakeven

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rgehrsitz/propcalc/internal/domain"
)

// SolveAll solves every target for the same base and budget. Targets run
// concurrently; results keep the order of AllTargets.
func (s *Solver) SolveAll(ctx context.Context, base domain.LoanInputs, constraints Constraints) (*MultiResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}
	_, baseFigure, err := monthlyFigure(base, constraints.basis())
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve_all", Message: "base scenario is not computable", Cause: err}
	}

	results := make([]Result, len(AllTargets))
	g, ctx := errgroup.WithContext(ctx)
	if s.Options.Workers > 0 {
		g.SetLimit(s.Options.Workers)
	}
	for i, target := range AllTargets {
		g.Go(func() error {
			res, err := s.Solve(ctx, Request{
				Base:          base,
				Target:        target,
				Constraints:   constraints,
				MaxIterations: s.Options.MaxIterations,
				Tolerance:     s.Options.Tolerance,
			})
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mr := &MultiResult{
		Budget:     constraints.MonthlyBudget,
		Basis:      constraints.basis(),
		BaseFigure: baseFigure,
		Results:    results,
	}
	mr.Recommendations = generateRecommendations(mr)
	return mr, nil
}

func generateRecommendations(mr *MultiResult) []string {
	recommendations := []string{}

	headroom := mr.Budget.Sub(mr.BaseFigure)
	if headroom.IsNegative() {
		recommendations = append(recommendations,
			fmt.Sprintf("Current scenario exceeds the budget by $%s per month", headroom.Abs().StringFixed(2)))
	} else {
		recommendations = append(recommendations,
			fmt.Sprintf("Current scenario leaves $%s per month of headroom", headroom.StringFixed(2)))
	}

	for _, r := range mr.Results {
		if !r.Success {
			recommendations = append(recommendations,
				fmt.Sprintf("No %s in the search range meets the budget", strings.ReplaceAll(string(r.Target), "_", " ")))
			continue
		}
		recommendations = append(recommendations, describe(r))
	}
	return recommendations
}

// describe states a successful result in one line
func describe(r Result) string {
	switch r.Target {
	case TargetCostPrice:
		return fmt.Sprintf("Highest price within budget: $%s", r.Value.StringFixed(2))
	case TargetInterestRate:
		return fmt.Sprintf("Highest interest rate within budget: %s%%", r.Value.Shift(2).StringFixed(3))
	case TargetDownPayment:
		return fmt.Sprintf("Smallest down payment within budget: %s%% ($%s)",
			r.Value.Shift(2).StringFixed(2), r.Summary.DownPayment.StringFixed(2))
	case TargetLoanTerm:
		return fmt.Sprintf("Shortest term within budget: %s years", r.Value.String())
	}
	return fmt.Sprintf("%s: %s", r.Target, r.Value.String())
}

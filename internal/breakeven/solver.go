package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/rgehrsitz/propcalc/internal/transform"
)

var two = decimal.NewFromInt(2)

// Default search bounds when the constraints leave them open
var (
	defaultMinRate        = decimal.Zero
	defaultMaxRate        = decimal.NewFromFloat(0.30)
	defaultMinDownPayment = decimal.NewFromFloat(0.01)
	defaultMaxDownPayment = decimal.NewFromFloat(0.95)
	defaultMinTermYears   = 1
	defaultMaxTermYears   = 40
)

// Solver finds the input values that meet a monthly budget
type Solver struct {
	Logger  calculation.Logger
	Options SolverOptions
}

// NewSolver creates a new solver
func NewSolver(logger calculation.Logger, options SolverOptions) *Solver {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Solver{Logger: logger, Options: options}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(logger calculation.Logger) *Solver {
	return NewSolver(logger, DefaultSolverOptions())
}

// searchSpace describes a continuous input and how to set it
type searchSpace struct {
	op         string
	lo, hi     decimal.Decimal
	places     int32 // resolution of the solved value
	increasing bool  // the monthly figure rises with the value
	baseValue  decimal.Decimal
	apply      func(decimal.Decimal) transform.InputTransform
}

// Solve runs the solver for a single target
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if err := calculation.ValidateInputs(req.Base); err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "base scenario is not computable", Cause: err}
	}

	c := req.Constraints
	switch req.Target {
	case TargetCostPrice:
		return s.bisect(ctx, req, searchSpace{
			op:         "solve_cost_price",
			lo:         bound(c.MinPrice, decimal.NewFromInt(1)),
			hi:         bound(c.MaxPrice, req.Base.CostPrice.Mul(decimal.NewFromInt(10))),
			places:     2,
			increasing: true,
			baseValue:  req.Base.CostPrice,
			apply:      func(v decimal.Decimal) transform.InputTransform { return &transform.SetPrice{Price: v} },
		})
	case TargetInterestRate:
		return s.bisect(ctx, req, searchSpace{
			op:         "solve_interest_rate",
			lo:         bound(c.MinRate, defaultMinRate),
			hi:         bound(c.MaxRate, defaultMaxRate),
			places:     6,
			increasing: true,
			baseValue:  req.Base.AnnualInterestRate,
			apply:      func(v decimal.Decimal) transform.InputTransform { return &transform.SetRate{Rate: v} },
		})
	case TargetDownPayment:
		return s.bisect(ctx, req, searchSpace{
			op:         "solve_down_payment",
			lo:         bound(c.MinDownPayment, defaultMinDownPayment),
			hi:         bound(c.MaxDownPayment, defaultMaxDownPayment),
			places:     4,
			increasing: false,
			baseValue:  req.Base.DownPaymentFraction,
			apply: func(v decimal.Decimal) transform.InputTransform {
				return &transform.SetDownPayment{Fraction: v}
			},
		})
	case TargetLoanTerm:
		return s.scanTerm(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported target: %s", req.Target),
		}
	}
}

func bound(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}

// monthlyFigure evaluates inputs and returns the figure compared with the budget
func monthlyFigure(inputs domain.LoanInputs, basis Basis) (domain.InvestmentSummary, decimal.Decimal, error) {
	summary, err := calculation.ComputeInvestmentSummary(inputs)
	if err != nil {
		return summary, decimal.Zero, err
	}
	if basis == BasisPI {
		return summary, summary.MonthlyPayment, nil
	}
	return summary, summary.TotalMonthlyPayment, nil
}

// bisect narrows the interval between a value within budget and one over it.
// The returned value is always within budget.
func (s *Solver) bisect(ctx context.Context, req Request, sp searchSpace) (*Result, error) {
	budget := req.Constraints.MonthlyBudget
	basis := req.Constraints.basis()

	try := func(v decimal.Decimal) (*Result, error) {
		inputs, err := transform.ApplyTransforms(req.Base, []transform.InputTransform{sp.apply(v)})
		if err != nil {
			return nil, &BreakEvenError{Operation: sp.op, Message: "failed to apply " + v.String(), Cause: err}
		}
		summary, figure, err := monthlyFigure(inputs, basis)
		if err != nil {
			return nil, &BreakEvenError{Operation: sp.op, Message: "failed to calculate scenario", Cause: err}
		}
		return newResult(req, sp.baseValue, v, inputs, summary, figure), nil
	}

	// The cheaper end of the range is the feasible starting point
	within, over := sp.lo, sp.hi
	if !sp.increasing {
		within, over = sp.hi, sp.lo
	}

	best, err := try(within)
	if err != nil {
		return nil, err
	}
	iterations := 1
	if best.MonthlyFigure.GreaterThan(budget) {
		best.Iterations = iterations
		best.ConvergenceInfo = fmt.Sprintf("budget is below the smallest payment in range ($%s)", best.MonthlyFigure.StringFixed(2))
		return best, nil
	}

	edge, err := try(over)
	if err != nil {
		return nil, err
	}
	iterations++
	if edge.MonthlyFigure.LessThanOrEqual(budget) {
		edge.Success = true
		edge.Iterations = iterations
		edge.ConvergenceInfo = "budget covers the whole search range"
		return edge, nil
	}

	for iterations < req.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mid := within.Add(over).Div(two).Round(sp.places)
		if mid.Equal(within) || mid.Equal(over) {
			best.Success = true
			best.Iterations = iterations
			best.ConvergenceInfo = "search interval exhausted at the value resolution"
			return best, nil
		}

		iterations++
		result, err := try(mid)
		if err != nil {
			return nil, err
		}
		if result.MonthlyFigure.GreaterThan(budget) {
			over = mid
			continue
		}

		within, best = mid, result
		if budget.Sub(result.MonthlyFigure).LessThan(req.Tolerance) {
			best.Success = true
			best.Iterations = iterations
			best.ConvergenceInfo = fmt.Sprintf("converged within $%s of the budget", req.Tolerance.StringFixed(2))
			s.Logger.Debugf("%s: %s after %d iterations", sp.op, mid.String(), iterations)
			return best, nil
		}
	}

	best.Iterations = iterations
	best.ConvergenceInfo = fmt.Sprintf("max iterations (%d) reached", req.MaxIterations)
	return best, nil
}

// scanTerm walks the terms upward and returns the first within budget
func (s *Solver) scanTerm(ctx context.Context, req Request) (*Result, error) {
	const op = "solve_loan_term"

	minYears, maxYears := defaultMinTermYears, defaultMaxTermYears
	if req.Constraints.MinTermYears != nil {
		minYears = *req.Constraints.MinTermYears
	}
	if req.Constraints.MaxTermYears != nil {
		maxYears = *req.Constraints.MaxTermYears
	}
	if minYears < 1 {
		return nil, &BreakEvenError{Operation: op, Message: "min_term_years must be at least 1"}
	}

	baseValue := decimal.NewFromInt(int64(req.Base.LoanDurationYears))
	var last *Result
	iterations := 0
	for years := minYears; years <= maxYears; years++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iterations++

		inputs, err := transform.ApplyTransforms(req.Base, []transform.InputTransform{&transform.SetTerm{Years: years}})
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: fmt.Sprintf("failed to apply %d years", years), Cause: err}
		}
		summary, figure, err := monthlyFigure(inputs, req.Constraints.basis())
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "failed to calculate scenario", Cause: err}
		}

		last = newResult(req, baseValue, decimal.NewFromInt(int64(years)), inputs, summary, figure)
		last.Iterations = iterations
		if figure.LessThanOrEqual(req.Constraints.MonthlyBudget) {
			last.Success = true
			last.ConvergenceInfo = "shortest term within budget"
			return last, nil
		}
	}

	if last == nil {
		return nil, &BreakEvenError{Operation: op, Message: "empty term range"}
	}
	last.ConvergenceInfo = fmt.Sprintf("no term up to %d years fits the budget", maxYears)
	return last, nil
}

func newResult(req Request, baseValue, value decimal.Decimal, inputs domain.LoanInputs, summary domain.InvestmentSummary, figure decimal.Decimal) *Result {
	return &Result{
		Target:            req.Target,
		Value:             value,
		Inputs:            inputs,
		Summary:           summary,
		MonthlyFigure:     figure,
		Budget:            req.Constraints.MonthlyBudget,
		BaseValue:         baseValue,
		ValueDiffFromBase: value.Sub(baseValue),
	}
}

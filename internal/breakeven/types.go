// Package breakeven solves for the loan input at which a scenario's monthly
// payment meets a budget.
package breakeven

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/propcalc/internal/domain"
)

// Target defines which input the solver varies
type Target string

const (
	TargetCostPrice    Target = "cost_price"    // highest price within budget
	TargetInterestRate Target = "interest_rate" // highest rate within budget
	TargetDownPayment  Target = "down_payment"  // smallest down payment within budget
	TargetLoanTerm     Target = "loan_term"     // shortest term within budget
)

// AllTargets lists every target in reporting order
var AllTargets = []Target{TargetCostPrice, TargetInterestRate, TargetDownPayment, TargetLoanTerm}

// Basis selects the monthly figure held to the budget
type Basis string

const (
	BasisTotal Basis = "total" // principal and interest plus tax and insurance
	BasisPI    Basis = "pi"    // principal and interest only
)

// Constraints bound the search. Nil bounds use the solver defaults.
type Constraints struct {
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	Basis         Basis           `json:"basis"`

	MinPrice *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice *decimal.Decimal `json:"max_price,omitempty"`

	MinRate *decimal.Decimal `json:"min_rate,omitempty"`
	MaxRate *decimal.Decimal `json:"max_rate,omitempty"`

	MinDownPayment *decimal.Decimal `json:"min_down_payment,omitempty"`
	MaxDownPayment *decimal.Decimal `json:"max_down_payment,omitempty"`

	MinTermYears *int `json:"min_term_years,omitempty"`
	MaxTermYears *int `json:"max_term_years,omitempty"`
}

// Request defines the parameters for one solver run
type Request struct {
	Base          domain.LoanInputs
	Target        Target
	Constraints   Constraints
	MaxIterations int             // bisection steps before giving up
	Tolerance     decimal.Decimal // dollars below the budget that count as converged
}

// Result holds the solution for one target
type Result struct {
	Target          Target `json:"target"`
	Success         bool   `json:"success"`
	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergence_info"`

	// Value is the solved input: a price, a rate, a down payment fraction, or
	// a term in years for TargetLoanTerm.
	Value         decimal.Decimal          `json:"value"`
	Inputs        domain.LoanInputs        `json:"inputs"`
	Summary       domain.InvestmentSummary `json:"summary"`
	MonthlyFigure decimal.Decimal          `json:"monthly_figure"`
	Budget        decimal.Decimal          `json:"budget"`

	BaseValue         decimal.Decimal `json:"base_value"`
	ValueDiffFromBase decimal.Decimal `json:"value_diff_from_base"`
}

// MultiResult collects the solutions for several targets
type MultiResult struct {
	Budget          decimal.Decimal `json:"budget"`
	Basis           Basis           `json:"basis"`
	BaseFigure      decimal.Decimal `json:"base_figure"`
	Results         []Result        `json:"results"`
	Recommendations []string        `json:"recommendations"`
}

// SolverOptions configures the solver
type SolverOptions struct {
	Tolerance     decimal.Decimal // convergence tolerance in dollars per month
	MaxIterations int
	Workers       int // concurrent targets in SolveAll; <= 0 means unlimited
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.01),
		MaxIterations: 100,
		Workers:       4,
	}
}

// Validate checks that the constraints are internally consistent
func (c *Constraints) Validate() error {
	if !c.MonthlyBudget.IsPositive() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "monthly budget must be positive"}
	}
	switch c.Basis {
	case "", BasisTotal, BasisPI:
	default:
		return &BreakEvenError{Operation: "validate_constraints", Message: "unknown basis " + string(c.Basis)}
	}

	ranges := []struct {
		name     string
		min, max *decimal.Decimal
	}{
		{"price", c.MinPrice, c.MaxPrice},
		{"rate", c.MinRate, c.MaxRate},
		{"down_payment", c.MinDownPayment, c.MaxDownPayment},
	}
	for _, r := range ranges {
		if r.min != nil && r.max != nil && r.min.GreaterThan(*r.max) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "min_" + r.name + " cannot be greater than max_" + r.name,
			}
		}
	}
	if c.MinTermYears != nil && c.MaxTermYears != nil && *c.MinTermYears > *c.MaxTermYears {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_term_years cannot be greater than max_term_years",
		}
	}
	return nil
}

func (c *Constraints) basis() Basis {
	if c.Basis == "" {
		return BasisTotal
	}
	return c.Basis
}

// BreakEvenError represents errors from the solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}

package calculation

import (
	"context"
	"fmt"
	"sort"

	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Parameters that can be swept
const (
	ParamInterestRate        = "interest_rate"
	ParamLoanDurationYears   = "loan_duration_years"
	ParamDownPaymentFraction = "down_payment_fraction"
	ParamCostPrice           = "cost_price"
	ParamAppreciationRate    = "appreciation_rate"
	ParamPropertyTaxRate     = "property_tax_rate"
)

var sweepSetters = map[string]func(*domain.LoanInputs, decimal.Decimal){
	ParamInterestRate:        func(in *domain.LoanInputs, v decimal.Decimal) { in.AnnualInterestRate = v },
	ParamLoanDurationYears:   func(in *domain.LoanInputs, v decimal.Decimal) { in.LoanDurationYears = int(v.Round(0).IntPart()) },
	ParamDownPaymentFraction: func(in *domain.LoanInputs, v decimal.Decimal) { in.DownPaymentFraction = v },
	ParamCostPrice:           func(in *domain.LoanInputs, v decimal.Decimal) { in.CostPrice = v },
	ParamAppreciationRate:    func(in *domain.LoanInputs, v decimal.Decimal) { in.AppreciationRate = v },
	ParamPropertyTaxRate:     func(in *domain.LoanInputs, v decimal.Decimal) { in.PropertyTaxRate = v },
}

// SweepParameters lists the parameter names accepted by Sweep
func SweepParameters() []string {
	names := make([]string, 0, len(sweepSetters))
	for name := range sweepSetters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SensitivityParameter describes an evenly spaced range for one input
type SensitivityParameter struct {
	Name  string
	Min   decimal.Decimal
	Max   decimal.Decimal
	Steps int
}

// Values returns the evenly spaced values from Min to Max inclusive
func (p SensitivityParameter) Values() []decimal.Decimal {
	if p.Steps == 1 {
		return []decimal.Decimal{p.Min}
	}
	step := p.Max.Sub(p.Min).Div(decimal.NewFromInt(int64(p.Steps - 1)))
	values := make([]decimal.Decimal, p.Steps)
	for i := range values {
		values[i] = p.Min.Add(step.Mul(decimal.NewFromInt(int64(i))))
	}
	values[p.Steps-1] = p.Max
	return values
}

// SensitivityPoint holds the key figures for one swept value
type SensitivityPoint struct {
	Value               decimal.Decimal `json:"value"`
	MonthlyPayment      decimal.Decimal `json:"monthlyPayment"`
	TotalMonthlyPayment decimal.Decimal `json:"totalMonthlyPayment"`
	TotalInterest       decimal.Decimal `json:"totalInterest"`
	FutureValue         decimal.Decimal `json:"futureValue"`
}

// SensitivityResult is the outcome of a single-parameter sweep
type SensitivityResult struct {
	Parameter      string             `json:"parameter"`
	Points         []SensitivityPoint `json:"points"`
	InterestSpread decimal.Decimal    `json:"interestSpread"` // max - min total interest
}

// Sweep evaluates base with param varied across its range. Steps run
// concurrently; the result keeps the order of param.Values().
func (e *Engine) Sweep(ctx context.Context, base domain.LoanInputs, param SensitivityParameter) (*SensitivityResult, error) {
	const op = "sensitivity_sweep"

	set, ok := sweepSetters[param.Name]
	if !ok {
		return nil, invalidInput(op, "parameter", "unknown parameter %q", param.Name)
	}
	if param.Steps < 1 {
		return nil, invalidInput(op, "steps", "must be at least 1, got %d", param.Steps)
	}
	if param.Min.GreaterThan(param.Max) {
		return nil, invalidInput(op, "range", "min %s exceeds max %s", param.Min.String(), param.Max.String())
	}

	values := param.Values()
	points := make([]SensitivityPoint, len(values))

	g, ctx := errgroup.WithContext(ctx)
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	}
	for i, v := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			inputs := base
			set(&inputs, v)
			summary, err := ComputeInvestmentSummary(inputs)
			if err != nil {
				return fmt.Errorf("%s=%s: %w", param.Name, v.String(), err)
			}
			points[i] = SensitivityPoint{
				Value:               v,
				MonthlyPayment:      summary.MonthlyPayment,
				TotalMonthlyPayment: summary.TotalMonthlyPayment,
				TotalInterest:       summary.TotalInterest,
				FutureValue:         summary.FutureValue,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.logger().Warnf("sweep over %s failed: %v", param.Name, err)
		return nil, err
	}

	minInterest, maxInterest := points[0].TotalInterest, points[0].TotalInterest
	for _, p := range points[1:] {
		minInterest = decimal.Min(minInterest, p.TotalInterest)
		maxInterest = decimal.Max(maxInterest, p.TotalInterest)
	}

	e.logger().Debugf("sweep over %s: %d points", param.Name, len(points))
	return &SensitivityResult{
		Parameter:      param.Name,
		Points:         points,
		InterestSpread: maxInterest.Sub(minInterest),
	}, nil
}

package calculation

import (
	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ValidateInputs checks every input the summary depends on. Domain violations
// are reported before degenerate divisors so a caller fixing one error at a
// time sees the bad inputs first.
func ValidateInputs(in domain.LoanInputs) error {
	const op = "compute_investment_summary"

	if !in.CostPrice.IsPositive() {
		return invalidInput(op, "cost_price", "must be positive, got %s", in.CostPrice.String())
	}
	if !in.DownPaymentFraction.IsPositive() || in.DownPaymentFraction.GreaterThanOrEqual(one) {
		return invalidInput(op, "down_payment_fraction", "must be in (0, 1), got %s", in.DownPaymentFraction.String())
	}
	if in.AnnualInterestRate.IsNegative() || in.AnnualInterestRate.GreaterThanOrEqual(one) {
		return invalidInput(op, "annual_interest_rate", "must be in [0, 1), got %s", in.AnnualInterestRate.String())
	}
	if in.LoanDurationYears <= 0 {
		return invalidInput(op, "loan_duration_years", "must be positive, got %d", in.LoanDurationYears)
	}
	if in.PropertyTaxRate.IsNegative() || in.PropertyTaxRate.GreaterThanOrEqual(one) {
		return invalidInput(op, "property_tax_rate", "must be in [0, 1), got %s", in.PropertyTaxRate.String())
	}
	if in.InsuranceRate.IsNegative() || in.InsuranceRate.GreaterThanOrEqual(one) {
		return invalidInput(op, "insurance_rate", "must be in [0, 1), got %s", in.InsuranceRate.String())
	}
	if in.MonthlyExpenses.IsNegative() {
		return invalidInput(op, "monthly_expenses", "cannot be negative, got %s", in.MonthlyExpenses.String())
	}
	if in.AppreciationRate.LessThan(one.Neg()) || in.AppreciationRate.GreaterThan(one) {
		return invalidInput(op, "appreciation_rate", "must be in [-1, 1], got %s", in.AppreciationRate.String())
	}
	if in.PriceRangeLow.IsNegative() || in.PriceRangeHigh.IsNegative() {
		return invalidInput(op, "price_range", "bounds cannot be negative")
	}
	if in.PriceRangeLow.GreaterThan(in.PriceRangeHigh) {
		return invalidInput(op, "price_range", "low %s exceeds high %s", in.PriceRangeLow.String(), in.PriceRangeHigh.String())
	}
	if in.ResaleMarkup.IsNegative() {
		return invalidInput(op, "resale_markup", "cannot be negative, got %s", in.ResaleMarkup.String())
	}
	if in.ProjectionYears < 0 {
		return invalidInput(op, "projection_years", "cannot be negative, got %d", in.ProjectionYears)
	}

	if in.MonthlyExpenses.IsZero() {
		return divideByZero(op, "monthly_expenses", "break-even point is undefined when monthly expenses are zero")
	}
	if in.PriceRangeLow.IsZero() {
		return divideByZero(op, "price_range_low", "price spread is undefined when the low end of the range is zero")
	}

	return nil
}

// ComputeInvestmentSummary derives every summary metric for the given inputs
func ComputeInvestmentSummary(in domain.LoanInputs) (domain.InvestmentSummary, error) {
	summary, _, err := compute(in)
	return summary, err
}

// Analyze runs the full computation and bundles the result under name
func Analyze(name string, in domain.LoanInputs) (*domain.Analysis, error) {
	summary, schedule, err := compute(in)
	if err != nil {
		return nil, err
	}
	return &domain.Analysis{
		ScenarioName: name,
		Inputs:       in,
		Summary:      summary,
		Schedule:     schedule,
	}, nil
}

func compute(in domain.LoanInputs) (domain.InvestmentSummary, []domain.AmortizationYearRecord, error) {
	if err := ValidateInputs(in); err != nil {
		return domain.InvestmentSummary{}, nil, err
	}

	downPayment := in.CostPrice.Mul(in.DownPaymentFraction)
	loanAmount := in.CostPrice.Sub(downPayment)

	monthlyPayment, err := ComputeMonthlyPayment(loanAmount, in.AnnualInterestRate, in.LoanDurationYears)
	if err != nil {
		return domain.InvestmentSummary{}, nil, err
	}

	monthlyTax := in.CostPrice.Mul(in.PropertyTaxRate).Div(twelve)
	monthlyInsurance := in.CostPrice.Mul(in.InsuranceRate).Div(twelve)
	totalMonthly := monthlyPayment.Add(monthlyTax).Add(monthlyInsurance)

	schedulePayment := monthlyPayment
	if in.IncludeEscrowInSchedule {
		schedulePayment = totalMonthly
	}
	schedule, err := BuildAmortizationSchedule(loanAmount, MonthlyRate(in.AnnualInterestRate), schedulePayment, in.LoanDurationYears)
	if err != nil {
		return domain.InvestmentSummary{}, nil, err
	}

	payments := decimal.NewFromInt(int64(in.TotalPayments()))
	markup := in.EffectiveResaleMarkup()
	salePrice := in.CostPrice.Mul(one.Add(markup))
	breakEvenMonths := in.CostPrice.Div(in.MonthlyExpenses)
	years := in.EffectiveProjectionYears()

	summary := domain.InvestmentSummary{
		DownPayment:         downPayment,
		LoanAmount:          loanAmount,
		MonthlyPayment:      monthlyPayment,
		MonthlyTax:          monthlyTax,
		MonthlyInsurance:    monthlyInsurance,
		TotalMonthlyPayment: totalMonthly,
		TotalPaid:           totalMonthly.Mul(payments),
		TotalInterest:       monthlyPayment.Mul(payments).Sub(loanAmount),
		AveragePrice:        in.PriceRangeLow.Add(in.PriceRangeHigh).Div(decimal.NewFromInt(2)),
		PriceSpreadPercent:  in.PriceRangeHigh.Sub(in.PriceRangeLow).Div(in.PriceRangeLow).Mul(hundred),
		ROIPercent:          salePrice.Sub(in.CostPrice).Div(in.CostPrice).Mul(hundred),
		BreakEvenMonths:     breakEvenMonths,
		BreakEvenYears:      breakEvenMonths.Div(twelve),
		FutureValue:         in.CostPrice.Mul(one.Add(in.AppreciationRate).Pow(decimal.NewFromInt(int64(years)))),
		FutureValueYears:    years,
	}

	return summary, schedule, nil
}

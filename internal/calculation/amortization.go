package calculation

import (
	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/shopspring/decimal"
)

const monthsPerYear = 12

// scheduleScale bounds the fractional digits carried between monthly steps.
// decimal multiplication is exact, so without it the balance would gain
// digits every month.
const scheduleScale = 12

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(monthsPerYear)
)

// MonthlyRate converts an annual interest rate to the monthly rate
func MonthlyRate(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.Div(twelve)
}

// ComputeMonthlyPayment returns the fixed principal and interest payment that
// fully repays loanAmount over durationYears of monthly payments.
//
//	r = annualRate / 12, n = durationYears * 12
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// The annuity formula is undefined at r = 0, where the payment is P / n.
func ComputeMonthlyPayment(loanAmount, annualRate decimal.Decimal, durationYears int) (decimal.Decimal, error) {
	const op = "compute_monthly_payment"
	if durationYears <= 0 {
		return decimal.Zero, invalidInput(op, "loan_duration_years", "must be positive, got %d", durationYears)
	}
	if loanAmount.IsNegative() {
		return decimal.Zero, invalidInput(op, "loan_amount", "cannot be negative, got %s", loanAmount.String())
	}
	if annualRate.IsNegative() || annualRate.GreaterThanOrEqual(one) {
		return decimal.Zero, invalidInput(op, "annual_interest_rate", "must be in [0, 1), got %s", annualRate.String())
	}

	n := decimal.NewFromInt(int64(durationYears * monthsPerYear))
	r := MonthlyRate(annualRate)
	if r.IsZero() {
		return loanAmount.Div(n), nil
	}

	factor := one.Add(r).Pow(n)
	return loanAmount.Mul(r).Mul(factor).Div(factor.Sub(one)), nil
}

// BuildAmortizationSchedule walks the loan month by month and reports one
// record per year. Each month: interest = balance * monthlyRate,
// principal = payment - interest, balance -= principal.
//
// A payment smaller than the month's interest yields negative principal and
// a growing balance. That is reported as is.
func BuildAmortizationSchedule(loanAmount, monthlyRate, payment decimal.Decimal, durationYears int) ([]domain.AmortizationYearRecord, error) {
	const op = "build_amortization_schedule"
	if durationYears <= 0 {
		return nil, invalidInput(op, "loan_duration_years", "must be positive, got %d", durationYears)
	}
	if loanAmount.IsNegative() {
		return nil, invalidInput(op, "loan_amount", "cannot be negative, got %s", loanAmount.String())
	}
	if monthlyRate.IsNegative() {
		return nil, invalidInput(op, "monthly_rate", "cannot be negative, got %s", monthlyRate.String())
	}

	schedule := make([]domain.AmortizationYearRecord, 0, durationYears)
	balance := loanAmount

	for year := 1; year <= durationYears; year++ {
		interestForYear := decimal.Zero
		principalForYear := decimal.Zero

		for month := 0; month < monthsPerYear; month++ {
			interest := balance.Mul(monthlyRate).Round(scheduleScale)
			principal := payment.Sub(interest)
			balance = balance.Sub(principal)

			interestForYear = interestForYear.Add(interest)
			principalForYear = principalForYear.Add(principal)
		}

		schedule = append(schedule, domain.AmortizationYearRecord{
			Year:             year,
			InterestPaid:     interestForYear,
			PrincipalPaid:    principalForYear,
			RemainingBalance: balance,
		})
	}

	return schedule, nil
}

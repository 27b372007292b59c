package transform

import (
	"fmt"

	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// AdjustRate moves the annual interest rate by Delta, e.g. -0.005 for half a point
type AdjustRate struct {
	Delta decimal.Decimal
}

func (t *AdjustRate) Name() string { return "adjust_rate" }

func (t *AdjustRate) Description() string {
	return fmt.Sprintf("Adjust interest rate by %s points", t.Delta.Shift(2).String())
}

func (t *AdjustRate) Validate(base domain.LoanInputs) error {
	r := base.AnnualInterestRate.Add(t.Delta)
	if r.IsNegative() || r.GreaterThanOrEqual(one) {
		return newTransformError(t.Name(), "resulting rate %s is outside [0, 1)", r.String())
	}
	return nil
}

func (t *AdjustRate) Apply(base domain.LoanInputs) (domain.LoanInputs, error) {
	base.AnnualInterestRate = base.AnnualInterestRate.Add(t.Delta)
	return base, nil
}

// SetRate replaces the annual interest rate
type SetRate struct {
	Rate decimal.Decimal
}

func (t *SetRate) Name() string { return "set_rate" }

func (t *SetRate) Description() string {
	return fmt.Sprintf("Set interest rate to %s%%", t.Rate.Shift(2).String())
}

func (t *SetRate) Validate(domain.LoanInputs) error {
	if t.Rate.IsNegative() || t.Rate.GreaterThanOrEqual(one) {
		return newTransformError(t.Name(), "rate %s is outside [0, 1)", t.Rate.String())
	}
	return nil
}

func (t *SetRate) Apply(base domain.LoanInputs) (domain.LoanInputs, error) {
	base.AnnualInterestRate = t.Rate
	return base, nil
}

// SetTerm replaces the loan duration
type SetTerm struct {
	Years int
}

func (t *SetTerm) Name() string { return "set_term" }

func (t *SetTerm) Description() string {
	return fmt.Sprintf("Set loan term to %d years", t.Years)
}

func (t *SetTerm) Validate(domain.LoanInputs) error {
	if t.Years <= 0 {
		return newTransformError(t.Name(), "years must be positive, got %d", t.Years)
	}
	return nil
}

func (t *SetTerm) Apply(base domain.LoanInputs) (domain.LoanInputs, error) {
	base.LoanDurationYears = t.Years
	return base, nil
}

// SetDownPayment replaces the down payment fraction
type SetDownPayment struct {
	Fraction decimal.Decimal
}

func (t *SetDownPayment) Name() string { return "set_down_payment" }

func (t *SetDownPayment) Description() string {
	return fmt.Sprintf("Put %s%% down", t.Fraction.Shift(2).String())
}

func (t *SetDownPayment) Validate(domain.LoanInputs) error {
	if !t.Fraction.IsPositive() || t.Fraction.GreaterThanOrEqual(one) {
		return newTransformError(t.Name(), "fraction %s is outside (0, 1)", t.Fraction.String())
	}
	return nil
}

func (t *SetDownPayment) Apply(base domain.LoanInputs) (domain.LoanInputs, error) {
	base.DownPaymentFraction = t.Fraction
	return base, nil
}

// AdjustPrice scales the cost price by (1 + Fraction); -0.05 negotiates 5% off
type AdjustPrice struct {
	Fraction decimal.Decimal
}

func (t *AdjustPrice) Name() string { return "adjust_price" }

func (t *AdjustPrice) Description() string {
	return fmt.Sprintf("Change cost price by %s%%", t.Fraction.Shift(2).String())
}

func (t *AdjustPrice) Validate(domain.LoanInputs) error {
	if t.Fraction.LessThanOrEqual(one.Neg()) {
		return newTransformError(t.Name(), "fraction %s would make the price non-positive", t.Fraction.String())
	}
	return nil
}

func (t *AdjustPrice) Apply(base domain.LoanInputs) (domain.LoanInputs, error) {
	base.CostPrice = base.CostPrice.Mul(one.Add(t.Fraction)).Round(2)
	return base, nil
}

// SetPrice replaces the cost price
type SetPrice struct {
	Price decimal.Decimal
}

func (t *SetPrice) Name() string { return "set_price" }

func (t *SetPrice) Description() string {
	return fmt.Sprintf("Set cost price to $%s", t.Price.StringFixed(2))
}

func (t *SetPrice) Validate(domain.LoanInputs) error {
	if !t.Price.IsPositive() {
		return newTransformError(t.Name(), "price %s must be positive", t.Price.String())
	}
	return nil
}

func (t *SetPrice) Apply(base domain.LoanInputs) (domain.LoanInputs, error) {
	base.CostPrice = t.Price
	return base, nil
}

// SetAppreciation replaces the annual appreciation rate
type SetAppreciation struct {
	Rate decimal.Decimal
}

func (t *SetAppreciation) Name() string { return "set_appreciation" }

func (t *SetAppreciation) Description() string {
	return fmt.Sprintf("Assume %s%% annual appreciation", t.Rate.Shift(2).String())
}

func (t *SetAppreciation) Validate(domain.LoanInputs) error {
	if t.Rate.LessThan(one.Neg()) || t.Rate.GreaterThan(one) {
		return newTransformError(t.Name(), "rate %s is outside [-1, 1]", t.Rate.String())
	}
	return nil
}

func (t *SetAppreciation) Apply(base domain.LoanInputs) (domain.LoanInputs, error) {
	base.AppreciationRate = t.Rate
	return base, nil
}

// SetEscrow toggles amortizing with tax and insurance included
type SetEscrow struct {
	Include bool
}

func (t *SetEscrow) Name() string { return "set_escrow" }

func (t *SetEscrow) Description() string {
	if t.Include {
		return "Amortize with tax and insurance included"
	}
	return "Amortize with principal and interest only"
}

func (t *SetEscrow) Validate(domain.LoanInputs) error { return nil }

func (t *SetEscrow) Apply(base domain.LoanInputs) (domain.LoanInputs, error) {
	base.IncludeEscrowInSchedule = t.Include
	return base, nil
}

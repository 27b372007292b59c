package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/domain"
)

// FormValues holds the raw text entered in the input form
type FormValues struct {
	CostPrice       string
	MonthlyExpenses string
	PriceRangeLow   string
	PriceRangeHigh  string
}

// StarterInputs are the slider positions used with form-collected values
func StarterInputs() domain.LoanInputs {
	return domain.LoanInputs{
		DownPaymentFraction: dec("0.20"),
		AnnualInterestRate:  dec("0.04"),
		LoanDurationYears:   30,
		PropertyTaxRate:     dec("0.012"),
		InsuranceRate:       dec("0.005"),
		AppreciationRate:    dec("0.03"),
	}
}

// NewInputForm asks for the values that have no sensible slider range
func NewInputForm(v *FormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("propcalc").
				Description("Enter the property figures. Rates and term are adjusted afterwards."),
			huh.NewInput().
				Title("Cost price").
				Placeholder("230157.34").
				Value(&v.CostPrice).
				Validate(positiveAmount),
			huh.NewInput().
				Title("Monthly expenses").
				Description("Used for the break-even estimate").
				Placeholder("1500").
				Value(&v.MonthlyExpenses).
				Validate(positiveAmount),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Comparable price range: low").
				Value(&v.PriceRangeLow).
				Validate(positiveAmount),
			huh.NewInput().
				Title("Comparable price range: high").
				Value(&v.PriceRangeHigh).
				Validate(positiveAmount),
		),
	)
}

func positiveAmount(s string) error {
	d, err := parseAmount(s)
	if err != nil {
		return err
	}
	if !d.IsPositive() {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

// parseAmount accepts "$230,157.34" style input
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if clean == "" {
		return decimal.Zero, fmt.Errorf("a value is required")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	return d, nil
}

// Inputs merges the entered values into StarterInputs and validates them
func (v FormValues) Inputs() (domain.LoanInputs, error) {
	in := StarterInputs()
	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"cost price", v.CostPrice, &in.CostPrice},
		{"monthly expenses", v.MonthlyExpenses, &in.MonthlyExpenses},
		{"price range low", v.PriceRangeLow, &in.PriceRangeLow},
		{"price range high", v.PriceRangeHigh, &in.PriceRangeHigh},
	}
	for _, f := range fields {
		d, err := parseAmount(f.raw)
		if err != nil {
			return domain.LoanInputs{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = d
	}
	if err := calculation.ValidateInputs(in); err != nil {
		return domain.LoanInputs{}, err
	}
	return in, nil
}

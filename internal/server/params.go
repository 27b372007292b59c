package server

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/propcalc/internal/domain"
)

// ParamError reports a query parameter that could not be parsed
type ParamError struct {
	Name  string
	Value string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("query parameter %s=%q: %v", e.Name, e.Value, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }

// ParseInputs overlays the loan fields present in q onto defaults. Parameter
// names match the YAML and JSON field names of LoanInputs.
func ParseInputs(q url.Values, defaults domain.LoanInputs) (domain.LoanInputs, error) {
	in := defaults

	decimals := []struct {
		name string
		dst  *decimal.Decimal
	}{
		{"cost_price", &in.CostPrice},
		{"down_payment_fraction", &in.DownPaymentFraction},
		{"annual_interest_rate", &in.AnnualInterestRate},
		{"property_tax_rate", &in.PropertyTaxRate},
		{"insurance_rate", &in.InsuranceRate},
		{"monthly_expenses", &in.MonthlyExpenses},
		{"appreciation_rate", &in.AppreciationRate},
		{"price_range_low", &in.PriceRangeLow},
		{"price_range_high", &in.PriceRangeHigh},
		{"resale_markup", &in.ResaleMarkup},
	}
	for _, f := range decimals {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return in, &ParamError{Name: f.name, Value: raw, Err: err}
		}
		*f.dst = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"loan_duration_years", &in.LoanDurationYears},
		{"projection_years", &in.ProjectionYears},
	}
	for _, f := range ints {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return in, &ParamError{Name: f.name, Value: raw, Err: err}
		}
		*f.dst = v
	}

	if raw := q.Get("include_escrow_in_schedule"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return in, &ParamError{Name: "include_escrow_in_schedule", Value: raw, Err: err}
		}
		in.IncludeEscrowInSchedule = v
	}

	return in, nil
}

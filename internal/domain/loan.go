package domain

import (
	"github.com/shopspring/decimal"
)

// Defaults applied when optional loan fields are left at their zero value
var (
	DefaultResaleMarkup     = decimal.NewFromFloat(0.10)
	DefaultProjectionYears  = 5
	DefaultDownPaymentRatio = decimal.NewFromFloat(0.20)
)

// LoanInputs is the complete set of scalar inputs for a single property analysis
type LoanInputs struct {
	CostPrice           decimal.Decimal `yaml:"cost_price" json:"cost_price"`
	DownPaymentFraction decimal.Decimal `yaml:"down_payment_fraction" json:"down_payment_fraction"`
	AnnualInterestRate  decimal.Decimal `yaml:"annual_interest_rate" json:"annual_interest_rate"`
	LoanDurationYears   int             `yaml:"loan_duration_years" json:"loan_duration_years"`
	PropertyTaxRate     decimal.Decimal `yaml:"property_tax_rate" json:"property_tax_rate"`
	InsuranceRate       decimal.Decimal `yaml:"insurance_rate" json:"insurance_rate"`
	MonthlyExpenses     decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses"`
	AppreciationRate    decimal.Decimal `yaml:"appreciation_rate" json:"appreciation_rate"`
	PriceRangeLow       decimal.Decimal `yaml:"price_range_low" json:"price_range_low"`
	PriceRangeHigh      decimal.Decimal `yaml:"price_range_high" json:"price_range_high"`

	// Optional knobs; zero means "use the default"
	ResaleMarkup    decimal.Decimal `yaml:"resale_markup,omitempty" json:"resale_markup,omitempty"`
	ProjectionYears int             `yaml:"projection_years,omitempty" json:"projection_years,omitempty"`

	// IncludeEscrowInSchedule amortizes with P&I plus monthly tax and insurance
	// instead of the P&I payment alone.
	IncludeEscrowInSchedule bool `yaml:"include_escrow_in_schedule,omitempty" json:"include_escrow_in_schedule,omitempty"`
}

// EffectiveResaleMarkup returns the resale markup, falling back to the default
func (li LoanInputs) EffectiveResaleMarkup() decimal.Decimal {
	if li.ResaleMarkup.IsZero() {
		return DefaultResaleMarkup
	}
	return li.ResaleMarkup
}

// EffectiveProjectionYears returns the future value horizon, falling back to the default
func (li LoanInputs) EffectiveProjectionYears() int {
	if li.ProjectionYears == 0 {
		return DefaultProjectionYears
	}
	return li.ProjectionYears
}

// TotalPayments returns the number of monthly payments over the loan term
func (li LoanInputs) TotalPayments() int {
	return li.LoanDurationYears * 12
}

// AmortizationYearRecord aggregates twelve monthly payments of one loan year
type AmortizationYearRecord struct {
	Year             int             `json:"year"`
	InterestPaid     decimal.Decimal `json:"interestPaid"`
	PrincipalPaid    decimal.Decimal `json:"principalPaid"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// Payment returns the total amount paid toward the loan during the year
func (r AmortizationYearRecord) Payment() decimal.Decimal {
	return r.InterestPaid.Add(r.PrincipalPaid)
}

// IsNegativeAmortization reports whether the balance grew during the year
func (r AmortizationYearRecord) IsNegativeAmortization() bool {
	return r.PrincipalPaid.IsNegative()
}

// InvestmentSummary holds the scalar metrics derived from a LoanInputs snapshot
type InvestmentSummary struct {
	DownPayment         decimal.Decimal `json:"downPayment"`
	LoanAmount          decimal.Decimal `json:"loanAmount"`
	MonthlyPayment      decimal.Decimal `json:"monthlyPayment"` // principal + interest
	MonthlyTax          decimal.Decimal `json:"monthlyTax"`
	MonthlyInsurance    decimal.Decimal `json:"monthlyInsurance"`
	TotalMonthlyPayment decimal.Decimal `json:"totalMonthlyPayment"`
	TotalPaid           decimal.Decimal `json:"totalPaid"`
	TotalInterest       decimal.Decimal `json:"totalInterest"`

	AveragePrice       decimal.Decimal `json:"averagePrice"`
	PriceSpreadPercent decimal.Decimal `json:"priceSpreadPercent"`
	ROIPercent         decimal.Decimal `json:"roiPercent"`
	BreakEvenMonths    decimal.Decimal `json:"breakEvenMonths"`
	BreakEvenYears     decimal.Decimal `json:"breakEvenYears"`
	FutureValue        decimal.Decimal `json:"futureValue"`
	FutureValueYears   int             `json:"futureValueYears"`
}

// Analysis bundles the inputs of one scenario with everything derived from them
type Analysis struct {
	ScenarioName string                   `json:"scenarioName"`
	Inputs       LoanInputs               `json:"inputs"`
	Summary      InvestmentSummary        `json:"summary"`
	Schedule     []AmortizationYearRecord `json:"schedule"`
}

// FinalBalance returns the remaining balance after the last scheduled year
func (a *Analysis) FinalBalance() decimal.Decimal {
	if len(a.Schedule) == 0 {
		return decimal.Zero
	}
	return a.Schedule[len(a.Schedule)-1].RemainingBalance
}

// PayoffYear returns the first year whose closing balance is at or below zero,
// or 0 when the loan is still outstanding at the end of the schedule.
func (a *Analysis) PayoffYear() int {
	tolerance := a.Summary.LoanAmount.Mul(decimal.New(1, -6))
	for _, rec := range a.Schedule {
		if rec.RemainingBalance.LessThanOrEqual(tolerance) {
			return rec.Year
		}
	}
	return 0
}

package domain

import (
	"github.com/shopspring/decimal"
)

// Configuration is the top-level structure of a scenario file
type Configuration struct {
	Defaults  LoanInputs `yaml:"defaults" json:"defaults"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// Scenario names a variation of the default inputs
type Scenario struct {
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Overrides   LoanOverrides `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// LoanOverrides replaces individual default inputs; nil fields keep the default
type LoanOverrides struct {
	CostPrice               *decimal.Decimal `yaml:"cost_price,omitempty" json:"cost_price,omitempty"`
	DownPaymentFraction     *decimal.Decimal `yaml:"down_payment_fraction,omitempty" json:"down_payment_fraction,omitempty"`
	AnnualInterestRate      *decimal.Decimal `yaml:"annual_interest_rate,omitempty" json:"annual_interest_rate,omitempty"`
	LoanDurationYears       *int             `yaml:"loan_duration_years,omitempty" json:"loan_duration_years,omitempty"`
	PropertyTaxRate         *decimal.Decimal `yaml:"property_tax_rate,omitempty" json:"property_tax_rate,omitempty"`
	InsuranceRate           *decimal.Decimal `yaml:"insurance_rate,omitempty" json:"insurance_rate,omitempty"`
	MonthlyExpenses         *decimal.Decimal `yaml:"monthly_expenses,omitempty" json:"monthly_expenses,omitempty"`
	AppreciationRate        *decimal.Decimal `yaml:"appreciation_rate,omitempty" json:"appreciation_rate,omitempty"`
	PriceRangeLow           *decimal.Decimal `yaml:"price_range_low,omitempty" json:"price_range_low,omitempty"`
	PriceRangeHigh          *decimal.Decimal `yaml:"price_range_high,omitempty" json:"price_range_high,omitempty"`
	ResaleMarkup            *decimal.Decimal `yaml:"resale_markup,omitempty" json:"resale_markup,omitempty"`
	ProjectionYears         *int             `yaml:"projection_years,omitempty" json:"projection_years,omitempty"`
	IncludeEscrowInSchedule *bool            `yaml:"include_escrow_in_schedule,omitempty" json:"include_escrow_in_schedule,omitempty"`
}

// Apply returns a copy of base with every set override applied
func (o LoanOverrides) Apply(base LoanInputs) LoanInputs {
	out := base
	setDecimal(&out.CostPrice, o.CostPrice)
	setDecimal(&out.DownPaymentFraction, o.DownPaymentFraction)
	setDecimal(&out.AnnualInterestRate, o.AnnualInterestRate)
	setDecimal(&out.PropertyTaxRate, o.PropertyTaxRate)
	setDecimal(&out.InsuranceRate, o.InsuranceRate)
	setDecimal(&out.MonthlyExpenses, o.MonthlyExpenses)
	setDecimal(&out.AppreciationRate, o.AppreciationRate)
	setDecimal(&out.PriceRangeLow, o.PriceRangeLow)
	setDecimal(&out.PriceRangeHigh, o.PriceRangeHigh)
	setDecimal(&out.ResaleMarkup, o.ResaleMarkup)
	if o.LoanDurationYears != nil {
		out.LoanDurationYears = *o.LoanDurationYears
	}
	if o.ProjectionYears != nil {
		out.ProjectionYears = *o.ProjectionYears
	}
	if o.IncludeEscrowInSchedule != nil {
		out.IncludeEscrowInSchedule = *o.IncludeEscrowInSchedule
	}
	return out
}

func setDecimal(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

// FindScenario returns the scenario with the given name
func (c *Configuration) FindScenario(name string) (*Scenario, bool) {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}

// ScenarioInputs resolves a scenario's overrides against the configuration defaults
func (c *Configuration) ScenarioInputs(s *Scenario) LoanInputs {
	return s.Overrides.Apply(c.Defaults)
}

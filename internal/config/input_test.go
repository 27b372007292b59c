package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
defaults:
  cost_price: 230157.34
  down_payment_fraction: 0.20
  annual_interest_rate: 0.04
  loan_duration_years: 30
  property_tax_rate: 0.01
  insurance_rate: 0.005
  monthly_expenses: 1500
  appreciation_rate: 0.05
  price_range_low: 200000
  price_range_high: 250000
scenarios:
  - name: base
    description: thirty year fixed
  - name: fifteen-year
    overrides:
      loan_duration_years: 15
      annual_interest_rate: 0.035
  - name: escrow
    overrides:
      include_escrow_in_schedule: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "230157.34", config.Defaults.CostPrice.String())
	assert.Equal(t, 30, config.Defaults.LoanDurationYears)
	require.Len(t, config.Scenarios, 3)
	assert.Equal(t, "thirty year fixed", config.Scenarios[0].Description)

	fifteen := config.Scenarios[1]
	require.NotNil(t, fifteen.Overrides.LoanDurationYears)
	assert.Equal(t, 15, *fifteen.Overrides.LoanDurationYears)
	assert.Equal(t, "0.035", fifteen.Overrides.AnnualInterestRate.String())
	assert.Nil(t, fifteen.Overrides.CostPrice)
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	config, err := NewInputParser().LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(writeConfig(t, "invalid: yaml: content: [unclosed"))

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_Parse_UnknownField(t *testing.T) {
	_, err := NewInputParser().Parse([]byte(`
defaults:
  cost_prise: 100000
`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cost_prise")
}

func TestInputParser_Parse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		contains string
	}{
		{
			name:     "missing defaults",
			yaml:     "scenarios: []\n",
			contains: "defaults",
		},
		{
			name: "scenario without name",
			yaml: validYAML + `  - overrides:
      loan_duration_years: 10
`,
			contains: "scenario 3: name is required",
		},
		{
			name: "duplicate scenario",
			yaml: validYAML + `  - name: base
`,
			contains: `duplicate name "base"`,
		},
		{
			name: "override breaks domain",
			yaml: validYAML + `  - name: all-cash
    overrides:
      down_payment_fraction: 1
`,
			contains: `scenario "all-cash"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := NewInputParser().Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Nil(t, config)
			assert.Contains(t, err.Error(), "configuration validation failed")
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestInputParser_Parse_PreservesErrorKind(t *testing.T) {
	_, err := NewInputParser().Parse([]byte(validYAML + `  - name: no-expenses
    overrides:
      monthly_expenses: 0
`))
	assert.ErrorIs(t, err, calculation.ErrDivideByZero)
}

func TestResolveScenario(t *testing.T) {
	config, err := NewInputParser().Parse([]byte(validYAML))
	require.NoError(t, err)

	inputs, err := ResolveScenario(config, "fifteen-year")
	require.NoError(t, err)
	assert.Equal(t, 15, inputs.LoanDurationYears)
	assert.Equal(t, "0.035", inputs.AnnualInterestRate.String())
	assert.Equal(t, "230157.34", inputs.CostPrice.String(), "unset overrides keep the default")

	inputs, err = ResolveScenario(config, "escrow")
	require.NoError(t, err)
	assert.True(t, inputs.IncludeEscrowInSchedule)
	assert.False(t, config.Defaults.IncludeEscrowInSchedule, "defaults are not mutated")

	inputs, err = ResolveScenario(config, "")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults, inputs)

	_, err = ResolveScenario(config, "unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: [base fifteen-year escrow]")
}

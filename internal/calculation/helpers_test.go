package calculation

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// sampleInputs is the reference purchase used throughout the tests
func sampleInputs() domain.LoanInputs {
	return domain.LoanInputs{
		CostPrice:           dec("230157.34"),
		DownPaymentFraction: dec("0.20"),
		AnnualInterestRate:  dec("0.04"),
		LoanDurationYears:   30,
		PropertyTaxRate:     dec("0.01"),
		InsuranceRate:       dec("0.005"),
		MonthlyExpenses:     dec("1500"),
		AppreciationRate:    dec("0.05"),
		PriceRangeLow:       dec("200000"),
		PriceRangeHigh:      dec("250000"),
	}
}

func assertDecimalNear(t *testing.T, expected string, actual decimal.Decimal, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, dec(expected).InexactFloat64(), actual.InexactFloat64(), delta, msgAndArgs...)
}

// TestLogger records formatted messages by level
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...any) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...any) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...any) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...any) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

func (tl *TestLogger) count(prefix string) int {
	n := 0
	for _, m := range tl.messages {
		if strings.HasPrefix(m, prefix) {
			n++
		}
	}
	return n
}

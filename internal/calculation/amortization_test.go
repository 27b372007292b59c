package calculation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMonthlyPayment(t *testing.T) {
	tests := []struct {
		name     string
		loan     string
		rate     string
		years    int
		expected string
		delta    float64
	}{
		{"reference purchase", "184125.872", "0.04", 30, "879.0451", 0.01},
		{"ten year loan at six percent", "100000", "0.06", 10, "1110.2050", 0.001},
		{"fifteen year loan at seven percent", "250000", "0.07", 15, "2247.0707", 0.01},
		{"zero loan", "0", "0.05", 30, "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := ComputeMonthlyPayment(dec(tt.loan), dec(tt.rate), tt.years)
			require.NoError(t, err)
			assertDecimalNear(t, tt.expected, payment, tt.delta)
		})
	}
}

func TestComputeMonthlyPayment_ZeroInterestIsExact(t *testing.T) {
	payment, err := ComputeMonthlyPayment(dec("120000"), decimal.Zero, 10)
	require.NoError(t, err)
	assert.True(t, payment.Equal(dec("1000")), "expected exactly 1000, got %s", payment)

	payment, err = ComputeMonthlyPayment(dec("184125.872"), decimal.Zero, 30)
	require.NoError(t, err)
	assertDecimalNear(t, "511.46075555", payment, 1e-6)
}

func TestComputeMonthlyPayment_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		loan  string
		rate  string
		years int
		field string
	}{
		{"zero duration", "100000", "0.04", 0, "loan_duration_years"},
		{"negative duration", "100000", "0.04", -5, "loan_duration_years"},
		{"negative loan", "-1", "0.04", 30, "loan_amount"},
		{"negative rate", "100000", "-0.01", 30, "annual_interest_rate"},
		{"rate of one", "100000", "1", 30, "annual_interest_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := ComputeMonthlyPayment(dec(tt.loan), dec(tt.rate), tt.years)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.False(t, errors.Is(err, ErrDivideByZero))
			assert.True(t, payment.IsZero())

			var ce *CalculationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
			assert.Equal(t, "compute_monthly_payment", ce.Operation)
		})
	}
}

func TestBuildAmortizationSchedule_ReferencePurchase(t *testing.T) {
	loan := dec("184125.872")
	rate := dec("0.04")
	payment, err := ComputeMonthlyPayment(loan, rate, 30)
	require.NoError(t, err)

	schedule, err := BuildAmortizationSchedule(loan, MonthlyRate(rate), payment, 30)
	require.NoError(t, err)
	require.Len(t, schedule, 30)

	first := schedule[0]
	assert.Equal(t, 1, first.Year)
	assertDecimalNear(t, "7306.02", first.InterestPaid, 0.01)
	assertDecimalNear(t, "3242.52", first.PrincipalPaid, 0.01)
	assertDecimalNear(t, "180883.35", first.RemainingBalance, 0.01)
	assertDecimalNear(t, "177508.72", schedule[1].RemainingBalance, 0.01)

	tolerance := loan.Mul(dec("0.000001"))
	final := schedule[len(schedule)-1].RemainingBalance
	assert.True(t, final.Abs().LessThanOrEqual(tolerance), "final balance %s not within %s of zero", final, tolerance)
}

func TestBuildAmortizationSchedule_Invariants(t *testing.T) {
	cases := []struct {
		loan  string
		rate  string
		years int
	}{
		{"184125.872", "0.04", 30},
		{"100000", "0.06", 10},
		{"350000", "0.0725", 15},
		{"50000", "0.001", 5},
		{"1", "0.12", 1},
	}

	for _, c := range cases {
		loan, rate := dec(c.loan), dec(c.rate)
		payment, err := ComputeMonthlyPayment(loan, rate, c.years)
		require.NoError(t, err)

		schedule, err := BuildAmortizationSchedule(loan, MonthlyRate(rate), payment, c.years)
		require.NoError(t, err)
		require.Len(t, schedule, c.years)

		yearlyPayment := payment.Mul(decimal.NewFromInt(12))
		previous := loan
		for i, rec := range schedule {
			assert.Equal(t, i+1, rec.Year, "years ascend from 1")
			assert.True(t, rec.RemainingBalance.LessThanOrEqual(previous),
				"balance grew in year %d for loan %s", rec.Year, c.loan)
			diff := rec.InterestPaid.Add(rec.PrincipalPaid).Sub(yearlyPayment).Abs()
			assert.True(t, diff.LessThan(dec("0.000001")),
				"year %d paid %s, expected %s", rec.Year, rec.Payment(), yearlyPayment)
			previous = rec.RemainingBalance
		}

		tolerance := loan.Mul(dec("0.000001"))
		assert.True(t, previous.Abs().LessThanOrEqual(tolerance),
			"loan %s ended with balance %s", c.loan, previous)
	}
}

func TestBuildAmortizationSchedule_ZeroInterest(t *testing.T) {
	loan := dec("120000")
	payment, err := ComputeMonthlyPayment(loan, decimal.Zero, 10)
	require.NoError(t, err)

	schedule, err := BuildAmortizationSchedule(loan, decimal.Zero, payment, 10)
	require.NoError(t, err)

	for i, rec := range schedule {
		assert.True(t, rec.InterestPaid.IsZero())
		assert.True(t, rec.PrincipalPaid.Equal(dec("12000")))
		expected := loan.Sub(dec("12000").Mul(decimal.NewFromInt(int64(i + 1))))
		assert.True(t, rec.RemainingBalance.Equal(expected), "year %d balance %s", rec.Year, rec.RemainingBalance)
	}
	assert.True(t, schedule[9].RemainingBalance.IsZero())
}

func TestBuildAmortizationSchedule_NegativeAmortizationIsPreserved(t *testing.T) {
	// one percent a month on 100000 is 1000 of interest against a 500 payment
	schedule, err := BuildAmortizationSchedule(dec("100000"), dec("0.01"), dec("500"), 3)
	require.NoError(t, err)
	require.Len(t, schedule, 3)

	previous := dec("100000")
	for _, rec := range schedule {
		assert.True(t, rec.PrincipalPaid.IsNegative(), "year %d principal %s", rec.Year, rec.PrincipalPaid)
		assert.True(t, rec.IsNegativeAmortization())
		assert.True(t, rec.RemainingBalance.GreaterThan(previous))
		assert.True(t, rec.Payment().Equal(dec("6000")))
		previous = rec.RemainingBalance
	}
}

func TestBuildAmortizationSchedule_Overpayment(t *testing.T) {
	// a payment larger than needed drives the balance negative; nothing is clamped
	schedule, err := BuildAmortizationSchedule(dec("1000"), decimal.Zero, dec("500"), 1)
	require.NoError(t, err)
	assert.True(t, schedule[0].RemainingBalance.Equal(dec("-5000")))
}

func TestBuildAmortizationSchedule_InvalidInput(t *testing.T) {
	_, err := BuildAmortizationSchedule(dec("1000"), dec("0.01"), dec("100"), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BuildAmortizationSchedule(dec("-1000"), dec("0.01"), dec("100"), 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BuildAmortizationSchedule(dec("1000"), dec("-0.01"), dec("100"), 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuildAmortizationSchedule_ReturnsFreshSlices(t *testing.T) {
	first, err := BuildAmortizationSchedule(dec("1000"), decimal.Zero, dec("50"), 2)
	require.NoError(t, err)
	second, err := BuildAmortizationSchedule(dec("1000"), decimal.Zero, dec("50"), 2)
	require.NoError(t, err)

	first[0].RemainingBalance = dec("1")
	assert.True(t, second[0].RemainingBalance.Equal(dec("400")))
}

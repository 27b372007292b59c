package calculation

import (
	"errors"
	"sync"
	"testing"

	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeInvestmentSummary_ReferencePurchase(t *testing.T) {
	summary, err := ComputeInvestmentSummary(sampleInputs())
	require.NoError(t, err)

	assert.True(t, summary.DownPayment.Equal(dec("46031.468")), "down payment %s", summary.DownPayment)
	assert.True(t, summary.LoanAmount.Equal(dec("184125.872")), "loan amount %s", summary.LoanAmount)
	assertDecimalNear(t, "46031.47", summary.DownPayment, 0.005)
	assertDecimalNear(t, "184125.87", summary.LoanAmount, 0.005)

	// The closed-form payment is 879.045; published tables quote 878.98.
	assertDecimalNear(t, "878.98", summary.MonthlyPayment, 0.10)
	assertDecimalNear(t, "879.0451", summary.MonthlyPayment, 0.0001)

	assertDecimalNear(t, "191.7978", summary.MonthlyTax, 0.0001)
	assertDecimalNear(t, "95.8989", summary.MonthlyInsurance, 0.0001)
	assertDecimalNear(t, "1166.7418", summary.TotalMonthlyPayment, 0.0001)
	assertDecimalNear(t, "420027.03", summary.TotalPaid, 0.01)
	assertDecimalNear(t, "132330.36", summary.TotalInterest, 0.01)

	assert.True(t, summary.AveragePrice.Equal(dec("225000")))
	assert.True(t, summary.PriceSpreadPercent.Equal(dec("25")), "spread %s", summary.PriceSpreadPercent)
	assert.True(t, summary.ROIPercent.Equal(dec("10")), "roi %s", summary.ROIPercent)
	assertDecimalNear(t, "153.4382", summary.BreakEvenMonths, 0.0001)
	assertDecimalNear(t, "12.7865", summary.BreakEvenYears, 0.0001)
	assertDecimalNear(t, "293745.5695", summary.FutureValue, 0.0001)
	assert.Equal(t, 5, summary.FutureValueYears)
}

func TestComputeInvestmentSummary_OptionalKnobs(t *testing.T) {
	in := sampleInputs()
	in.ResaleMarkup = dec("0.25")
	in.ProjectionYears = 10
	in.AppreciationRate = decimal.Zero

	summary, err := ComputeInvestmentSummary(in)
	require.NoError(t, err)
	assert.True(t, summary.ROIPercent.Equal(dec("25")))
	assert.Equal(t, 10, summary.FutureValueYears)
	assert.True(t, summary.FutureValue.Equal(in.CostPrice))
}

func TestComputeInvestmentSummary_ZeroInterest(t *testing.T) {
	in := sampleInputs()
	in.CostPrice = dec("150000")
	in.AnnualInterestRate = decimal.Zero
	in.LoanDurationYears = 10

	summary, err := ComputeInvestmentSummary(in)
	require.NoError(t, err)
	assert.True(t, summary.MonthlyPayment.Equal(dec("1000")), "payment %s", summary.MonthlyPayment)
	assert.True(t, summary.TotalInterest.IsZero(), "total interest %s", summary.TotalInterest)
}

func TestComputeInvestmentSummary_DivideByZero(t *testing.T) {
	t.Run("zero monthly expenses", func(t *testing.T) {
		in := sampleInputs()
		in.MonthlyExpenses = decimal.Zero

		_, err := ComputeInvestmentSummary(in)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDivideByZero))
		assert.False(t, errors.Is(err, ErrInvalidInput))

		kind, ok := KindOf(err)
		assert.True(t, ok)
		assert.Equal(t, KindDivideByZero, kind)
	})

	t.Run("zero low price", func(t *testing.T) {
		in := sampleInputs()
		in.PriceRangeLow = decimal.Zero

		_, err := ComputeInvestmentSummary(in)
		assert.ErrorIs(t, err, ErrDivideByZero)
		assert.Contains(t, err.Error(), "price_range_low")
	})
}

func TestComputeInvestmentSummary_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.LoanInputs)
		field  string
	}{
		{"zero cost", func(in *domain.LoanInputs) { in.CostPrice = decimal.Zero }, "cost_price"},
		{"negative cost", func(in *domain.LoanInputs) { in.CostPrice = dec("-1") }, "cost_price"},
		{"zero down payment", func(in *domain.LoanInputs) { in.DownPaymentFraction = decimal.Zero }, "down_payment_fraction"},
		{"full down payment", func(in *domain.LoanInputs) { in.DownPaymentFraction = dec("1") }, "down_payment_fraction"},
		{"negative rate", func(in *domain.LoanInputs) { in.AnnualInterestRate = dec("-0.01") }, "annual_interest_rate"},
		{"rate at one", func(in *domain.LoanInputs) { in.AnnualInterestRate = dec("1") }, "annual_interest_rate"},
		{"zero duration", func(in *domain.LoanInputs) { in.LoanDurationYears = 0 }, "loan_duration_years"},
		{"negative tax rate", func(in *domain.LoanInputs) { in.PropertyTaxRate = dec("-0.01") }, "property_tax_rate"},
		{"insurance rate at one", func(in *domain.LoanInputs) { in.InsuranceRate = dec("1") }, "insurance_rate"},
		{"negative expenses", func(in *domain.LoanInputs) { in.MonthlyExpenses = dec("-10") }, "monthly_expenses"},
		{"appreciation below -1", func(in *domain.LoanInputs) { in.AppreciationRate = dec("-1.5") }, "appreciation_rate"},
		{"inverted price range", func(in *domain.LoanInputs) { in.PriceRangeLow = dec("300000") }, "price_range"},
		{"negative price range", func(in *domain.LoanInputs) { in.PriceRangeLow = dec("-5") }, "price_range"},
		{"negative markup", func(in *domain.LoanInputs) { in.ResaleMarkup = dec("-0.1") }, "resale_markup"},
		{"negative projection", func(in *domain.LoanInputs) { in.ProjectionYears = -1 }, "projection_years"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleInputs()
			tt.mutate(&in)

			summary, err := ComputeInvestmentSummary(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, domain.InvestmentSummary{}, summary)

			var ce *CalculationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestValidateInputs_InvalidInputReportedBeforeDivideByZero(t *testing.T) {
	in := sampleInputs()
	in.MonthlyExpenses = decimal.Zero
	in.LoanDurationYears = -1

	err := ValidateInputs(in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyze_EscrowInSchedule(t *testing.T) {
	in := sampleInputs()
	in.IncludeEscrowInSchedule = true

	analysis, err := Analyze("escrow", in)
	require.NoError(t, err)

	yearly := analysis.Summary.TotalMonthlyPayment.Mul(decimal.NewFromInt(12))
	for _, rec := range analysis.Schedule {
		assert.True(t, rec.Payment().Sub(yearly).Abs().LessThan(dec("0.000001")))
	}
	assertDecimalNear(t, "177366.99", analysis.Schedule[0].RemainingBalance, 0.01)
	// paying escrow into principal retires the loan early and overshoots zero
	assert.True(t, analysis.FinalBalance().IsNegative())
	assert.Greater(t, analysis.PayoffYear(), 0)
	assert.Less(t, analysis.PayoffYear(), 30)
}

func TestAnalyze_BundlesInputsAndSchedule(t *testing.T) {
	in := sampleInputs()
	analysis, err := Analyze("reference", in)
	require.NoError(t, err)

	assert.Equal(t, "reference", analysis.ScenarioName)
	assert.Equal(t, in, analysis.Inputs)
	assert.Len(t, analysis.Schedule, 30)
	assert.Equal(t, 30, analysis.PayoffYear())

	summary, err := ComputeInvestmentSummary(in)
	require.NoError(t, err)
	assert.Equal(t, summary, analysis.Summary)
}

func TestAnalyze_ConcurrentCallersAgree(t *testing.T) {
	in := sampleInputs()
	expected, err := Analyze("reference", in)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*domain.Analysis, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = Analyze("reference", in)
		}()
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		assert.True(t, r.Summary.MonthlyPayment.Equal(expected.Summary.MonthlyPayment))
		assert.True(t, r.FinalBalance().Equal(expected.FinalBalance()))
	}
}

package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/rgehrsitz/propcalc/internal/tui/components"
)

const rule = "================================================================="

// ConsoleFormatter prints the full report: summary, yearly schedule,
// charts and assumptions.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(a *domain.Analysis) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("no analysis to format")
	}
	var buf bytes.Buffer

	writeSummary(&buf, a)
	writeSchedule(&buf, a.Schedule)

	if len(a.Schedule) > 0 {
		buf.WriteString(components.BalanceChart(a, 72).Render())
		buf.WriteString("\n\n")
		buf.WriteString(components.PaymentBarChart(a, 40).Render())
		buf.WriteString("\n\n")
	}

	buf.WriteString("ASSUMPTIONS\n")
	for _, s := range DefaultAssumptions {
		fmt.Fprintf(&buf, "  • %s\n", s)
	}
	return buf.Bytes(), nil
}

// ConsoleLiteFormatter prints the summary block only
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(a *domain.Analysis) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("no analysis to format")
	}
	var buf bytes.Buffer
	writeSummary(&buf, a)
	return buf.Bytes(), nil
}

func writeSummary(buf *bytes.Buffer, a *domain.Analysis) {
	in, s := a.Inputs, a.Summary

	fmt.Fprintf(buf, "PROPERTY INVESTMENT ANALYSIS: %s\n", strings.ToUpper(a.ScenarioName))
	fmt.Fprintln(buf, rule)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "INPUTS")
	fmt.Fprintf(buf, "  Cost Price:              %s\n", FormatCurrency(in.CostPrice))
	fmt.Fprintf(buf, "  Down Payment:            %s (%s)\n", FormatRate(in.DownPaymentFraction), FormatCurrency(s.DownPayment))
	fmt.Fprintf(buf, "  Interest Rate:           %s\n", FormatRate(in.AnnualInterestRate))
	fmt.Fprintf(buf, "  Loan Term:               %d years\n", in.LoanDurationYears)
	fmt.Fprintf(buf, "  Property Tax Rate:       %s\n", FormatRate(in.PropertyTaxRate))
	fmt.Fprintf(buf, "  Insurance Rate:          %s\n", FormatRate(in.InsuranceRate))
	fmt.Fprintf(buf, "  Monthly Expenses:        %s\n", FormatCurrency(in.MonthlyExpenses))
	fmt.Fprintf(buf, "  Appreciation Rate:       %s\n", FormatRate(in.AppreciationRate))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "LOAN")
	fmt.Fprintf(buf, "  Loan Amount:             %s\n", FormatCurrency(s.LoanAmount))
	fmt.Fprintf(buf, "  Monthly Payment (P&I):   %s\n", FormatCurrency(s.MonthlyPayment))
	fmt.Fprintf(buf, "  Monthly Property Tax:    %s\n", FormatCurrency(s.MonthlyTax))
	fmt.Fprintf(buf, "  Monthly Insurance:       %s\n", FormatCurrency(s.MonthlyInsurance))
	fmt.Fprintf(buf, "  Total Monthly Payment:   %s\n", FormatCurrency(s.TotalMonthlyPayment))
	fmt.Fprintf(buf, "  Total Paid:              %s\n", FormatCurrency(s.TotalPaid))
	fmt.Fprintf(buf, "  Total Interest:          %s\n", FormatCurrency(s.TotalInterest))
	if in.IncludeEscrowInSchedule {
		fmt.Fprintln(buf, "  Schedule amortizes the total monthly payment (escrow included)")
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "MARKET")
	fmt.Fprintf(buf, "  Average Comparable:      %s\n", FormatCurrency(s.AveragePrice))
	fmt.Fprintf(buf, "  Price Spread:            %s\n", FormatPercentage(s.PriceSpreadPercent))
	fmt.Fprintf(buf, "  Resale ROI:              %s\n", FormatPercentage(s.ROIPercent))
	fmt.Fprintf(buf, "  Break-even:              %s months (%s years)\n", s.BreakEvenMonths.StringFixed(2), s.BreakEvenYears.StringFixed(2))
	fmt.Fprintf(buf, "  Future Value (%d years):  %s\n", s.FutureValueYears, FormatCurrency(s.FutureValue))
	fmt.Fprintln(buf)
}

func writeSchedule(buf *bytes.Buffer, schedule []domain.AmortizationYearRecord) {
	fmt.Fprintln(buf, "AMORTIZATION SCHEDULE")
	fmt.Fprintln(buf, rule)
	fmt.Fprintf(buf, "%-6s %16s %16s %20s\n", "Year", "Interest Paid", "Principal Paid", "Remaining Balance")
	for _, rec := range schedule {
		fmt.Fprintf(buf, "%-6d %16s %16s %20s\n",
			rec.Year,
			FormatCurrency(rec.InterestPaid),
			FormatCurrency(rec.PrincipalPaid),
			FormatCurrency(rec.RemainingBalance))
	}
	fmt.Fprintln(buf)
}

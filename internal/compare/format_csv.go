package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format writes the base row followed by one row per alternative
func (cf *CSVFormatter) Format(set *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Term (Years)",
		"Monthly Payment",
		"Total Monthly Payment",
		"Total Interest",
		"Total Paid",
		"Future Value",
		"Monthly Diff from Base",
		"Interest Diff from Base",
		"Interest % Change",
		"Future Value Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}
	if err := writer.Write(cf.formatRow(set.BaseResult, "base")); err != nil {
		return "", err
	}
	for i := range set.AlternativeResults {
		if err := writer.Write(cf.formatRow(&set.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(r *ComparisonResult, kind string) []string {
	return []string{
		r.ScenarioName,
		kind,
		strconv.Itoa(r.LoanDurationYears),
		r.MonthlyPayment.StringFixed(2),
		r.TotalMonthlyPayment.StringFixed(2),
		r.TotalInterest.StringFixed(2),
		r.TotalPaid.StringFixed(2),
		r.FutureValue.StringFixed(2),
		r.PaymentDiffFromBase.StringFixed(2),
		r.InterestDiffFromBase.StringFixed(2),
		r.InterestPctFromBase.StringFixed(2),
		r.FutureValueDiffFromBase.StringFixed(2),
	}
}

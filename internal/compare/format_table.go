package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a table comparing every scenario with the base
func (tf *TableFormatter) Format(set *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("FINANCING SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", set.BaseScenarioName))
	if set.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", set.ConfigPath))
	}
	sb.WriteString("\n")

	const nameWidth, numWidth = 28, 14
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		6, "Term",
		numWidth, "Monthly Total",
		numWidth, "Total Interest",
		numWidth, "Future Value"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	sb.WriteString(tf.formatRow(set.BaseResult, nameWidth, numWidth, true))
	if len(set.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for i := range set.AlternativeResults {
			sb.WriteString(tf.formatRow(&set.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}
	sb.WriteString(strings.Repeat("=", 88) + "\n")

	if len(set.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, alt := range set.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(" " + alt.Description)
			}
			sb.WriteString("\n")
			sb.WriteString(fmt.Sprintf("  Monthly Total:   %s$%s\n", deltaSymbol(alt.PaymentDiffFromBase), alt.PaymentDiffFromBase.Abs().StringFixed(2)))
			sb.WriteString(fmt.Sprintf("  Total Interest:  %s$%s (%s%%)\n",
				deltaSymbol(alt.InterestDiffFromBase),
				formatDecimal(alt.InterestDiffFromBase.Abs()),
				alt.InterestPctFromBase.StringFixed(1)))
			if !alt.FutureValueDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Future Value:    %s$%s\n", deltaSymbol(alt.FutureValueDiffFromBase), formatDecimal(alt.FutureValueDiffFromBase.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	if len(set.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, rec := range set.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(r *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := r.ScenarioName
	if isBase {
		name += " (base)"
	}
	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, truncate(name, nameWidth),
		6, fmt.Sprintf("%dy", r.LoanDurationYears),
		numWidth, "$"+r.TotalMonthlyPayment.StringFixed(2),
		numWidth, "$"+formatDecimal(r.TotalInterest),
		numWidth, "$"+formatDecimal(r.FutureValue))
}

// FormatCompact summarizes the monthly cost change of each alternative on one line
func (tf *TableFormatter) FormatCompact(set *ComparisonSet) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Base: %s | ", set.BaseScenarioName))
	for i, alt := range set.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.PaymentDiffFromBase.IsZero() {
			change = fmt.Sprintf("%s$%s/mo", signed(alt.PaymentDiffFromBase), alt.PaymentDiffFromBase.Abs().StringFixed(2))
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}
	return sb.String()
}

// formatDecimal abbreviates to thousands or millions
func formatDecimal(d decimal.Decimal) string {
	switch {
	case d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)):
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	case d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func deltaSymbol(delta decimal.Decimal) string {
	switch {
	case delta.IsPositive():
		return "+"
	case delta.IsNegative():
		return "-"
	}
	return " "
}

func signed(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return "-"
	}
	return "+"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

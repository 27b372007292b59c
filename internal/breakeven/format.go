package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format renders a single result
func (tf *TableFormatter) Format(r *Result) string {
	var sb strings.Builder

	sb.WriteString("BUDGET BREAK-EVEN\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Target:          %s\n", r.Target))
	sb.WriteString(fmt.Sprintf("Monthly Budget:  $%s\n", r.Budget.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(r.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:      %d\n", r.Iterations))
	if r.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:     %s\n", r.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLUTION\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Value:           %s (current %s, %s)\n",
		formatValue(r.Target, r.Value), formatValue(r.Target, r.BaseValue), tf.formatDelta(r.Target, r.ValueDiffFromBase)))
	sb.WriteString(fmt.Sprintf("Monthly Figure:  $%s\n", r.MonthlyFigure.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Loan Amount:     $%s\n", r.Summary.LoanAmount.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Total Interest:  $%s\n", r.Summary.TotalInterest.StringFixed(2)))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMulti renders the results for every target
func (tf *TableFormatter) FormatMulti(mr *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("BUDGET BREAK-EVEN BY INPUT\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Monthly Budget:  $%s (%s)\n", mr.Budget.StringFixed(2), mr.Basis))
	sb.WriteString(fmt.Sprintf("Current Figure:  $%s\n\n", mr.BaseFigure.StringFixed(2)))

	sb.WriteString(fmt.Sprintf("%-16s %16s %16s %16s\n", "Input", "Solved", "Current", "Monthly"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, r := range mr.Results {
		solved := formatValue(r.Target, r.Value)
		if !r.Success {
			solved = "none"
		}
		sb.WriteString(fmt.Sprintf("%-16s %16s %16s %16s\n",
			r.Target, solved, formatValue(r.Target, r.BaseValue), "$"+r.MonthlyFigure.StringFixed(2)))
	}
	sb.WriteString("\n")

	if len(mr.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range mr.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatJSON renders a Result or MultiResult as indented JSON
func FormatJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func formatValue(target Target, v decimal.Decimal) string {
	switch target {
	case TargetCostPrice:
		return "$" + v.StringFixed(2)
	case TargetInterestRate:
		return v.Shift(2).StringFixed(3) + "%"
	case TargetDownPayment:
		return v.Shift(2).StringFixed(2) + "%"
	case TargetLoanTerm:
		return v.String() + "y"
	}
	return v.String()
}

func (tf *TableFormatter) formatDelta(target Target, d decimal.Decimal) string {
	sign := "+"
	if d.IsNegative() {
		sign = "-"
	}
	return sign + formatValue(target, d.Abs())
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Solved"
	}
	return "✗ No solution in range"
}

package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/propcalc/internal/calculation"
)

// FormatSensitivity renders a sweep as "console", "csv" or "json"
func FormatSensitivity(result *calculation.SensitivityResult, format string) ([]byte, error) {
	if result == nil || len(result.Points) == 0 {
		return nil, fmt.Errorf("no sensitivity results to format")
	}
	switch format {
	case "", "console", "table":
		return sensitivityConsole(result), nil
	case "csv":
		return sensitivityCSV(result)
	case "json":
		return json.MarshalIndent(result, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported sensitivity format: %s", format)
	}
}

func sensitivityConsole(result *calculation.SensitivityResult) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(result.Parameter, "_", " ")))
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "%-14s %16s %16s %18s %18s\n", "Value", "Payment (P&I)", "Total Monthly", "Total Interest", "Future Value")
	fmt.Fprintln(&buf, strings.Repeat("-", 86))
	for _, p := range result.Points {
		fmt.Fprintf(&buf, "%-14s %16s %16s %18s %18s\n",
			p.Value.String(),
			FormatCurrency(p.MonthlyPayment),
			FormatCurrency(p.TotalMonthlyPayment),
			FormatCurrency(p.TotalInterest),
			FormatCurrency(p.FutureValue))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Total interest spread across the range: %s\n", FormatCurrency(result.InterestSpread))
	return buf.Bytes()
}

func sensitivityCSV(result *calculation.SensitivityResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{result.Parameter, "MonthlyPayment", "TotalMonthlyPayment", "TotalInterest", "FutureValue"}); err != nil {
		return nil, err
	}
	for _, p := range result.Points {
		row := []string{
			p.Value.String(),
			p.MonthlyPayment.StringFixed(2),
			p.TotalMonthlyPayment.StringFixed(2),
			p.TotalInterest.StringFixed(2),
			p.FutureValue.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

package output

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rgehrsitz/propcalc/internal/domain"
)

// ScheduleHeader is the header row of the schedule export
var ScheduleHeader = []string{"Year", "Interest Paid", "Principal Paid", "Remaining Balance"}

// ScheduleCSVFormatter exports one row per loan year
type ScheduleCSVFormatter struct{}

func (c ScheduleCSVFormatter) Name() string { return "csv" }

func (c ScheduleCSVFormatter) Format(a *domain.Analysis) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := WriteScheduleCSV(buf, a.Schedule); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteScheduleCSV writes the schedule with two decimal places
func WriteScheduleCSV(out io.Writer, schedule []domain.AmortizationYearRecord) error {
	w := csv.NewWriter(out)
	if err := w.Write(ScheduleHeader); err != nil {
		return err
	}
	for _, rec := range schedule {
		row := []string{
			strconv.Itoa(rec.Year),
			rec.InterestPaid.StringFixed(2),
			rec.PrincipalPaid.StringFixed(2),
			rec.RemainingBalance.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// SummaryCSVFormatter exports the summary metrics as a single row
type SummaryCSVFormatter struct{}

func (c SummaryCSVFormatter) Name() string { return "summary-csv" }

func (c SummaryCSVFormatter) Format(a *domain.Analysis) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "LoanAmount", "MonthlyPayment", "TotalMonthlyPayment", "TotalPaid", "TotalInterest",
		"AveragePrice", "PriceSpreadPercent", "ROIPercent", "BreakEvenMonths", "FutureValue",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	s := a.Summary
	row := []string{
		a.ScenarioName,
		s.LoanAmount.StringFixed(2),
		s.MonthlyPayment.StringFixed(2),
		s.TotalMonthlyPayment.StringFixed(2),
		s.TotalPaid.StringFixed(2),
		s.TotalInterest.StringFixed(2),
		s.AveragePrice.StringFixed(2),
		s.PriceSpreadPercent.StringFixed(2),
		s.ROIPercent.StringFixed(2),
		s.BreakEvenMonths.StringFixed(2),
		s.FutureValue.StringFixed(2),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

package components

import (
	"strconv"

	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/rgehrsitz/propcalc/internal/tui/tuistyles"
)

// BalanceChart plots the loan amount followed by the remaining balance at
// the end of each year.
func BalanceChart(a *domain.Analysis, width int) *LineChart {
	points := make([]float64, 0, len(a.Schedule)+1)
	labels := make([]string, 0, len(a.Schedule)+1)
	points = append(points, a.Summary.LoanAmount.InexactFloat64())
	labels = append(labels, "0")
	for _, rec := range a.Schedule {
		points = append(points, rec.RemainingBalance.InexactFloat64())
		labels = append(labels, strconv.Itoa(rec.Year))
	}
	return NewLineChart("Remaining balance by year").
		AddSeries("Balance", points, tuistyles.ColorChartLine1).
		WithLabels(labels).
		WithSize(width, 12)
}

// PaymentBarChart splits each year's payments into interest and principal
func PaymentBarChart(a *domain.Analysis, width int) *BarChart {
	c := NewBarChart("Interest vs principal by year",
		Segment{Name: "Interest", Color: tuistyles.ColorChartLine2},
		Segment{Name: "Principal", Color: tuistyles.ColorChartLine3},
	)
	c.Width = width
	for _, rec := range a.Schedule {
		c.AddRow(strconv.Itoa(rec.Year), rec.InterestPaid.InexactFloat64(), rec.PrincipalPaid.InexactFloat64())
	}
	return c
}

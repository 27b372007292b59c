package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSlider_StepsAndClamps(t *testing.T) {
	s := NewPercentSlider("Interest rate", d("0.04"), d("0"), d("0.05"), d("0.005"))

	assert.True(t, s.Increment())
	assert.True(t, s.Value.Equal(d("0.045")))
	assert.True(t, s.Increment())
	assert.True(t, s.Value.Equal(d("0.05")))
	assert.False(t, s.Increment(), "already at max")
	assert.True(t, s.Value.Equal(d("0.05")))

	for s.Decrement() {
	}
	assert.True(t, s.Value.IsZero())
	assert.Equal(t, "0.00%", s.Display())
}

func TestSlider_RepeatedStepsStayExact(t *testing.T) {
	s := NewPercentSlider("Rate", d("0"), d("0"), d("1"), d("0.001"))
	for i := 0; i < 40; i++ {
		s.Increment()
	}
	assert.Equal(t, "0.04", s.Value.String())
	assert.Equal(t, "4.00%", s.Display())
}

func TestSlider_SetValueClampsIntoRange(t *testing.T) {
	s := NewSlider("Years", d("30"), d("5"), d("40"), d("1"))
	s.Places = 0
	s.SetValue(d("100"))
	assert.Equal(t, "40", s.Display())
	s.SetValue(d("-1"))
	assert.Equal(t, "5", s.Display())
	assert.InDelta(t, 0.0, s.Fraction(), 1e-9)
}

func TestSlider_RenderMarksFocus(t *testing.T) {
	s := NewPercentSlider("Down payment", d("0.2"), d("0.05"), d("0.5"), d("0.01"))
	assert.NotContains(t, s.Render(), "▸")
	s.Focused = true
	out := s.Render()
	assert.Contains(t, out, "▸")
	assert.Contains(t, out, "Down payment")
	assert.Contains(t, out, "20.00%")
}

func TestLineChart_Render(t *testing.T) {
	c := NewLineChart("Remaining balance").
		AddSeries("Balance", []float64{184000, 150000, 100000, 40000, 0}, "#fff").
		WithLabels([]string{"Y1", "Y2", "Y3", "Y4", "Y5"})

	out := c.Render()
	assert.Contains(t, out, "Remaining balance")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "Y1")
	assert.Contains(t, out, "Y5")
	assert.Contains(t, out, "└")
	assert.NotContains(t, out, "Balance", "single series has no legend")
}

func TestLineChart_FlatAndEmpty(t *testing.T) {
	assert.Contains(t, NewLineChart("x").Render(), "No data")

	flat := NewLineChart("").AddSeries("a", []float64{5, 5, 5}, "#fff")
	assert.NotPanics(t, func() { flat.Render() })

	single := NewLineChart("").AddSeries("a", []float64{5}, "#fff")
	assert.NotPanics(t, func() { single.Render() })
}

func TestLineChart_LegendForMultipleSeries(t *testing.T) {
	c := NewLineChart("").
		AddSeries("Base", []float64{1, 2, 3}, "#fff").
		AddSeries("Refi", []float64{3, 2, 1}, "#000")
	out := c.Render()
	assert.Contains(t, out, "Base")
	assert.Contains(t, out, "Refi")
	assert.Contains(t, out, "■")
}

func TestBarChart_Render(t *testing.T) {
	c := NewBarChart("Payments by year",
		Segment{Name: "Interest", Color: "#f00"},
		Segment{Name: "Principal", Color: "#0f0"},
	)
	c.Width = 10
	c.AddRow("1", 7306, 3243).AddRow("30", 200, 10349)

	out := c.Render()
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, out, "$10,549")
	assert.Contains(t, out, "Interest")
	assert.Contains(t, out, "Principal")

	// year 1 bar is mostly interest, year 30 mostly principal
	assert.Equal(t, 7, strings.Count(lines[2], "█"))
	assert.Equal(t, 3, strings.Count(lines[2], "▒"))
	assert.Equal(t, 0, strings.Count(lines[3], "█"))
}

func TestBarChart_Empty(t *testing.T) {
	assert.Contains(t, NewBarChart("").Render(), "No data")
}

func TestMetricCard(t *testing.T) {
	card := NewMetricCard("Monthly payment", "$879").WithDelta("+$12", false).WithNote("P&I only")
	out := card.Render()
	assert.Contains(t, out, "Monthly payment")
	assert.Contains(t, out, "$879")
	assert.Contains(t, out, "↓ +$12")
	assert.Contains(t, out, "P&I only")

	assert.Equal(t, "Monthly payment: $879 +$12", card.RenderCompact())
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 3))

	cards := []*MetricCard{
		NewMetricCard("A", "1"), NewMetricCard("B", "2"), NewMetricCard("C", "3"),
	}
	grid := MetricGrid(cards, 2)
	assert.Contains(t, grid, "A")
	assert.Contains(t, grid, "C")
	assert.Greater(t, strings.Count(grid, "\n"), strings.Count(cards[0].Render(), "\n"))
}

func TestFormatAxisValue(t *testing.T) {
	assert.Equal(t, "$950", FormatAxisValue(950))
	assert.Equal(t, "$184K", FormatAxisValue(184126))
	assert.Equal(t, "$1.2M", FormatAxisValue(1_230_000))
}

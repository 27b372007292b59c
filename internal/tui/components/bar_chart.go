package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/propcalc/internal/tui/tuistyles"
)

var barFills = []rune{'█', '▒', '░'}

// Segment names one part of a stacked bar
type Segment struct {
	Name  string
	Color lipgloss.Color
}

// BarRow is one labeled stacked bar; values align with the chart's segments
type BarRow struct {
	Label  string
	Values []float64
}

// BarChart draws horizontal stacked bars scaled to the largest row total
type BarChart struct {
	Title    string
	Segments []Segment
	Rows     []BarRow
	Width    int // bar width in cells
}

// NewBarChart creates a bar chart with the given segments
func NewBarChart(title string, segments ...Segment) *BarChart {
	return &BarChart{Title: title, Segments: segments, Width: 40}
}

// AddRow appends a bar
func (c *BarChart) AddRow(label string, values ...float64) *BarChart {
	c.Rows = append(c.Rows, BarRow{Label: label, Values: values})
	return c
}

// Render draws every row followed by a legend. Negative values draw as
// empty; the total column still shows the signed sum.
func (c *BarChart) Render() string {
	if len(c.Rows) == 0 || c.Width <= 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	labelWidth := 0
	maxTotal := 0.0
	for _, r := range c.Rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
		maxTotal = math.Max(maxTotal, positiveSum(r.Values))
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(tuistyles.TitleStyle.Render(c.Title))
		b.WriteString("\n\n")
	}

	label := lipgloss.NewStyle().Width(labelWidth).Align(lipgloss.Right).Foreground(tuistyles.ColorMuted)
	for _, r := range c.Rows {
		b.WriteString(label.Render(r.Label))
		b.WriteString(" ")

		used := 0
		for i, v := range r.Values {
			cells := 0
			if maxTotal > 0 && v > 0 {
				cells = int(math.Round(v / maxTotal * float64(c.Width)))
			}
			cells = min(cells, c.Width-used)
			used += cells
			b.WriteString(c.segmentStyle(i).Render(strings.Repeat(string(barFills[i%len(barFills)]), cells)))
		}
		b.WriteString(strings.Repeat(" ", c.Width-used))
		b.WriteString(" ")
		b.WriteString(tuistyles.FormatCurrency(sum(r.Values)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(c.renderLegend())
	return b.String()
}

func (c *BarChart) segmentStyle(i int) lipgloss.Style {
	if i < len(c.Segments) {
		return lipgloss.NewStyle().Foreground(c.Segments[i].Color)
	}
	return lipgloss.NewStyle()
}

func (c *BarChart) renderLegend() string {
	items := make([]string, 0, len(c.Segments))
	for i, s := range c.Segments {
		items = append(items, fmt.Sprintf("%s %s", c.segmentStyle(i).Render(string(barFills[i%len(barFills)])), s.Name))
	}
	return tuistyles.StatusBarStyle.Render(strings.Join(items, "  "))
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func positiveSum(values []float64) float64 {
	var total float64
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	return total
}

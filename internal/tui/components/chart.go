package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/propcalc/internal/tui/tuistyles"
)

const yAxisWidth = 10

var seriesMarkers = []rune{'●', '■', '▲', '♦'}

// Series is one plotted line
type Series struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// LineChart plots one or more series against a shared dollar axis
type LineChart struct {
	Title  string
	Series []Series
	Labels []string // x-axis labels, one per point
	Width  int
	Height int
}

// NewLineChart creates a chart sized for an 80 column terminal
func NewLineChart(title string) *LineChart {
	return &LineChart{
		Title:  title,
		Width:  64,
		Height: 12,
	}
}

// AddSeries appends a series
func (c *LineChart) AddSeries(name string, points []float64, color lipgloss.Color) *LineChart {
	c.Series = append(c.Series, Series{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the x-axis labels
func (c *LineChart) WithLabels(labels []string) *LineChart {
	c.Labels = labels
	return c
}

// WithSize sets the outer dimensions
func (c *LineChart) WithSize(width, height int) *LineChart {
	c.Width = width
	c.Height = height
	return c
}

// Render draws the chart. Each series keeps its own marker so the plot stays
// readable without color.
func (c *LineChart) Render() string {
	plotWidth := c.Width - yAxisWidth - 3
	if !c.hasPoints() || plotWidth < 2 || c.Height < 2 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	lo, hi := c.bounds()
	grid := newGrid(c.Height, plotWidth)

	for idx, s := range c.Series {
		prevX, prevY := -1, -1
		for i, v := range s.Points {
			x := scaleIndex(i, len(s.Points), plotWidth)
			y := c.Height - 1 - scaleValue(v, lo, hi, c.Height)
			if prevX >= 0 {
				grid.line(prevX, prevY, x, y, idx)
			}
			grid.set(x, y, idx)
			prevX, prevY = x, y
		}
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(tuistyles.TitleStyle.Render(c.Title))
		b.WriteString("\n\n")
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for row := 0; row < c.Height; row++ {
		v := hi - float64(row)/float64(c.Height-1)*(hi-lo)
		b.WriteString(axis.Render(FormatAxisValue(v)))
		b.WriteString(" │ ")
		b.WriteString(grid.renderRow(row, c.Series))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth))
	b.WriteString(" └")
	b.WriteString(strings.Repeat("─", plotWidth+1))

	if labels := c.renderLabels(plotWidth); labels != "" {
		b.WriteString("\n")
		b.WriteString(labels)
	}
	if len(c.Series) > 1 {
		b.WriteString("\n\n")
		b.WriteString(c.renderLegend())
	}
	return b.String()
}

func (c *LineChart) hasPoints() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// bounds returns the padded value range across every series
func (c *LineChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, v := range s.Points {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi == lo {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

// renderLabels spreads the first, middle and last labels under the plot
func (c *LineChart) renderLabels(plotWidth int) string {
	if len(c.Labels) == 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", plotWidth+1))
	place := func(i int) {
		x := scaleIndex(i, len(c.Labels), plotWidth)
		label := []rune(c.Labels[i])
		if x+len(label) > len(line) {
			x = len(line) - len(label)
		}
		if x < 0 {
			return
		}
		copy(line[x:], label)
	}
	place(0)
	if len(c.Labels) > 2 {
		place(len(c.Labels) / 2)
	}
	if len(c.Labels) > 1 {
		place(len(c.Labels) - 1)
	}
	style := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	return strings.Repeat(" ", yAxisWidth+3) + style.Render(strings.TrimRight(string(line), " "))
}

func (c *LineChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		marker := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesMarkers[i%len(seriesMarkers)]))
		items = append(items, fmt.Sprintf("%s %s", marker, s.Name))
	}
	return tuistyles.StatusBarStyle.Render(strings.Join(items, "  "))
}

// grid records which series owns each cell; -1 is empty
type grid [][]int

func newGrid(height, width int) grid {
	g := make(grid, height)
	for i := range g {
		g[i] = make([]int, width)
		for j := range g[i] {
			g[i][j] = -1
		}
	}
	return g
}

func (g grid) set(x, y, series int) {
	if y >= 0 && y < len(g) && x >= 0 && x < len(g[y]) {
		g[y][x] = series
	}
}

// line fills the empty cells between two points (Bresenham)
func (g grid) line(x0, y0, x1, y1, series int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		if y0 >= 0 && y0 < len(g) && x0 >= 0 && x0 < len(g[y0]) && g[y0][x0] < 0 {
			g[y0][x0] = series
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (g grid) renderRow(row int, series []Series) string {
	var b strings.Builder
	for _, owner := range g[row] {
		if owner < 0 {
			b.WriteByte(' ')
			continue
		}
		marker := string(seriesMarkers[owner%len(seriesMarkers)])
		b.WriteString(lipgloss.NewStyle().Foreground(series[owner].Color).Render(marker))
	}
	return b.String()
}

func scaleIndex(i, n, width int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(float64(i) / float64(n-1) * float64(width-1)))
}

func scaleValue(v, lo, hi float64, height int) int {
	return int(math.Round((v - lo) / (hi - lo) * float64(height-1)))
}

// FormatAxisValue abbreviates a dollar amount for an axis, e.g. $180K
func FormatAxisValue(v float64) string {
	switch {
	case math.Abs(v) >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case math.Abs(v) >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

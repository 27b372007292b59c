package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/propcalc/internal/tui/tuistyles"
)

// MetricCard shows one figure of the analysis, optionally with its change
// since the scenario was loaded.
type MetricCard struct {
	Label  string
	Value  string
	Delta  string
	Better bool // colors Delta green when true
	Note   string
	Width  int
}

// NewMetricCard creates a card 24 cells wide
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 24}
}

// WithDelta attaches a change indicator
func (m *MetricCard) WithDelta(delta string, better bool) *MetricCard {
	m.Delta = delta
	m.Better = better
	return m
}

// WithNote adds a muted line under the value
func (m *MetricCard) WithNote(note string) *MetricCard {
	m.Note = note
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) lines() []string {
	lines := []string{
		tuistyles.MetricLabelStyle.Render(m.Label),
		tuistyles.MetricValueStyle.Render(m.Value),
	}
	if m.Delta != "" {
		style := tuistyles.MetricTrendStyle(m.Better)
		lines = append(lines, style.Render(tuistyles.TrendIndicator(m.Better)+" "+m.Delta))
	}
	if m.Note != "" {
		lines = append(lines, tuistyles.SubtitleStyle.Render(m.Note))
	}
	return lines
}

// Render draws the card inside a rounded border
func (m *MetricCard) Render() string {
	return tuistyles.BorderStyle.
		Padding(0, 1).
		Width(m.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, m.lines()...))
}

// RenderCompact draws "Label: Value" on one line
func (m *MetricCard) RenderCompact() string {
	out := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Delta != "" {
		out += " " + tuistyles.MetricTrendStyle(m.Better).Render(m.Delta)
	}
	return out
}

// MetricGrid lays cards out left to right, wrapping after columns cards
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows []string
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		rendered := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			rendered = append(rendered, c.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

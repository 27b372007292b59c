package components

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/propcalc/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// Slider adjusts one loan input in fixed decimal steps so repeated presses
// never accumulate rounding error.
type Slider struct {
	Label   string
	Value   decimal.Decimal
	Min     decimal.Decimal
	Max     decimal.Decimal
	Step    decimal.Decimal
	Scale   decimal.Decimal // display multiplier, 100 for rates shown as percent
	Places  int32
	Unit    string
	Width   int
	Focused bool
}

// NewSlider creates a slider displaying raw values with two decimals
func NewSlider(label string, value, lo, hi, step decimal.Decimal) *Slider {
	s := &Slider{
		Label:  label,
		Min:    lo,
		Max:    hi,
		Step:   step,
		Scale:  decimal.NewFromInt(1),
		Places: 2,
		Width:  24,
	}
	s.SetValue(value)
	return s
}

// NewPercentSlider creates a slider for a fraction shown as a percentage
func NewPercentSlider(label string, value, lo, hi, step decimal.Decimal) *Slider {
	s := NewSlider(label, value, lo, hi, step)
	s.Scale = decimal.NewFromInt(100)
	s.Unit = "%"
	return s
}

// Increment moves one step up, stopping at Max
func (s *Slider) Increment() bool {
	return s.SetValue(s.Value.Add(s.Step))
}

// Decrement moves one step down, stopping at Min
func (s *Slider) Decrement() bool {
	return s.SetValue(s.Value.Sub(s.Step))
}

// SetValue clamps v into range and reports whether the value changed
func (s *Slider) SetValue(v decimal.Decimal) bool {
	v = decimal.Max(s.Min, decimal.Min(s.Max, v))
	changed := !v.Equal(s.Value)
	s.Value = v
	return changed
}

// Fraction returns the position of Value within the range, in [0, 1]
func (s *Slider) Fraction() float64 {
	span := s.Max.Sub(s.Min)
	if !span.IsPositive() {
		return 0
	}
	f, _ := s.Value.Sub(s.Min).Div(span).Float64()
	return f
}

// Display formats Value with its scale and unit
func (s *Slider) Display() string {
	return s.Value.Mul(s.Scale).StringFixed(s.Places) + s.Unit
}

// Render draws "label  [━━━●───] value" on one line
func (s *Slider) Render() string {
	label := tuistyles.ParameterLabelStyle
	value := tuistyles.ParameterValueStyle
	cursor := "  "
	if s.Focused {
		label = label.Foreground(tuistyles.ColorPrimary).Bold(true)
		value = value.Foreground(tuistyles.ColorAccent)
		cursor = "▸ "
	}
	return fmt.Sprintf("%s%s %s %s", cursor, label.Width(22).Render(s.Label), s.bar(), value.Render(s.Display()))
}

func (s *Slider) bar() string {
	if s.Width < 1 {
		return ""
	}
	pos := int(s.Fraction()*float64(s.Width-1) + 0.5)
	thumb := tuistyles.SliderThumbStyle
	if s.Focused {
		thumb = thumb.Foreground(tuistyles.ColorAccent)
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(thumb.Render(strings.Repeat("━", pos) + "●"))
	b.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", s.Width-1-pos)))
	b.WriteString("]")
	return b.String()
}

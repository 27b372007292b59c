package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/domain"
)

func sampleInputs() domain.LoanInputs {
	return domain.LoanInputs{
		CostPrice:           dec("230157.34"),
		DownPaymentFraction: dec("0.20"),
		AnnualInterestRate:  dec("0.04"),
		LoanDurationYears:   30,
		PropertyTaxRate:     dec("0.012"),
		InsuranceRate:       dec("0.005"),
		MonthlyExpenses:     dec("1500"),
		AppreciationRate:    dec("0.05"),
		PriceRangeLow:       dec("210000"),
		PriceRangeHigh:      dec("250000"),
	}
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelWithInputs_ComputesImmediately(t *testing.T) {
	m := NewModelWithInputs(sampleInputs(), nil)

	require.NotNil(t, m.Analysis())
	assert.Equal(t, "defaults", m.ScenarioName())
	assert.Len(t, m.Analysis().Schedule, 30)
	assert.InDelta(t, 879.0451, m.Analysis().Summary.MonthlyPayment.InexactFloat64(), 0.0001)
	assert.Nil(t, m.Init())
}

func TestSliderChangeRecomputes(t *testing.T) {
	m := NewModelWithInputs(sampleInputs(), nil)
	before := m.Analysis().Summary.MonthlyPayment

	// interest rate has focus: one step up is 1/8 point
	m = press(m, keyRight)
	assert.Equal(t, "0.04125", m.Inputs().AnnualInterestRate.String())
	assert.True(t, m.Analysis().Summary.MonthlyPayment.GreaterThan(before))

	m = press(m, keyLeft, keyLeft)
	assert.Equal(t, "0.03875", m.Inputs().AnnualInterestRate.String())
	assert.True(t, m.Analysis().Summary.MonthlyPayment.LessThan(before))
}

func TestFocusMovesBetweenSliders(t *testing.T) {
	m := NewModelWithInputs(sampleInputs(), nil)

	m = press(m, keyDown, keyRight) // loan term
	assert.Equal(t, 31, m.Inputs().LoanDurationYears)
	assert.Len(t, m.Analysis().Schedule, 31)

	m = press(m, keyUp, keyUp) // wraps to appreciation
	m = press(m, keyRight)
	assert.Equal(t, "0.055", m.Inputs().AppreciationRate.String())
}

func TestResetRestoresLoadedInputs(t *testing.T) {
	m := NewModelWithInputs(sampleInputs(), nil)
	m = press(m, keyRight, keyRight, runes("r"))

	assert.True(t, m.Inputs().AnnualInterestRate.Equal(dec("0.04")))
	assert.NotContains(t, m.View(), " *")
}

func TestEngineErrorsRenderInline(t *testing.T) {
	in := sampleInputs()
	in.MonthlyExpenses = dec("0")
	m := NewModelWithInputs(in, nil)

	assert.Nil(t, m.Analysis())
	assert.True(t, errors.Is(m.calcErr, calculation.ErrDivideByZero))
	assert.Contains(t, m.View(), "monthly expenses are zero")

	// the sliders still respond
	m = press(m, keyRight)
	assert.Equal(t, "0.04125", m.Inputs().AnnualInterestRate.String())
	assert.Nil(t, m.Analysis())
}

func TestTabCyclesViews(t *testing.T) {
	m := NewModelWithInputs(sampleInputs(), nil)
	assert.Contains(t, m.View(), "Monthly payment")

	m = press(m, keyTab)
	assert.Equal(t, ViewSchedule, m.view)
	out := m.View()
	assert.Contains(t, out, "Remaining Balance")
	assert.Contains(t, out, "180883.35")

	m = press(m, keyTab)
	assert.Equal(t, ViewChart, m.view)
	assert.Contains(t, m.View(), "Remaining balance by year")

	m = press(m, keyTab)
	assert.Equal(t, ViewCalculator, m.view)
}

func TestScheduleViewKeysDoNotMoveSliders(t *testing.T) {
	m := NewModelWithInputs(sampleInputs(), nil)
	m = press(m, keyTab, keyDown, keyRight)
	assert.Equal(t, 0, m.focus)
	assert.True(t, m.Inputs().AnnualInterestRate.Equal(dec("0.04")))
}

func TestConfigLoading(t *testing.T) {
	m := NewModel("../../testdata/example.yaml", nil)
	assert.Contains(t, m.View(), "Loading")

	cmd := m.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	loaded, ok := msg.(ConfigLoadedMsg)
	require.True(t, ok, "got %T", msg)

	next, _ := m.Update(loaded)
	m = next.(Model)
	assert.Equal(t, "base", m.ScenarioName())
	require.NotNil(t, m.Analysis())

	m = press(m, runes("s"))
	assert.Equal(t, "fifteen-year", m.ScenarioName())
	assert.Equal(t, 15, m.Inputs().LoanDurationYears)
	assert.Len(t, m.Analysis().Schedule, 15)

	m = press(m, runes("s"), runes("s"))
	assert.Equal(t, "defaults", m.ScenarioName())
}

func TestConfigLoadError(t *testing.T) {
	m := NewModel("does-not-exist.yaml", nil)
	msg := m.Init()()
	_, ok := msg.(ErrorMsg)
	require.True(t, ok)

	next, _ := m.Update(msg)
	m = next.(Model)
	assert.Contains(t, m.View(), "Error:")

	// keys other than quit and help are ignored
	m = press(m, keyRight, keyTab)
	assert.Equal(t, ViewCalculator, m.view)
}

func TestQuitKey(t *testing.T) {
	m := NewModelWithInputs(sampleInputs(), nil)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowResize(t *testing.T) {
	m := NewModelWithInputs(sampleInputs(), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	m = next.(Model)
	assert.Equal(t, 160, m.width)
	assert.NotEmpty(t, m.View())
}

func TestDeltaCardsAfterChange(t *testing.T) {
	m := NewModelWithInputs(sampleInputs(), nil)
	m = press(m, keyDown, keyDown) // down payment
	m = press(m, keyRight, keyRight, keyRight, keyRight, keyRight)

	out := m.View()
	assert.Contains(t, out, "25.000%")
	assert.Contains(t, out, "↑ -$")
}

func TestFormValues(t *testing.T) {
	in, err := FormValues{
		CostPrice:       "$230,157.34",
		MonthlyExpenses: "1500",
		PriceRangeLow:   "210000",
		PriceRangeHigh:  "250,000",
	}.Inputs()
	require.NoError(t, err)
	assert.Equal(t, "230157.34", in.CostPrice.String())
	assert.Equal(t, 30, in.LoanDurationYears)

	_, err = FormValues{CostPrice: "abc", MonthlyExpenses: "1", PriceRangeLow: "1", PriceRangeHigh: "2"}.Inputs()
	assert.ErrorContains(t, err, "cost price")

	_, err = FormValues{CostPrice: "1", MonthlyExpenses: "1", PriceRangeLow: "5", PriceRangeHigh: "2"}.Inputs()
	assert.True(t, errors.Is(err, calculation.ErrInvalidInput))

	assert.Error(t, positiveAmount("0"))
	assert.Error(t, positiveAmount(""))
	assert.NoError(t, positiveAmount("12.5"))
	assert.NotNil(t, NewInputForm(&FormValues{}))
}

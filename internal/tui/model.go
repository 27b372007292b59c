// Package tui is the interactive calculator: sliders over the loan inputs
// with the analysis recomputed on every change.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/config"
	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/rgehrsitz/propcalc/internal/tui/components"
)

// Model is the application state
type Model struct {
	view   View
	width  int
	height int

	configPath string
	config     *domain.Configuration
	scenario   int // index into config.Scenarios; -1 selects the defaults

	engine *calculation.Engine

	base     domain.LoanInputs // inputs before any slider moved
	baseline *domain.Analysis  // analysis of base, for deltas
	params   []param
	focus    int

	analysis *domain.Analysis
	calcErr  error // engine rejection, shown inline
	err      error // fatal for the session, e.g. unreadable file

	schedule table.Model
	keys     keyMap
	help     help.Model

	loading bool
}

// param binds a slider to one field of LoanInputs
type param struct {
	slider *components.Slider
	get    func(domain.LoanInputs) decimal.Decimal
	set    func(*domain.LoanInputs, decimal.Decimal)
}

// NewModel creates a model that loads its scenarios from configPath
func NewModel(configPath string, engine *calculation.Engine) Model {
	m := newModel(engine)
	m.configPath = configPath
	m.loading = true
	return m
}

// NewModelWithInputs creates a model over a single set of inputs, as
// collected by the input form.
func NewModelWithInputs(inputs domain.LoanInputs, engine *calculation.Engine) Model {
	m := newModel(engine)
	m.config = &domain.Configuration{Defaults: inputs}
	m.load(inputs)
	return m
}

func newModel(engine *calculation.Engine) Model {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	return Model{
		width:    100,
		height:   30,
		scenario: -1,
		engine:   engine,
		schedule: newScheduleTable(),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

// Init loads the configuration when the model was created from a path
func (m Model) Init() tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	return loadConfigCmd(m.configPath)
}

func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// ScenarioName returns the name of the scenario being edited
func (m Model) ScenarioName() string {
	if m.config == nil || m.scenario < 0 || m.scenario >= len(m.config.Scenarios) {
		return "defaults"
	}
	return m.config.Scenarios[m.scenario].Name
}

// Analysis returns the latest successful analysis, or nil
func (m Model) Analysis() *domain.Analysis {
	return m.analysis
}

// Inputs returns the base inputs with every slider applied
func (m Model) Inputs() domain.LoanInputs {
	in := m.base
	for _, p := range m.params {
		p.set(&in, p.slider.Value)
	}
	return in
}

// load resets sliders to inputs and recomputes
func (m *Model) load(inputs domain.LoanInputs) {
	m.base = inputs
	m.params = newParams(inputs)
	if m.focus >= len(m.params) {
		m.focus = 0
	}
	m.params[m.focus].slider.Focused = true

	m.baseline, _ = m.engine.Analyze(m.ScenarioName(), inputs)
	m.recompute()
}

// recompute runs the engine on the current slider values
func (m *Model) recompute() {
	analysis, err := m.engine.Analyze(m.ScenarioName(), m.Inputs())
	if err != nil {
		m.analysis = nil
		m.calcErr = err
		m.schedule.SetRows(nil)
		return
	}
	m.analysis = analysis
	m.calcErr = nil
	m.schedule.SetRows(scheduleRows(analysis.Schedule))
}

func (m *Model) selectScenario(idx int) {
	m.scenario = idx
	if idx < 0 {
		m.load(m.config.Defaults)
		return
	}
	m.load(m.config.ScenarioInputs(&m.config.Scenarios[idx]))
}

func (m *Model) moveFocus(delta int) {
	if len(m.params) == 0 {
		return
	}
	m.params[m.focus].slider.Focused = false
	m.focus = (m.focus + delta + len(m.params)) % len(m.params)
	m.params[m.focus].slider.Focused = true
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newParams builds the adjustable inputs. Each range is widened to include
// the loaded value so opening a scenario never changes it.
func newParams(in domain.LoanInputs) []param {
	percent := func(label, lo, hi, step string, v decimal.Decimal) *components.Slider {
		lo2, hi2 := decimal.Min(dec(lo), v), decimal.Max(dec(hi), v)
		s := components.NewPercentSlider(label, v, lo2, hi2, dec(step))
		s.Places = 3
		return s
	}

	years := decimal.NewFromInt(int64(in.LoanDurationYears))
	duration := components.NewSlider("Loan term (years)", years,
		decimal.Min(dec("1"), years), decimal.Max(dec("40"), years), dec("1"))
	duration.Places = 0

	return []param{
		{
			slider: percent("Interest rate", "0", "0.15", "0.00125", in.AnnualInterestRate),
			get:    func(in domain.LoanInputs) decimal.Decimal { return in.AnnualInterestRate },
			set:    func(in *domain.LoanInputs, v decimal.Decimal) { in.AnnualInterestRate = v },
		},
		{
			slider: duration,
			get:    func(in domain.LoanInputs) decimal.Decimal { return decimal.NewFromInt(int64(in.LoanDurationYears)) },
			set:    func(in *domain.LoanInputs, v decimal.Decimal) { in.LoanDurationYears = int(v.IntPart()) },
		},
		{
			slider: percent("Down payment", "0.01", "0.95", "0.01", in.DownPaymentFraction),
			get:    func(in domain.LoanInputs) decimal.Decimal { return in.DownPaymentFraction },
			set:    func(in *domain.LoanInputs, v decimal.Decimal) { in.DownPaymentFraction = v },
		},
		{
			slider: percent("Property tax rate", "0", "0.05", "0.001", in.PropertyTaxRate),
			get:    func(in domain.LoanInputs) decimal.Decimal { return in.PropertyTaxRate },
			set:    func(in *domain.LoanInputs, v decimal.Decimal) { in.PropertyTaxRate = v },
		},
		{
			slider: percent("Insurance rate", "0", "0.03", "0.0005", in.InsuranceRate),
			get:    func(in domain.LoanInputs) decimal.Decimal { return in.InsuranceRate },
			set:    func(in *domain.LoanInputs, v decimal.Decimal) { in.InsuranceRate = v },
		},
		{
			slider: percent("Appreciation", "-0.10", "0.15", "0.005", in.AppreciationRate),
			get:    func(in domain.LoanInputs) decimal.Decimal { return in.AppreciationRate },
			set:    func(in *domain.LoanInputs, v decimal.Decimal) { in.AppreciationRate = v },
		},
	}
}

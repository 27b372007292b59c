package calculation

import (
	"fmt"

	"github.com/rgehrsitz/propcalc/internal/domain"
)

// Engine wraps the stateless calculation functions with logging and the
// scenario plumbing used by the CLI, the server and the TUI.
type Engine struct {
	Logger  Logger
	Debug   bool // log intermediate figures for every analysis
	Workers int  // concurrency limit for sweeps; <= 0 means one per step
}

// NewEngine creates an engine that logs nothing
func NewEngine() *Engine {
	return &Engine{
		Logger:  NopLogger{},
		Workers: 4,
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

// Analyze computes the summary and schedule for a single set of inputs
func (e *Engine) Analyze(name string, inputs domain.LoanInputs) (*domain.Analysis, error) {
	log := e.logger()

	analysis, err := Analyze(name, inputs)
	if err != nil {
		log.Warnf("analysis %q rejected: %v", name, err)
		return nil, err
	}

	if e.Debug {
		s := analysis.Summary
		log.Debugf("analysis %q: loan=%s payment=%s totalMonthly=%s totalInterest=%s",
			name, s.LoanAmount.StringFixed(2), s.MonthlyPayment.StringFixed(2),
			s.TotalMonthlyPayment.StringFixed(2), s.TotalInterest.StringFixed(2))
		log.Debugf("analysis %q: final balance %s after %d years",
			name, analysis.FinalBalance().StringFixed(6), len(analysis.Schedule))
	}
	for _, rec := range analysis.Schedule {
		if rec.IsNegativeAmortization() {
			log.Warnf("analysis %q: negative amortization starting in year %d", name, rec.Year)
			break
		}
	}

	return analysis, nil
}

// AnalyzeScenario resolves the named scenario against the configuration
// defaults and analyzes it. An empty name analyzes the defaults.
func (e *Engine) AnalyzeScenario(cfg *domain.Configuration, name string) (*domain.Analysis, error) {
	if name == "" {
		return e.Analyze("defaults", cfg.Defaults)
	}
	scenario, ok := cfg.FindScenario(name)
	if !ok {
		return nil, fmt.Errorf("scenario %q not found", name)
	}
	return e.Analyze(scenario.Name, cfg.ScenarioInputs(scenario))
}

// AnalyzeConfiguration analyzes every scenario in the configuration, or the
// defaults alone when no scenarios are defined.
func (e *Engine) AnalyzeConfiguration(cfg *domain.Configuration) ([]*domain.Analysis, error) {
	if len(cfg.Scenarios) == 0 {
		a, err := e.AnalyzeScenario(cfg, "")
		if err != nil {
			return nil, err
		}
		return []*domain.Analysis{a}, nil
	}

	results := make([]*domain.Analysis, 0, len(cfg.Scenarios))
	for i := range cfg.Scenarios {
		s := &cfg.Scenarios[i]
		a, err := e.Analyze(s.Name, cfg.ScenarioInputs(s))
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		results = append(results, a)
	}
	e.logger().Infof("analyzed %d scenarios", len(results))
	return results, nil
}

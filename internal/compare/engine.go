package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/rgehrsitz/propcalc/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine       *calculation.Engine
	TemplateRegistry *transform.TemplateRegistry
	TransformParser  *transform.TransformRegistry
}

// NewCompareEngine creates a comparison engine with the built-in templates
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewEngine()
	}
	return &CompareEngine{
		CalcEngine:       calcEngine,
		TemplateRegistry: transform.CreateBuiltInTemplates(),
		TransformParser:  transform.NewTransformRegistry(),
	}
}

// CompareOptions configures a template comparison
type CompareOptions struct {
	BaseScenarioName string   // empty compares against the defaults
	Templates        []string // built-in template names
	Transforms       []string // ad hoc specs such as "adjust_rate:delta=-0.005"
}

// Compare evaluates templates and ad hoc transforms against the base scenario
func (ce *CompareEngine) Compare(ctx context.Context, cfg *domain.Configuration, options CompareOptions) (*ComparisonSet, error) {
	baseAnalysis, baseInputs, err := ce.analyzeBase(cfg, options.BaseScenarioName)
	if err != nil {
		return nil, err
	}
	baseResult := NewResult(baseAnalysis)

	alternatives := []ComparisonResult{}
	evaluate := func(name, description string, transforms []transform.InputTransform) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		inputs, err := transform.ApplyTransforms(baseInputs, transforms)
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
		analysis, err := ce.CalcEngine.Analyze(baseAnalysis.ScenarioName+"_"+name, inputs)
		if err != nil {
			return fmt.Errorf("failed to calculate scenario %s: %w", name, err)
		}
		result := NewResult(analysis).WithBase(baseResult)
		result.Description = description
		alternatives = append(alternatives, result)
		return nil
	}

	for _, name := range options.Templates {
		tmpl, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found (available: %v)", name, ce.TemplateRegistry.List())
		}
		if err := evaluate(tmpl.Name, tmpl.Description, tmpl.Transforms); err != nil {
			return nil, err
		}
	}
	for _, spec := range options.Transforms {
		t, err := ce.TransformParser.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		if err := evaluate(t.Name(), t.Description(), []transform.InputTransform{t}); err != nil {
			return nil, err
		}
	}

	set := &ComparisonSet{
		BaseScenarioName:   baseAnalysis.ScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	set.Recommendations = GenerateRecommendations(set)
	return set, nil
}

// CompareScenarios compares named scenarios from the configuration. With no
// alternatives named, every other scenario is compared.
func (ce *CompareEngine) CompareScenarios(ctx context.Context, cfg *domain.Configuration, baseName string, alternatives []string) (*ComparisonSet, error) {
	baseAnalysis, _, err := ce.analyzeBase(cfg, baseName)
	if err != nil {
		return nil, err
	}
	baseResult := NewResult(baseAnalysis)

	if len(alternatives) == 0 {
		for _, s := range cfg.Scenarios {
			if s.Name != baseAnalysis.ScenarioName {
				alternatives = append(alternatives, s.Name)
			}
		}
	}

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, name := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		scenario, ok := cfg.FindScenario(name)
		if !ok {
			return nil, fmt.Errorf("alternative scenario %s not found", name)
		}
		analysis, err := ce.CalcEngine.Analyze(scenario.Name, cfg.ScenarioInputs(scenario))
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", name, err)
		}
		result := NewResult(analysis).WithBase(baseResult)
		result.Description = scenario.Description
		results = append(results, result)
	}

	set := &ComparisonSet{
		BaseScenarioName:   baseAnalysis.ScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	set.Recommendations = GenerateRecommendations(set)
	return set, nil
}

func (ce *CompareEngine) analyzeBase(cfg *domain.Configuration, name string) (*domain.Analysis, domain.LoanInputs, error) {
	if name == "" {
		a, err := ce.CalcEngine.Analyze("defaults", cfg.Defaults)
		if err != nil {
			return nil, domain.LoanInputs{}, fmt.Errorf("failed to calculate base scenario: %w", err)
		}
		return a, cfg.Defaults, nil
	}
	scenario, ok := cfg.FindScenario(name)
	if !ok {
		return nil, domain.LoanInputs{}, fmt.Errorf("base scenario %s not found in configuration", name)
	}
	inputs := cfg.ScenarioInputs(scenario)
	a, err := ce.CalcEngine.Analyze(scenario.Name, inputs)
	if err != nil {
		return nil, domain.LoanInputs{}, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	return a, inputs, nil
}

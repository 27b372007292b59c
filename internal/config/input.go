package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a scenario configuration. Unknown keys are
// rejected so a misspelled field cannot silently fall back to zero.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration checks the defaults and every resolved scenario
// against the engine's input rules.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := calculation.ValidateInputs(config.Defaults); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if scenario.Name == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true

		if err := calculation.ValidateInputs(config.ScenarioInputs(scenario)); err != nil {
			return fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
	}

	return nil
}

// ResolveScenario returns the inputs for the named scenario, or the defaults
// when name is empty.
func ResolveScenario(config *domain.Configuration, name string) (domain.LoanInputs, error) {
	if name == "" {
		return config.Defaults, nil
	}
	scenario, ok := config.FindScenario(name)
	if !ok {
		names := make([]string, 0, len(config.Scenarios))
		for _, s := range config.Scenarios {
			names = append(names, s.Name)
		}
		return domain.LoanInputs{}, fmt.Errorf("scenario %q not found (available: %v)", name, names)
	}
	return config.ScenarioInputs(scenario), nil
}

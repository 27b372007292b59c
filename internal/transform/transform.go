// Package transform derives what-if variants of a set of loan inputs.
package transform

import (
	"fmt"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/domain"
)

// InputTransform modifies loan inputs in one predictable way
type InputTransform interface {
	// Apply returns a modified copy of base
	Apply(base domain.LoanInputs) (domain.LoanInputs, error)

	// Name returns a short identifier, e.g. "adjust_rate"
	Name() string

	// Description returns a human-readable summary
	Description() string

	// Validate checks the transform parameters against base without applying
	Validate(base domain.LoanInputs) error
}

// ApplyTransforms applies transforms in order and checks that the result is
// still a valid engine input.
func ApplyTransforms(base domain.LoanInputs, transforms []InputTransform) (domain.LoanInputs, error) {
	current := base

	for i, t := range transforms {
		if t == nil {
			return domain.LoanInputs{}, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return domain.LoanInputs{}, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return domain.LoanInputs{}, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}

	if err := calculation.ValidateInputs(current); err != nil {
		return domain.LoanInputs{}, fmt.Errorf("transformed inputs rejected: %w", err)
	}
	return current, nil
}

// TransformError reports a transform that cannot be applied
type TransformError struct {
	TransformName string
	Reason        string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %s: %s", e.TransformName, e.Reason)
}

func newTransformError(name, format string, args ...any) error {
	return &TransformError{TransformName: name, Reason: fmt.Sprintf(format, args...)}
}

package calculation

import (
	"errors"
	"fmt"
)

// ErrorKind classifies calculation failures
type ErrorKind string

const (
	// KindInvalidInput marks inputs outside their allowed domain
	KindInvalidInput ErrorKind = "invalid_input"
	// KindDivideByZero marks inputs that would force a division by zero
	KindDivideByZero ErrorKind = "divide_by_zero"
)

var (
	// ErrInvalidInput matches every CalculationError of kind KindInvalidInput
	ErrInvalidInput = errors.New("invalid input")
	// ErrDivideByZero matches every CalculationError of kind KindDivideByZero
	ErrDivideByZero = errors.New("divide by zero")
)

// CalculationError represents a rejected calculation request
type CalculationError struct {
	Kind      ErrorKind
	Operation string
	Field     string
	Message   string
}

func (e *CalculationError) Error() string {
	if e.Field != "" {
		return e.Operation + ": " + e.Field + ": " + e.Message
	}
	return e.Operation + ": " + e.Message
}

// Unwrap exposes the sentinel for the error's kind so errors.Is works
func (e *CalculationError) Unwrap() error {
	switch e.Kind {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindDivideByZero:
		return ErrDivideByZero
	}
	return nil
}

// KindOf returns the kind of a CalculationError anywhere in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var ce *CalculationError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}

func invalidInput(op, field, format string, args ...any) error {
	return &CalculationError{
		Kind:      KindInvalidInput,
		Operation: op,
		Field:     field,
		Message:   fmt.Sprintf(format, args...),
	}
}

func divideByZero(op, field, format string, args ...any) error {
	return &CalculationError{
		Kind:      KindDivideByZero,
		Operation: op,
		Field:     field,
		Message:   fmt.Sprintf(format, args...),
	}
}

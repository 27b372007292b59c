package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters for the CLI
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory builds a transform from key=value parameters
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a registry with every built-in transform
func NewTransformRegistry() *TransformRegistry {
	r := &TransformRegistry{factories: make(map[string]TransformFactory)}

	r.Register("adjust_rate", func(p map[string]string) (InputTransform, error) {
		d, err := decimalParam(p, "adjust_rate", "delta")
		return &AdjustRate{Delta: d}, err
	})
	r.Register("set_rate", func(p map[string]string) (InputTransform, error) {
		d, err := decimalParam(p, "set_rate", "rate")
		return &SetRate{Rate: d}, err
	})
	r.Register("set_term", func(p map[string]string) (InputTransform, error) {
		raw, ok := p["years"]
		if !ok {
			return nil, fmt.Errorf("set_term requires 'years' parameter")
		}
		years, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid years value: %w", err)
		}
		return &SetTerm{Years: years}, nil
	})
	r.Register("set_down_payment", func(p map[string]string) (InputTransform, error) {
		d, err := decimalParam(p, "set_down_payment", "fraction")
		return &SetDownPayment{Fraction: d}, err
	})
	r.Register("adjust_price", func(p map[string]string) (InputTransform, error) {
		d, err := decimalParam(p, "adjust_price", "fraction")
		return &AdjustPrice{Fraction: d}, err
	})
	r.Register("set_price", func(p map[string]string) (InputTransform, error) {
		d, err := decimalParam(p, "set_price", "price")
		return &SetPrice{Price: d}, err
	})
	r.Register("set_appreciation", func(p map[string]string) (InputTransform, error) {
		d, err := decimalParam(p, "set_appreciation", "rate")
		return &SetAppreciation{Rate: d}, err
	})
	r.Register("set_escrow", func(p map[string]string) (InputTransform, error) {
		raw, ok := p["include"]
		if !ok {
			return nil, fmt.Errorf("set_escrow requires 'include' parameter")
		}
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid include value: %w", err)
		}
		return &SetEscrow{Include: include}, nil
	})

	return r
}

// Register adds a transform factory
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	t, err := factory(params)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns the registered transform names, sorted
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name:key=value,key=value", e.g.
// "adjust_rate:delta=-0.005".
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	name, paramsStr, found := strings.Cut(spec, ":")
	if !found {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if paramsStr = strings.TrimSpace(paramsStr); paramsStr != "" {
		for _, pair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", pair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return r.Create(strings.TrimSpace(name), params)
}

func decimalParam(params map[string]string, transform, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

package transform

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TemplateRegistry manages named what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template is a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{templates: make(map[string]Template)}
}

// Register adds a template
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates registers the common financing alternatives
func CreateBuiltInTemplates() *TemplateRegistry {
	r := NewTemplateRegistry()
	half := decimal.RequireFromString("0.005")

	r.Register(Template{
		Name:        "rate_down_half",
		Description: "Interest rate half a point lower",
		Transforms:  []InputTransform{&AdjustRate{Delta: half.Neg()}},
	})
	r.Register(Template{
		Name:        "rate_up_half",
		Description: "Interest rate half a point higher",
		Transforms:  []InputTransform{&AdjustRate{Delta: half}},
	})
	r.Register(Template{
		Name:        "fifteen_year",
		Description: "15-year term",
		Transforms:  []InputTransform{&SetTerm{Years: 15}},
	})
	r.Register(Template{
		Name:        "twenty_year",
		Description: "20-year term",
		Transforms:  []InputTransform{&SetTerm{Years: 20}},
	})
	r.Register(Template{
		Name:        "ten_down",
		Description: "10% down payment",
		Transforms:  []InputTransform{&SetDownPayment{Fraction: decimal.RequireFromString("0.10")}},
	})
	r.Register(Template{
		Name:        "twenty_five_down",
		Description: "25% down payment",
		Transforms:  []InputTransform{&SetDownPayment{Fraction: decimal.RequireFromString("0.25")}},
	})
	r.Register(Template{
		Name:        "negotiate_5pct",
		Description: "Cost price negotiated down 5%",
		Transforms:  []InputTransform{&AdjustPrice{Fraction: decimal.RequireFromString("-0.05")}},
	})
	r.Register(Template{
		Name:        "fifteen_year_buydown",
		Description: "15-year term with the rate half a point lower",
		Transforms: []InputTransform{
			&SetTerm{Years: 15},
			&AdjustRate{Delta: half.Neg()},
		},
	})

	return r
}

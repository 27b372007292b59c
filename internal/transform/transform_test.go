package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func baseInputs() domain.LoanInputs {
	return domain.LoanInputs{
		CostPrice:           d("230157.34"),
		DownPaymentFraction: d("0.20"),
		AnnualInterestRate:  d("0.04"),
		LoanDurationYears:   30,
		PropertyTaxRate:     d("0.012"),
		InsuranceRate:       d("0.005"),
		MonthlyExpenses:     d("1500"),
		AppreciationRate:    d("0.05"),
		PriceRangeLow:       d("210000"),
		PriceRangeHigh:      d("250000"),
	}
}

func TestApplyTransforms_InOrder(t *testing.T) {
	base := baseInputs()
	out, err := ApplyTransforms(base, []InputTransform{
		&SetTerm{Years: 15},
		&AdjustRate{Delta: d("-0.005")},
		&AdjustRate{Delta: d("-0.005")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.LoanDurationYears != 15 {
		t.Errorf("expected 15 years, got %d", out.LoanDurationYears)
	}
	if !out.AnnualInterestRate.Equal(d("0.03")) {
		t.Errorf("expected rate 0.03, got %s", out.AnnualInterestRate)
	}
	if base.LoanDurationYears != 30 {
		t.Error("base inputs were modified")
	}
}

func TestApplyTransforms_NoTransforms(t *testing.T) {
	out, err := ApplyTransforms(baseInputs(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.CostPrice.Equal(d("230157.34")) {
		t.Errorf("expected unchanged inputs, got cost %s", out.CostPrice)
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(baseInputs(), []InputTransform{nil})
	if err == nil || !strings.Contains(err.Error(), "index 0 is nil") {
		t.Fatalf("expected nil transform error, got %v", err)
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	_, err := ApplyTransforms(baseInputs(), []InputTransform{&AdjustRate{Delta: d("-0.05")}})
	if err == nil {
		t.Fatal("expected error for negative rate")
	}
	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransformError, got %T", err)
	}
	if te.TransformName != "adjust_rate" {
		t.Errorf("expected adjust_rate, got %s", te.TransformName)
	}
}

func TestApplyTransforms_RejectsInvalidResult(t *testing.T) {
	base := baseInputs()
	base.MonthlyExpenses = decimal.Zero
	_, err := ApplyTransforms(base, []InputTransform{&SetTerm{Years: 15}})
	if !errors.Is(err, calculation.ErrDivideByZero) {
		t.Fatalf("expected divide by zero, got %v", err)
	}
}

func TestTransforms_Validate(t *testing.T) {
	base := baseInputs()
	cases := []struct {
		name      string
		transform InputTransform
		wantErr   bool
	}{
		{"rate ok", &SetRate{Rate: d("0.07")}, false},
		{"rate one", &SetRate{Rate: d("1")}, true},
		{"term zero", &SetTerm{Years: 0}, true},
		{"down zero", &SetDownPayment{Fraction: d("0")}, true},
		{"down ok", &SetDownPayment{Fraction: d("0.035")}, false},
		{"price -100%", &AdjustPrice{Fraction: d("-1")}, true},
		{"price +3%", &AdjustPrice{Fraction: d("0.03")}, false},
		{"set price zero", &SetPrice{Price: d("0")}, true},
		{"set price", &SetPrice{Price: d("199000")}, false},
		{"appreciation 2", &SetAppreciation{Rate: d("2")}, true},
		{"appreciation -3%", &SetAppreciation{Rate: d("-0.03")}, false},
		{"escrow", &SetEscrow{Include: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.transform.Validate(base)
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.transform.Description() == "" {
				t.Error("empty description")
			}
		})
	}
}

func TestAdjustPrice_Apply(t *testing.T) {
	out, err := (&AdjustPrice{Fraction: d("-0.05")}).Apply(baseInputs())
	if err != nil {
		t.Fatal(err)
	}
	if !out.CostPrice.Equal(d("218649.47")) {
		t.Errorf("expected 218649.47, got %s", out.CostPrice)
	}
}

func TestRegistry_ParseTransformSpec(t *testing.T) {
	r := NewTransformRegistry()

	tr, err := r.ParseTransformSpec("adjust_rate:delta=-0.005")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Name() != "adjust_rate" {
		t.Errorf("expected adjust_rate, got %s", tr.Name())
	}

	tr, err = r.ParseTransformSpec("set_term: years = 20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, _ := tr.Apply(baseInputs())
	if out.LoanDurationYears != 20 {
		t.Errorf("expected 20 years, got %d", out.LoanDurationYears)
	}

	tr, err = r.ParseTransformSpec("set_escrow:include=true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, _ = tr.Apply(baseInputs())
	if !out.IncludeEscrowInSchedule {
		t.Error("expected escrow to be included")
	}

	bad := []string{
		"adjust_rate",
		"adjust_rate:delta",
		"adjust_rate:rate=0.01",
		"adjust_rate:delta=abc",
		"set_term:years=x",
		"set_escrow:include=maybe",
		"unknown:x=1",
	}
	for _, spec := range bad {
		if _, err := r.ParseTransformSpec(spec); err == nil {
			t.Errorf("expected error for %q", spec)
		}
	}
}

func TestRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()
	if len(names) != 8 {
		t.Fatalf("expected 8 transforms, got %d: %v", len(names), names)
	}
	if names[0] != "adjust_price" {
		t.Errorf("expected sorted names, got %v", names)
	}
}

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()
	registry.Register(Template{Name: "test_template", Description: "A test template"})

	if _, ok := registry.Get("TEST_TEMPLATE"); !ok {
		t.Fatal("expected case-insensitive lookup to work")
	}
	if _, ok := registry.Get("nonexistent"); ok {
		t.Error("expected not to find nonexistent template")
	}
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()
	for _, name := range registry.List() {
		tmpl, _ := registry.Get(name)
		if _, err := ApplyTransforms(baseInputs(), tmpl.Transforms); err != nil {
			t.Errorf("template %s does not apply to the sample inputs: %v", name, err)
		}
	}

	tmpl, ok := registry.Get("fifteen_year_buydown")
	if !ok {
		t.Fatal("expected fifteen_year_buydown template")
	}
	out, err := ApplyTransforms(baseInputs(), tmpl.Transforms)
	if err != nil {
		t.Fatal(err)
	}
	if out.LoanDurationYears != 15 || !out.AnnualInterestRate.Equal(d("0.035")) {
		t.Errorf("unexpected result: %d years at %s", out.LoanDurationYears, out.AnnualInterestRate)
	}
}

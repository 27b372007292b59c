// Package compare evaluates alternative scenarios against a base scenario.
package compare

import (
	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComparisonResult holds the key figures of one scenario and its
// differences from the base.
type ComparisonResult struct {
	ScenarioName string           `json:"scenarioName"`
	Description  string           `json:"description,omitempty"`
	Analysis     *domain.Analysis `json:"-"`

	LoanAmount          decimal.Decimal `json:"loanAmount"`
	MonthlyPayment      decimal.Decimal `json:"monthlyPayment"`
	TotalMonthlyPayment decimal.Decimal `json:"totalMonthlyPayment"`
	TotalInterest       decimal.Decimal `json:"totalInterest"`
	TotalPaid           decimal.Decimal `json:"totalPaid"`
	FutureValue         decimal.Decimal `json:"futureValue"`
	LoanDurationYears   int             `json:"loanDurationYears"`

	PaymentDiffFromBase     decimal.Decimal `json:"paymentDiffFromBase"`
	InterestDiffFromBase    decimal.Decimal `json:"interestDiffFromBase"`
	InterestPctFromBase     decimal.Decimal `json:"interestPctFromBase"`
	FutureValueDiffFromBase decimal.Decimal `json:"futureValueDiffFromBase"`
}

// ComparisonSet is a base scenario with its alternatives
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// NewResult extracts the comparison metrics from an analysis
func NewResult(a *domain.Analysis) ComparisonResult {
	s := a.Summary
	return ComparisonResult{
		ScenarioName:        a.ScenarioName,
		Analysis:            a,
		LoanAmount:          s.LoanAmount,
		MonthlyPayment:      s.MonthlyPayment,
		TotalMonthlyPayment: s.TotalMonthlyPayment,
		TotalInterest:       s.TotalInterest,
		TotalPaid:           s.TotalPaid,
		FutureValue:         s.FutureValue,
		LoanDurationYears:   a.Inputs.LoanDurationYears,
	}
}

// WithBase fills in the differences from base
func (r ComparisonResult) WithBase(base ComparisonResult) ComparisonResult {
	r.PaymentDiffFromBase = r.TotalMonthlyPayment.Sub(base.TotalMonthlyPayment)
	r.InterestDiffFromBase = r.TotalInterest.Sub(base.TotalInterest)
	if !base.TotalInterest.IsZero() {
		r.InterestPctFromBase = r.InterestDiffFromBase.Div(base.TotalInterest).Mul(hundred)
	}
	r.FutureValueDiffFromBase = r.FutureValue.Sub(base.FutureValue)
	return r
}

// GenerateRecommendations names the alternatives that beat the base on
// monthly cost, total interest and future value.
func GenerateRecommendations(set *ComparisonSet) []string {
	recommendations := []string{}
	if set.BaseResult == nil || len(set.AlternativeResults) == 0 {
		return recommendations
	}
	base := set.BaseResult

	pick := func(better func(a, b *ComparisonResult) bool) *ComparisonResult {
		best := base
		for i := range set.AlternativeResults {
			if better(&set.AlternativeResults[i], best) {
				best = &set.AlternativeResults[i]
			}
		}
		if best == base {
			return nil
		}
		return best
	}

	if best := pick(func(a, b *ComparisonResult) bool { return a.TotalMonthlyPayment.LessThan(b.TotalMonthlyPayment) }); best != nil {
		recommendations = append(recommendations,
			"Lowest Monthly Cost: "+best.ScenarioName+" saves $"+
				base.TotalMonthlyPayment.Sub(best.TotalMonthlyPayment).StringFixed(2)+" per month")
	}
	if best := pick(func(a, b *ComparisonResult) bool { return a.TotalInterest.LessThan(b.TotalInterest) }); best != nil {
		recommendations = append(recommendations,
			"Least Interest: "+best.ScenarioName+" pays $"+
				base.TotalInterest.Sub(best.TotalInterest).StringFixed(0)+" less interest over the loan")
	}
	if best := pick(func(a, b *ComparisonResult) bool { return a.FutureValue.GreaterThan(b.FutureValue) }); best != nil {
		recommendations = append(recommendations,
			"Highest Future Value: "+best.ScenarioName+" is worth $"+
				best.FutureValue.Sub(base.FutureValue).StringFixed(0)+" more")
	}
	return recommendations
}

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/propcalc/internal/breakeven"
	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/rgehrsitz/propcalc/internal/property"
)

func exampleInputs() domain.LoanInputs {
	return domain.LoanInputs{
		CostPrice:           decimal.RequireFromString("230157.34"),
		DownPaymentFraction: decimal.RequireFromString("0.20"),
		AnnualInterestRate:  decimal.RequireFromString("0.04"),
		LoanDurationYears:   30,
		PropertyTaxRate:     decimal.RequireFromString("0.012"),
		InsuranceRate:       decimal.RequireFromString("0.005"),
		MonthlyExpenses:     decimal.NewFromInt(1500),
		AppreciationRate:    decimal.RequireFromString("0.05"),
		PriceRangeLow:       decimal.NewFromInt(210000),
		PriceRangeHigh:      decimal.NewFromInt(250000),
	}
}

type fakeLookup struct {
	record *domain.PropertyRecord
	err    error
	got    string
}

func (f *fakeLookup) LookupAddress(_ context.Context, address string) (*domain.PropertyRecord, error) {
	f.got = address
	return f.record, f.err
}

type fakeZPIDs struct {
	ids []int64
	err error
}

func (f *fakeZPIDs) FetchZPIDs(context.Context, string, string) ([]int64, error) {
	return f.ids, f.err
}

func newTestServer(cfg Config) *Server {
	cfg.Log = zerolog.Nop()
	if cfg.Defaults.CostPrice.IsZero() {
		cfg.Defaults = exampleInputs()
	}
	return New(cfg)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(Config{}), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalysis_Defaults(t *testing.T) {
	rec := get(t, newTestServer(Config{}), "/api/analysis?name=example")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var a domain.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, "example", a.ScenarioName)
	assert.Len(t, a.Schedule, 30)
	assert.InDelta(t, 879.0451, a.Summary.MonthlyPayment.InexactFloat64(), 0.0001)
	assert.InDelta(t, 184125.872, a.Summary.LoanAmount.InexactFloat64(), 0.001)
}

func TestAnalysis_QueryOverrides(t *testing.T) {
	q := url.Values{}
	q.Set("loan_duration_years", "15")
	q.Set("annual_interest_rate", "0.035")

	rec := get(t, newTestServer(Config{}), "/api/analysis?"+q.Encode())
	require.Equal(t, http.StatusOK, rec.Code)

	var a domain.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, 15, a.Inputs.LoanDurationYears)
	assert.Len(t, a.Schedule, 15)
	assert.Equal(t, "request", a.ScenarioName)
}

func TestAnalysis_Errors(t *testing.T) {
	s := newTestServer(Config{})

	tests := []struct {
		name   string
		query  string
		status int
		kind   string
	}{
		{"unparseable", "cost_price=abc", http.StatusBadRequest, kindBadRequest},
		{"bad int", "loan_duration_years=ten", http.StatusBadRequest, kindBadRequest},
		{"bad bool", "include_escrow_in_schedule=maybe", http.StatusBadRequest, kindBadRequest},
		{"invalid input", "down_payment_fraction=1.5", http.StatusBadRequest, "invalid_input"},
		{"zero term", "loan_duration_years=0", http.StatusBadRequest, "invalid_input"},
		{"divide by zero", "monthly_expenses=0", http.StatusUnprocessableEntity, "divide_by_zero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/api/analysis?"+tt.query)
			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.kind, body.Kind)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestAffordability(t *testing.T) {
	s := newTestServer(Config{})

	rec := get(t, s, "/api/affordability?budget=1300")
	require.Equal(t, http.StatusOK, rec.Code)
	var mr breakeven.MultiResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mr))
	require.Len(t, mr.Results, len(breakeven.AllTargets))
	assert.Equal(t, breakeven.BasisTotal, mr.Basis)
	assert.Equal(t, breakeven.TargetLoanTerm, mr.Results[3].Target)
	assert.True(t, mr.Results[3].Value.Equal(decimal.NewFromInt(25)))

	rec = get(t, s, "/api/affordability?budget=1500&target=interest_rate")
	require.Equal(t, http.StatusOK, rec.Code)
	var res breakeven.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.InDelta(t, 0.0658361, res.Value.InexactFloat64(), 0.00001)
}

func TestAffordability_Errors(t *testing.T) {
	s := newTestServer(Config{})

	tests := []struct {
		name   string
		query  string
		status int
		kind   string
	}{
		{"missing budget", "", http.StatusBadRequest, kindBadRequest},
		{"bad budget", "budget=lots", http.StatusBadRequest, kindBadRequest},
		{"zero budget", "budget=0", http.StatusBadRequest, kindBadRequest},
		{"bad basis", "budget=1000&basis=weekly", http.StatusBadRequest, kindBadRequest},
		{"bad target", "budget=1000&target=nope", http.StatusBadRequest, kindBadRequest},
		{"invalid base", "budget=1000&down_payment_fraction=2", http.StatusBadRequest, "invalid_input"},
		{"degenerate base", "budget=1000&monthly_expenses=0", http.StatusUnprocessableEntity, "divide_by_zero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/api/affordability?"+tt.query)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.kind, decodeError(t, rec).Kind)
		})
	}
}

func TestScheduleCSV(t *testing.T) {
	rec := get(t, newTestServer(Config{}), "/api/schedule.csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 31)
	assert.Equal(t, "Year,Interest Paid,Principal Paid,Remaining Balance", lines[0])
	assert.Equal(t, "1,7306.02,3242.52,180883.35", lines[1])
}

func TestScheduleCSV_DivideByZero(t *testing.T) {
	rec := get(t, newTestServer(Config{}), "/api/schedule.csv?price_range_low=0")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestProperty(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		rec := get(t, newTestServer(Config{}), "/api/property?address=1+Main+St")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, kindUnavailable, decodeError(t, rec).Kind)
	})

	t.Run("missing address", func(t *testing.T) {
		rec := get(t, newTestServer(Config{Lookup: &fakeLookup{}}), "/api/property")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("found", func(t *testing.T) {
		lookup := &fakeLookup{record: &domain.PropertyRecord{ID: "abc", City: "Austin", Bedrooms: 3}}
		rec := get(t, newTestServer(Config{Lookup: lookup}), "/api/property?address=1+Main+St")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "1 Main St", lookup.got)

		var got domain.PropertyRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "Austin", got.City)
		assert.Equal(t, 3, got.Bedrooms)
	})

	t.Run("provider errors", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
		}{
			{property.ErrNotFound, http.StatusNotFound},
			{fmt.Errorf("rentcast: %w", property.ErrUnauthorized), http.StatusBadGateway},
			{&property.StatusError{Provider: "rentcast", StatusCode: 503}, http.StatusBadGateway},
			{fmt.Errorf("boom"), http.StatusInternalServerError},
		}
		for _, c := range cases {
			rec := get(t, newTestServer(Config{Lookup: &fakeLookup{err: c.err}}), "/api/property?address=x")
			assert.Equal(t, c.status, rec.Code, c.err.Error())
		}
	})
}

func TestZPIDs(t *testing.T) {
	rec := get(t, newTestServer(Config{}), "/api/zpids?zipcode=78701")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	s := newTestServer(Config{ZPIDs: &fakeZPIDs{ids: []int64{101, 202}}})
	rec = get(t, s, "/api/zpids")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, s, "/api/zpids?zipcode=78701&sort=newest")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"zipcode":"78701","zpids":[101,202]}`, rec.Body.String())

	rec = get(t, newTestServer(Config{ZPIDs: &fakeZPIDs{err: property.ErrNotFound}}), "/api/zpids?zipcode=78701")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	newTestServer(Config{}).Handler().ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestParseInputs(t *testing.T) {
	q := url.Values{}
	q.Set("cost_price", "100000")
	q.Set("projection_years", "10")
	q.Set("include_escrow_in_schedule", "true")

	in, err := ParseInputs(q, exampleInputs())
	require.NoError(t, err)
	assert.True(t, in.CostPrice.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, 10, in.ProjectionYears)
	assert.True(t, in.IncludeEscrowInSchedule)
	assert.Equal(t, 30, in.LoanDurationYears)

	q.Set("insurance_rate", "x")
	_, err = ParseInputs(q, exampleInputs())
	var perr *ParamError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "insurance_rate", perr.Name)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(Config{Port: 0})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, s.Run(ctx))
}

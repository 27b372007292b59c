package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/propcalc/internal/breakeven"
	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/output"
	"github.com/rgehrsitz/propcalc/internal/property"
)

// Error kinds reported in the JSON error body
const (
	kindBadRequest  = "bad_request"
	kindNotFound    = "not_found"
	kindUnavailable = "unavailable"
	kindUpstream    = "upstream"
	kindInternal    = "internal"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/analysis?cost_price=...&annual_interest_rate=...
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	in, err := ParseInputs(r.URL.Query(), s.defaults)
	if err != nil {
		s.writeError(w, err)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "request"
	}

	analysis, err := s.engine.Analyze(name, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, analysis)
}

// GET /api/affordability?budget=1500[&basis=pi][&target=loan_term]&...
func (s *Server) handleAffordability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in, err := ParseInputs(q, s.defaults)
	if err != nil {
		s.writeError(w, err)
		return
	}
	raw := q.Get("budget")
	if raw == "" {
		s.writeErrorKind(w, http.StatusBadRequest, kindBadRequest, "budget is required")
		return
	}
	budget, err := decimal.NewFromString(raw)
	if err != nil {
		s.writeError(w, &ParamError{Name: "budget", Value: raw, Err: err})
		return
	}

	constraints := breakeven.Constraints{MonthlyBudget: budget, Basis: breakeven.Basis(q.Get("basis"))}
	solver := breakeven.NewDefaultSolver(s.engine.Logger)

	if target := q.Get("target"); target != "" {
		res, err := solver.Solve(r.Context(), breakeven.Request{
			Base:        in,
			Target:      breakeven.Target(target),
			Constraints: constraints,
		})
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, res)
		return
	}

	mr, err := solver.SolveAll(r.Context(), in, constraints)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, mr)
}

// GET /api/schedule.csv?...
func (s *Server) handleScheduleCSV(w http.ResponseWriter, r *http.Request) {
	in, err := ParseInputs(r.URL.Query(), s.defaults)
	if err != nil {
		s.writeError(w, err)
		return
	}
	analysis, err := s.engine.Analyze("schedule", in)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.csv"`)
	if err := output.WriteScheduleCSV(w, analysis.Schedule); err != nil {
		s.log.Error().Err(err).Msg("Failed to write schedule CSV")
	}
}

// GET /api/property?address=...
func (s *Server) handleProperty(w http.ResponseWriter, r *http.Request) {
	if s.lookup == nil {
		s.writeErrorKind(w, http.StatusNotFound, kindUnavailable, "property lookup is not configured")
		return
	}
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		s.writeErrorKind(w, http.StatusBadRequest, kindBadRequest, "address is required")
		return
	}

	record, err := s.lookup.LookupAddress(r.Context(), address)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

// GET /api/zpids?zipcode=...&sort=...
func (s *Server) handleZPIDs(w http.ResponseWriter, r *http.Request) {
	if s.zpids == nil {
		s.writeErrorKind(w, http.StatusNotFound, kindUnavailable, "listing lookup is not configured")
		return
	}
	zipcode := strings.TrimSpace(r.URL.Query().Get("zipcode"))
	if zipcode == "" {
		s.writeErrorKind(w, http.StatusBadRequest, kindBadRequest, "zipcode is required")
		return
	}

	ids, err := s.zpids.FetchZPIDs(r.Context(), zipcode, r.URL.Query().Get("sort"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"zipcode": zipcode, "zpids": ids})
}

// writeError maps err to a status code and JSON error body
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var paramErr *ParamError
	var solverErr *breakeven.BreakEvenError
	switch {
	case errors.As(err, &paramErr):
		s.writeErrorKind(w, http.StatusBadRequest, kindBadRequest, err.Error())
	case errors.Is(err, calculation.ErrInvalidInput):
		s.writeErrorKind(w, http.StatusBadRequest, string(calculation.KindInvalidInput), err.Error())
	case errors.Is(err, calculation.ErrDivideByZero):
		s.writeErrorKind(w, http.StatusUnprocessableEntity, string(calculation.KindDivideByZero), err.Error())
	case errors.As(err, &solverErr):
		s.writeErrorKind(w, http.StatusBadRequest, kindBadRequest, err.Error())
	case errors.Is(err, property.ErrNotFound):
		s.writeErrorKind(w, http.StatusNotFound, kindNotFound, err.Error())
	case errors.Is(err, property.ErrUnauthorized), errors.Is(err, property.ErrUnexpectedStatus):
		s.log.Warn().Err(err).Msg("Provider request failed")
		s.writeErrorKind(w, http.StatusBadGateway, kindUpstream, err.Error())
	default:
		s.log.Error().Err(err).Msg("Request failed")
		s.writeErrorKind(w, http.StatusInternalServerError, kindInternal, err.Error())
	}
}

func (s *Server) writeErrorKind(w http.ResponseWriter, status int, kind, message string) {
	s.writeJSON(w, status, errorResponse{Error: message, Kind: kind})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}

/*
handlers.go - HTTP API handlers for the TVM solver engine

PURPOSE:
  Exposes the solver via REST. Handles HTTP request/response and JSON
  serialization, and delegates every computation to the tvm and cashflow
  packages. The handlers hold no state: each request is an independent
  solve over its own inputs.

ENDPOINTS:
  Solver:
    POST /api/solve               Solve the single unset TVM variable
    POST /api/amortize            Aggregate a period window
    POST /api/amortize/schedule   Per-period schedule rows

  Cash flow:
    POST /api/npv                 Discounted sum at a given rate
    POST /api/irr                 Internal rate of return search

  Scenarios:
    GET  /api/scenarios           List bundled demo problems
    POST /api/scenarios/{id}/run  Run one against its reference answer

ERROR HANDLING:
  Engine errors map onto HTTP status by kind:
  - 400: invalid configuration (frequencies, unset-field count, window)
  - 422: no real/finite solution for the inputs
  - 200 with converged=false: divergent search; the body carries the
         best-effort value and its residual, never presented as exact

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario definitions
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/warp/tvm-engine/cashflow"
	"github.com/warp/tvm-engine/tvm"
)

// Handler carries the HTTP surface. It is stateless; the struct exists so
// the router wiring matches one receiver.
type Handler struct {
	scenarios []scenario
}

// NewHandler creates a handler with the bundled demo scenarios.
func NewHandler() *Handler {
	return &Handler{scenarios: builtinScenarios()}
}

// =============================================================================
// SOLVER HANDLERS
// =============================================================================

// Solve computes the single unset TVM variable.
// POST /api/solve
func (h *Handler) Solve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res, err := tvm.Solve(req.Problem())
	if err != nil && !tvm.IsDivergent(err) {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SolveResponse{
		Variable:  string(res.Variable),
		Value:     res.Value,
		Converged: res.Converged,
		Residual:  res.Residual,
	})
}

// Amortize aggregates principal/interest over [p1, p2].
// POST /api/amortize
func (h *Handler) Amortize(w http.ResponseWriter, r *http.Request) {
	var req AmortizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res, err := tvm.Amortize(req.Problem(), req.P1, req.P2)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AmortizeResponse{
		Principal: res.Principal,
		Interest:  res.Interest,
		Balance:   res.Balance,
	})
}

// Schedule lists the per-period rows for [p1, p2].
// POST /api/amortize/schedule
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req AmortizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rows, err := tvm.Schedule(req.Problem(), req.P1, req.P2)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	dtos := make([]ScheduleRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = ScheduleRowDTO{
			Period:    row.Period,
			Principal: row.Principal.StringFixed(2),
			Interest:  row.Interest.StringFixed(2),
			Balance:   row.Balance.StringFixed(2),
		}
	}
	writeJSON(w, http.StatusOK, ScheduleResponse{Rows: dtos})
}

// =============================================================================
// CASH-FLOW HANDLERS
// =============================================================================

// NPV discounts a series at a nominal annual rate.
// POST /api/npv
func (h *Handler) NPV(w http.ResponseWriter, r *http.Request) {
	var req NPVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	reg, err := cashflow.FromValues(req.CashFlows)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	v, err := reg.NPV(req.AnnualRate, req.PaymentFreq)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AnalysisResponse{Value: v, Converged: true})
}

// IRR searches a series for its internal rate of return.
// POST /api/irr
func (h *Handler) IRR(w http.ResponseWriter, r *http.Request) {
	var req IRRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	reg, err := cashflow.FromValues(req.CashFlows)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	v, err := reg.IRR(req.PaymentFreq)
	if err != nil && !tvm.IsDivergent(err) {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AnalysisResponse{Value: v, Converged: err == nil})
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns the bundled demo problems.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(h.scenarios))
	for i, sc := range h.scenarios {
		dtos[i] = sc.dto()
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RunScenario solves one bundled problem and compares it to its reference.
// POST /api/scenarios/{id}/run
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, sc := range h.scenarios {
		if sc.id != id {
			continue
		}
		computed, err := sc.run()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Scenario failed", err)
			return
		}
		writeJSON(w, http.StatusOK, ScenarioRunResponse{
			ScenarioDTO: sc.dto(),
			Computed:    computed,
			Matches:     abs(computed-sc.expected) <= sc.tolerance,
		})
		return
	}
	writeError(w, http.StatusNotFound, "Unknown scenario", nil)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps the engine's error kinds onto HTTP status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case tvm.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid configuration", err)
	case tvm.IsNoSolution(err):
		writeError(w, http.StatusUnprocessableEntity, "No solution", err)
	default:
		writeError(w, http.StatusInternalServerError, "Solver error", err)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

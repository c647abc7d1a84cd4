/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's Problem/Result structs from the external API contract.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response/*DTO: Types returned to clients

NUMERIC REPRESENTATION:
  The five TVM fields are pointers so that "absent" (the unknown to solve)
  is distinguishable from zero. Amortization schedule rows are emitted as
  decimal strings: they are presentation values rounded to cents and should
  not be re-parsed into binary floats by clients.

VALIDATION:
  Structural validation (JSON shape) happens in handlers; semantic
  validation (frequencies, unset-field count, window bounds) is the
  engine's job and surfaces through its typed errors.

SEE ALSO:
  - handlers.go: Uses these types
  - scenarios.go: Bundled demo problems expressed as SolveRequest
*/
package api

import (
	"github.com/warp/tvm-engine/tvm"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SolveRequest is one TVM equation. Exactly one of the five value fields
// must be absent.
type SolveRequest struct {
	N   *float64 `json:"n,omitempty"`
	IY  *float64 `json:"iy,omitempty"`
	PV  *float64 `json:"pv,omitempty"`
	PMT *float64 `json:"pmt,omitempty"`
	FV  *float64 `json:"fv,omitempty"`

	CompoundingFreq float64 `json:"compounding_frequency"`
	PaymentFreq     float64 `json:"payment_frequency"`
	Timing          string  `json:"timing,omitempty"`
}

// Problem maps the request onto the engine's input struct.
func (r SolveRequest) Problem() tvm.Problem {
	return tvm.Problem{
		N: r.N, IY: r.IY, PV: r.PV, PMT: r.PMT, FV: r.FV,
		Settings: tvm.Settings{
			CompoundingFreq: r.CompoundingFreq,
			PaymentFreq:     r.PaymentFreq,
			Timing:          tvm.Timing(r.Timing),
		},
	}
}

// SolveResponse reports the solved variable. Converged false flags a
// best-effort value whose residual stayed above tolerance.
type SolveResponse struct {
	Variable  string  `json:"variable"`
	Value     float64 `json:"value"`
	Converged bool    `json:"converged"`
	Residual  float64 `json:"residual"`
}

// AmortizeRequest asks for the aggregate over the closed window [P1, P2].
type AmortizeRequest struct {
	SolveRequest
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

// AmortizeResponse is the window aggregate.
type AmortizeResponse struct {
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// ScheduleRowDTO is one period's row, rounded to cents.
type ScheduleRowDTO struct {
	Period    int    `json:"period"`
	Principal string `json:"principal"`
	Interest  string `json:"interest"`
	Balance   string `json:"balance"`
}

// ScheduleResponse lists the requested window's rows.
type ScheduleResponse struct {
	Rows []ScheduleRowDTO `json:"rows"`
}

// NPVRequest discounts a cash-flow series at a nominal annual rate.
type NPVRequest struct {
	CashFlows   []float64 `json:"cash_flows"`
	AnnualRate  float64   `json:"annual_rate"`
	PaymentFreq float64   `json:"payment_frequency"`
}

// IRRRequest searches a cash-flow series for its internal rate of return.
type IRRRequest struct {
	CashFlows   []float64 `json:"cash_flows"`
	PaymentFreq float64   `json:"payment_frequency"`
}

// AnalysisResponse carries an NPV or IRR result. Converged is always true
// for NPV; for IRR it mirrors the search outcome.
type AnalysisResponse struct {
	Value     float64 `json:"value"`
	Converged bool    `json:"converged"`
}

// ScenarioDTO describes a bundled demo problem and its reference answer.
type ScenarioDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Expected    float64 `json:"expected"`
	Tolerance   float64 `json:"tolerance"`
}

// ScenarioRunResponse reports a scenario solved by the engine next to its
// reference answer.
type ScenarioRunResponse struct {
	ScenarioDTO
	Computed float64 `json:"computed"`
	Matches  bool    `json:"matches"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

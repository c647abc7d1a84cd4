/*
Package tvm solves the time-value-of-money equation.

PURPOSE:
  Given four of the five TVM quantities (number of periods, nominal annual
  interest rate, present value, payment, future value), this package computes
  the fifth, plus the derived amortization analysis. Everything is a pure
  function of explicit inputs: the package holds no state between calls.

KEY CONCEPTS IN THIS FILE (types.go):
  - Variable: which of the five TVM quantities is being solved
  - Timing: whether payments fall at the start or end of each period
  - Settings: compounding/payment frequency and timing convention
  - Problem: the five optional fields plus settings, exactly one field unset
  - Result: the solved variable with a convergence flag and final residual

SIGN CONVENTION:
  Cash received is positive, cash paid out is negative. A 200,000 loan
  received today is PV = 200000 with a negative monthly PMT; a deposit is
  PV = -10000 growing to a negative FV (money still "out the door" from the
  depositor's perspective).

DESIGN PRINCIPLES:
  1. Purity: no package-level state, no I/O, no retained references
  2. Boundedness: every iterative search has a hard iteration cap
  3. Honesty: degenerate inputs produce typed errors, never silent NaN

USAGE:
  p := tvm.Problem{
      N: tvm.Value(360), IY: tvm.Value(6), PV: tvm.Value(200000), FV: tvm.Value(0),
      Settings: tvm.Settings{CompoundingFreq: 12, PaymentFreq: 12, Timing: tvm.TimingEnd},
  }
  res, err := tvm.Solve(p) // res.Variable == tvm.VarPMT, res.Value ~ -1199.10

SEE ALSO:
  - solve.go: Solve dispatch and closed-form solutions
  - rootfind.go: Newton/bisection machinery for N and IY
  - amortize.go: period-by-period amortization walk
  - rates.go: nominal <-> periodic rate conversion
*/
package tvm

// =============================================================================
// VARIABLES - The five TVM quantities
// =============================================================================

// Variable identifies one of the five quantities of the TVM equation.
type Variable string

const (
	VarN   Variable = "N"   // number of payment periods
	VarIY  Variable = "I/Y" // nominal annual interest rate, in percent
	VarPV  Variable = "PV"  // present value
	VarPMT Variable = "PMT" // payment per period
	VarFV  Variable = "FV"  // future value
)

// =============================================================================
// SETTINGS - Frequencies and payment timing
// =============================================================================

// Timing states whether payments occur at the start or end of each period.
type Timing string

const (
	// TimingEnd is the ordinary-annuity convention (payment at period end).
	TimingEnd Timing = "END"
	// TimingBegin is the annuity-due convention (payment at period start).
	TimingBegin Timing = "BEGIN"
)

// Settings carries the frequency and timing conventions for a Problem.
// Both frequencies are per year and must be positive.
type Settings struct {
	CompoundingFreq float64
	PaymentFreq     float64
	Timing          Timing
}

// Begin reports whether the annuity-due convention applies. An empty
// Timing defaults to END, matching the usual calculator default.
func (s Settings) Begin() bool {
	return s.Timing == TimingBegin
}

// =============================================================================
// PROBLEM - One solve's worth of input
// =============================================================================

// Problem is a single TVM equation to solve. A nil field is the unknown;
// Solve requires exactly one nil field among the five.
type Problem struct {
	N   *float64
	IY  *float64
	PV  *float64
	PMT *float64
	FV  *float64

	Settings Settings
}

// Value is a convenience for building Problem literals.
func Value(v float64) *float64 {
	return &v
}

// Unknown returns the single unset variable, or an error when zero or more
// than one field is unset.
func (p Problem) Unknown() (Variable, error) {
	var unset []Variable
	for _, f := range []struct {
		v   Variable
		ptr *float64
	}{
		{VarN, p.N}, {VarIY, p.IY}, {VarPV, p.PV}, {VarPMT, p.PMT}, {VarFV, p.FV},
	} {
		if f.ptr == nil {
			unset = append(unset, f.v)
		}
	}
	if len(unset) != 1 {
		return "", &ConfigurationError{
			Field:  "problem",
			Reason: "exactly one of N, I/Y, PV, PMT, FV must be unset",
		}
	}
	return unset[0], nil
}

// =============================================================================
// RESULT - Solved value with convergence status
// =============================================================================

// Result is the outcome of a Solve call.
//
// Converged is false only when the root finder exhausted both Newton and
// bisection without meeting tolerance; in that case Solve also returns a
// *DivergentSearchError and Value holds the best estimate seen. Closed-form
// solutions always report Converged with a zero Residual.
type Result struct {
	Variable  Variable
	Value     float64
	Converged bool
	Residual  float64
}

// AmortizationResult aggregates principal and interest over a period window
// and reports the balance after the window's last period.
type AmortizationResult struct {
	Principal float64
	Interest  float64
	Balance   float64
}

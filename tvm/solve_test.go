/*
solve_test.go - Contract tests for the TVM solver

PURPOSE:
  These tests pin the solver contract down to concrete numbers.
  The scenario values come from reference calculator fixtures; the
  round-trip tests pin the algebraic consistency between the closed forms
  and the iterative searches.

ORGANIZATION:
  1. Reference scenarios - known calculator results
  2. Round trips - solve one variable, recover another
  3. Timing conventions - BEGIN vs END
  4. Zero-rate boundary - continuity at the 1e-10 threshold
  5. Error classification - configuration vs no-solution
*/
package tvm_test

import (
	"errors"
	"math"
	"testing"

	"github.com/warp/tvm-engine/tvm"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func monthly() tvm.Settings {
	return tvm.Settings{CompoundingFreq: 12, PaymentFreq: 12, Timing: tvm.TimingEnd}
}

func solveOrFail(t *testing.T, p tvm.Problem) tvm.Result {
	t.Helper()
	res, err := tvm.Solve(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return res
}

func within(t *testing.T, got, want, tol float64, what string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol %g)", what, got, want, tol)
	}
}

// =============================================================================
// REFERENCE SCENARIOS
// =============================================================================

func TestSolve_FutureValue_LumpSumSavings(t *testing.T) {
	// GIVEN: 10,000 deposited for 120 months at 5% nominal, no payments
	// WHEN: Solving for FV
	// THEN: The deposit grows to about 16,470.09 (still negative: money out)

	p := tvm.Problem{
		N: tvm.Value(120), IY: tvm.Value(5), PV: tvm.Value(-10000), PMT: tvm.Value(0),
		Settings: monthly(),
	}
	res := solveOrFail(t, p)

	if res.Variable != tvm.VarFV {
		t.Fatalf("expected FV to be solved, got %s", res.Variable)
	}
	within(t, res.Value, -16470.09, 1, "FV")
	if !res.Converged {
		t.Error("closed-form FV must report converged")
	}
}

func TestSolve_Payment_ThirtyYearMortgage(t *testing.T) {
	// GIVEN: 200,000 borrowed over 360 months at 6% nominal, fully amortized
	// WHEN: Solving for PMT
	// THEN: Monthly payment is about -1,199.10

	p := tvm.Problem{
		N: tvm.Value(360), IY: tvm.Value(6), PV: tvm.Value(200000), FV: tvm.Value(0),
		Settings: monthly(),
	}
	res := solveOrFail(t, p)

	within(t, res.Value, -1199.10, 2, "PMT")
}

func TestSolve_Rate_RecoversMortgageRate(t *testing.T) {
	// GIVEN: The mortgage above with its known payment, rate unset
	// WHEN: Solving for I/Y
	// THEN: The nominal annual rate comes back as 6%

	p := tvm.Problem{
		N: tvm.Value(360), IY: tvm.Value(6), PV: tvm.Value(200000), FV: tvm.Value(0),
		Settings: monthly(),
	}
	pmt := solveOrFail(t, p).Value

	p.PMT = tvm.Value(pmt)
	p.IY = nil
	res := solveOrFail(t, p)

	if res.Variable != tvm.VarIY {
		t.Fatalf("expected I/Y to be solved, got %s", res.Variable)
	}
	within(t, res.Value, 6, 1e-4, "I/Y")
	if !res.Converged {
		t.Errorf("rate search should converge, residual %g", res.Residual)
	}
}

func TestSolve_Periods_RecoversMortgageTerm(t *testing.T) {
	// GIVEN: The mortgage above with its known payment, N unset
	// WHEN: Solving for N
	// THEN: The term comes back as 360 months

	p := tvm.Problem{
		N: tvm.Value(360), IY: tvm.Value(6), PV: tvm.Value(200000), FV: tvm.Value(0),
		Settings: monthly(),
	}
	pmt := solveOrFail(t, p).Value

	p.PMT = tvm.Value(pmt)
	p.N = nil
	res := solveOrFail(t, p)

	within(t, res.Value, 360, 1e-4, "N")
}

func TestSolve_Periods_LumpSumDoubling(t *testing.T) {
	// GIVEN: Money compounding at 1% per period, no payments
	// WHEN: Asking how long until it doubles
	// THEN: N = ln(2)/ln(1.01), the closed-form lump-sum answer

	p := tvm.Problem{
		IY: tvm.Value(12), PV: tvm.Value(-1000), PMT: tvm.Value(0), FV: tvm.Value(-2000),
		Settings: monthly(),
	}
	res := solveOrFail(t, p)

	within(t, res.Value, math.Log(2)/math.Log(1.01), 1e-9, "N")
}

func TestSolve_Periods_ZeroRate(t *testing.T) {
	// GIVEN: No interest, 100 paid in per period toward a 1,200 target
	// WHEN: Solving for N
	// THEN: Exactly 12 periods, no search involved

	p := tvm.Problem{
		IY: tvm.Value(0), PV: tvm.Value(0), PMT: tvm.Value(-100), FV: tvm.Value(-1200),
		Settings: monthly(),
	}
	res := solveOrFail(t, p)

	within(t, res.Value, 12, 1e-9, "N")
}

// =============================================================================
// ROUND TRIPS
// =============================================================================

func TestSolve_RoundTrip_PV_PMT_N(t *testing.T) {
	// GIVEN: A fully specified problem and its solved FV
	// WHEN: Unsetting PV, PMT and N in turn against that FV
	// THEN: Each original value is recovered within 1e-6 relative tolerance

	base := tvm.Problem{
		N: tvm.Value(120), IY: tvm.Value(5), PV: tvm.Value(-10000), PMT: tvm.Value(-100),
		Settings: monthly(),
	}
	fv := solveOrFail(t, base).Value
	base.FV = tvm.Value(fv)

	cases := []struct {
		name  string
		unset func(p *tvm.Problem)
		want  float64
	}{
		{"PV", func(p *tvm.Problem) { p.PV = nil }, -10000},
		{"PMT", func(p *tvm.Problem) { p.PMT = nil }, -100},
		{"N", func(p *tvm.Problem) { p.N = nil }, 120},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			tc.unset(&p)
			res := solveOrFail(t, p)
			rel := math.Abs(res.Value-tc.want) / math.Abs(tc.want)
			if rel > 1e-6 {
				t.Errorf("round trip %s: got %.8f, want %.8f (rel err %g)", tc.name, res.Value, tc.want, rel)
			}
		})
	}
}

func TestSolve_RoundTrip_Rate_BeginTiming(t *testing.T) {
	// GIVEN: An annuity-due problem with a known 8% nominal rate
	// WHEN: Solving FV, then recovering I/Y from it
	// THEN: The rate round-trips through the Newton search

	base := tvm.Problem{
		N: tvm.Value(48), IY: tvm.Value(8), PV: tvm.Value(0), PMT: tvm.Value(-250),
		Settings: tvm.Settings{CompoundingFreq: 12, PaymentFreq: 12, Timing: tvm.TimingBegin},
	}
	fv := solveOrFail(t, base).Value
	base.FV = tvm.Value(fv)
	base.IY = nil

	res := solveOrFail(t, base)
	within(t, res.Value, 8, 1e-4, "I/Y round trip (BEGIN)")
}

// =============================================================================
// TIMING CONVENTIONS
// =============================================================================

func TestSolve_Payment_BeginBeatsEnd(t *testing.T) {
	// GIVEN: Identical loans, one END and one BEGIN
	// WHEN: Solving PMT for both at a positive rate
	// THEN: |PMT| under BEGIN is strictly smaller (earlier payments are
	//       worth more, so less is needed per period)

	end := tvm.Problem{
		N: tvm.Value(360), IY: tvm.Value(6), PV: tvm.Value(200000), FV: tvm.Value(0),
		Settings: monthly(),
	}
	begin := end
	begin.Settings.Timing = tvm.TimingBegin

	pmtEnd := solveOrFail(t, end).Value
	pmtBegin := solveOrFail(t, begin).Value

	if math.Abs(pmtBegin) >= math.Abs(pmtEnd) {
		t.Errorf("expected |PMT(BEGIN)| < |PMT(END)|, got %.4f vs %.4f", pmtBegin, pmtEnd)
	}
}

// =============================================================================
// ZERO-RATE BOUNDARY
// =============================================================================

func TestSolve_FutureValue_ContinuousAtZeroRateThreshold(t *testing.T) {
	// GIVEN: Rates straddling the 1e-10 zero-rate threshold
	// WHEN: Solving FV with payments only
	// THEN: The annuity factor degrades continuously to n; the two results
	//       agree to within a cent. The gap at the boundary is the genuine
	//       second-order annuity term plus the Pow round-off it amplifies,
	//       about 1.5e-3 here, so the bound leaves headroom without masking
	//       a real branch mismatch (which would be off by whole dollars).

	mk := func(iy float64) tvm.Problem {
		return tvm.Problem{
			N: tvm.Value(120), IY: tvm.Value(iy), PV: tvm.Value(0), PMT: tvm.Value(-100),
			Settings: monthly(),
		}
	}

	// 1e-7 percent nominal => periodic ~ 8e-11, inside the zero branch.
	below := solveOrFail(t, mk(1e-7)).Value
	// 1e-6 percent nominal => periodic ~ 8e-10, outside it.
	above := solveOrFail(t, mk(1e-6)).Value

	if math.Abs(below-above) > 1e-2 {
		t.Errorf("annuity factor discontinuous at zero-rate threshold: %.9f vs %.9f", below, above)
	}
	within(t, below, -12000, 1e-3, "zero-rate FV limit")
}

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

func TestSolve_Errors(t *testing.T) {
	cases := []struct {
		name    string
		problem tvm.Problem
		check   func(error) bool
		kind    string
	}{
		{
			name: "all fields set",
			problem: tvm.Problem{
				N: tvm.Value(12), IY: tvm.Value(5), PV: tvm.Value(1), PMT: tvm.Value(1), FV: tvm.Value(1),
				Settings: monthly(),
			},
			check: tvm.IsClientError, kind: "InvalidConfiguration",
		},
		{
			name: "two fields unset",
			problem: tvm.Problem{
				N: tvm.Value(12), IY: tvm.Value(5), PV: tvm.Value(1),
				Settings: monthly(),
			},
			check: tvm.IsClientError, kind: "InvalidConfiguration",
		},
		{
			name: "zero payment frequency",
			problem: tvm.Problem{
				N: tvm.Value(12), IY: tvm.Value(5), PV: tvm.Value(1), PMT: tvm.Value(1),
				Settings: tvm.Settings{CompoundingFreq: 12},
			},
			check: tvm.IsClientError, kind: "InvalidConfiguration",
		},
		{
			name: "payment with vanishing annuity factor",
			problem: tvm.Problem{
				N: tvm.Value(0), IY: tvm.Value(0), PV: tvm.Value(100), FV: tvm.Value(100),
				Settings: monthly(),
			},
			check: tvm.IsNoSolution, kind: "NoSolution",
		},
		{
			name: "periods with sign-mismatched lump sum",
			problem: tvm.Problem{
				IY: tvm.Value(5), PV: tvm.Value(-100), PMT: tvm.Value(0), FV: tvm.Value(100),
				Settings: monthly(),
			},
			check: tvm.IsNoSolution, kind: "NoSolution",
		},
		{
			name: "periods with zero rate and zero payment",
			problem: tvm.Problem{
				IY: tvm.Value(0), PV: tvm.Value(-100), PMT: tvm.Value(0), FV: tvm.Value(200),
				Settings: monthly(),
			},
			check: tvm.IsNoSolution, kind: "NoSolution",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tvm.Solve(tc.problem)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !tc.check(err) {
				t.Errorf("expected %s, got %v", tc.kind, err)
			}
		})
	}
}

func TestSolve_ConfigurationError_Structured(t *testing.T) {
	// GIVEN: A problem with a non-positive compounding frequency
	// WHEN: Solving
	// THEN: The error unwraps to the sentinel and names the field

	p := tvm.Problem{
		N: tvm.Value(12), IY: tvm.Value(5), PV: tvm.Value(1), PMT: tvm.Value(1),
		Settings: tvm.Settings{CompoundingFreq: -1, PaymentFreq: 12},
	}
	_, err := tvm.Solve(p)

	var cfgErr *tvm.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigurationError, got %T", err)
	}
	if cfgErr.Field != "compounding_frequency" {
		t.Errorf("expected field compounding_frequency, got %s", cfgErr.Field)
	}
	if !errors.Is(err, tvm.ErrInvalidConfiguration) {
		t.Error("should unwrap to ErrInvalidConfiguration")
	}
}

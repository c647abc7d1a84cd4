/*
solve.go - Solve dispatch and closed-form solutions

PURPOSE:
  Entry point of the engine. Validates the Problem, derives the periodic
  rate, and routes the single unknown to its solver: FV, PV and PMT have
  algebraic solutions, N reduces to one in the zero-rate and lump-sum
  cases, and everything else goes through the root finder.

THE EQUATION:
  With i the periodic rate and af the annuity factor,

      FV = PV*(1+i)^n + PMT*af(i, n, begin)

  af(i, n, begin) accumulates a stream of equal payments:
      |i| < 1e-10:  n                       (zero-rate limit)
      otherwise:    ((1+i)^n - 1) / i       times (1+i) under BEGIN

DEGENERACY POLICY:
  Every division and logarithm is guarded before use. A vanishing annuity
  factor, a zero payment with zero rate, or a non-positive FV/PV ratio is a
  typed NoSolutionError, never a NaN handed back to the caller.

SEE ALSO:
  - rootfind.go: general N-search and the rate search
  - rates.go: periodic rate derivation
*/
package tvm

import "math"

const (
	// zeroRateEps is the |i| below which the annuity factor switches to its
	// zero-rate limit n; the exact expression divides by i.
	zeroRateEps = 1e-10

	// degenerateEps guards divisions by the annuity factor or the payment.
	degenerateEps = 1e-15
)

// annuityFactor is the accumulated-value multiplier for a stream of equal
// payments over n periods at rate i.
func annuityFactor(i, n float64, begin bool) float64 {
	if math.Abs(i) < zeroRateEps {
		return n
	}
	af := (math.Pow(1+i, n) - 1) / i
	if begin {
		af *= 1 + i
	}
	return af
}

// =============================================================================
// SOLVE - Compute the single unknown variable
// =============================================================================

// Solve computes the one unset field of p. See the package documentation
// for the sign convention.
//
// Errors follow ERROR CATEGORIES in errors.go: a *ConfigurationError for
// bad settings or the wrong number of unset fields, a *NoSolutionError for
// degenerate algebra, and a *DivergentSearchError (with the best estimate
// still populated in the Result) when the iterative searches fail to meet
// tolerance.
func Solve(p Problem) (Result, error) {
	if err := validateSettings(p.Settings); err != nil {
		return Result{}, err
	}
	unknown, err := p.Unknown()
	if err != nil {
		return Result{}, err
	}

	switch unknown {
	case VarFV:
		return solveFV(p)
	case VarPV:
		return solvePV(p)
	case VarPMT:
		return solvePMT(p)
	case VarN:
		return solveN(p)
	default:
		return solveRate(p)
	}
}

func validateSettings(s Settings) error {
	if s.CompoundingFreq <= 0 {
		return &ConfigurationError{Field: "compounding_frequency", Reason: "must be positive"}
	}
	if s.PaymentFreq <= 0 {
		return &ConfigurationError{Field: "payment_frequency", Reason: "must be positive"}
	}
	switch s.Timing {
	case TimingEnd, TimingBegin, "":
		return nil
	default:
		return &ConfigurationError{Field: "timing", Reason: "must be END or BEGIN"}
	}
}

// periodic derives the per-payment-period rate for a problem whose IY is set.
func (p Problem) periodic() float64 {
	return PeriodicRate(*p.IY, p.Settings.CompoundingFreq, p.Settings.PaymentFreq)
}

// =============================================================================
// CLOSED FORMS
// =============================================================================

func solveFV(p Problem) (Result, error) {
	i := p.periodic()
	n := *p.N
	fv := *p.PV*math.Pow(1+i, n) + *p.PMT*annuityFactor(i, n, p.Settings.Begin())
	if !isFinite(fv) {
		return Result{}, &NoSolutionError{Variable: VarFV, Reason: "result is not finite"}
	}
	return Result{Variable: VarFV, Value: fv, Converged: true}, nil
}

func solvePV(p Problem) (Result, error) {
	i := p.periodic()
	n := *p.N
	growth := math.Pow(1+i, n)
	if math.Abs(growth) < degenerateEps {
		return Result{}, &NoSolutionError{Variable: VarPV, Reason: "compound growth factor vanishes"}
	}
	pv := (*p.FV - *p.PMT*annuityFactor(i, n, p.Settings.Begin())) / growth
	if !isFinite(pv) {
		return Result{}, &NoSolutionError{Variable: VarPV, Reason: "result is not finite"}
	}
	return Result{Variable: VarPV, Value: pv, Converged: true}, nil
}

func solvePMT(p Problem) (Result, error) {
	i := p.periodic()
	n := *p.N
	af := annuityFactor(i, n, p.Settings.Begin())
	if math.Abs(af) < degenerateEps {
		return Result{}, &NoSolutionError{Variable: VarPMT, Reason: "annuity factor vanishes"}
	}
	pmt := (*p.FV - *p.PV*math.Pow(1+i, n)) / af
	if !isFinite(pmt) {
		return Result{}, &NoSolutionError{Variable: VarPMT, Reason: "result is not finite"}
	}
	return Result{Variable: VarPMT, Value: pmt, Converged: true}, nil
}

// solveN handles the two reducible cases and delegates the general one.
func solveN(p Problem) (Result, error) {
	i := p.periodic()
	pv, pmt, fv := *p.PV, *p.PMT, *p.FV

	// Zero rate: balance moves by pmt per period, nothing compounds.
	if math.Abs(i) < zeroRateEps {
		if math.Abs(pmt) < degenerateEps {
			return Result{}, &NoSolutionError{Variable: VarN, Reason: "zero rate and zero payment"}
		}
		n := (fv - pv) / pmt
		if !isFinite(n) {
			return Result{}, &NoSolutionError{Variable: VarN, Reason: "result is not finite"}
		}
		return Result{Variable: VarN, Value: n, Converged: true}, nil
	}

	// Zero payment: pure lump-sum growth, invert the compound term.
	if math.Abs(pmt) < degenerateEps {
		if math.Abs(pv) < degenerateEps {
			return Result{}, &NoSolutionError{Variable: VarN, Reason: "zero present value with no payment"}
		}
		ratio := fv / pv
		if ratio <= 0 {
			return Result{}, &NoSolutionError{Variable: VarN, Reason: "FV and PV sign mismatch"}
		}
		if 1+i <= 0 {
			return Result{}, &NoSolutionError{Variable: VarN, Reason: "rate at or below -100%"}
		}
		n := math.Log(ratio) / math.Log(1+i)
		if !isFinite(n) {
			return Result{}, &NoSolutionError{Variable: VarN, Reason: "result is not finite"}
		}
		return Result{Variable: VarN, Value: n, Converged: true}, nil
	}

	return searchN(p, i)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

/*
rootfind.go - Newton-Raphson with bisection fallback

PURPOSE:
  The iterative side of the engine. Two consumers inside this package (the
  general N-search and the rate search) and one outside (cashflow IRR)
  share the same strategy sequence:

    1. Newton-Raphson from an initial guess, steps clamped to an
       admissible range, best iterate tracked by |residual|
    2. If the best residual is still above tolerance, probe a fixed set of
       test points for a sign change and bisect the bracket
    3. Return the best value seen either way, flagged converged or not

  The point of the sequence is the contract: a caller never receives an
  unconverged value silently. Convergence failure surfaces as a
  DivergentSearchError that still carries the best estimate.

TUNING CONSTANTS:
  The thresholds below are load-bearing. The 1e-10 zero-rate boundary, the
  1e-15 degeneracy guard and the 1e-6 acceptance tolerance are pinned by
  the continuity and round-trip tests; do not retune casually.

SEE ALSO:
  - solve.go: closed forms that bypass this machinery
  - cashflow/analysis.go: IRR over the NPV residual via FindRoot
*/
package tvm

import "math"

const (
	// residualTol is the acceptance tolerance on |f| for an iterative
	// solution to count as converged.
	residualTol = 1e-6

	// bisectTol stops bisection early once the midpoint residual is
	// effectively zero.
	bisectTol = 1e-10

	maxNewtonIterations = 50
	maxBisectIterations = 100

	rateInitialGuess = 0.05
	rateStepMin      = -0.99
	rateStepMax      = 10
	rateBracketLo    = -0.99
	rateBracketHi    = 2

	nBracketLo = 0.01
	nBracketHi = 1000
)

// rateProbes are the fixed test points scanned for a sign change before
// bisecting the rate bracket.
var rateProbes = []float64{-0.5, 0, 0.01, 0.1, 0.5, 1, 1.5}

// nProbes cover the period search geometrically when [0.01, 1000] itself
// holds no sign change.
var nProbes = []float64{nBracketLo, 1, 10, 100, 1000, 10000}

// Func is a scalar function of one real variable.
type Func func(x float64) float64

// RootOptions parameterizes one FindRoot run. All fields are required.
type RootOptions struct {
	// Guess seeds the Newton phase.
	Guess float64

	// StepMin/StepMax bound Newton steps: a step landing outside
	// (StepMin, StepMax] is averaged back toward the current iterate
	// rather than taken, guarding against geometric blow-up.
	StepMin, StepMax float64

	// BracketLo/BracketHi and Probes define the bisection fallback. The
	// probe points are scanned in order, endpoints included, for a pair
	// of opposite-sign residuals.
	BracketLo, BracketHi float64
	Probes               []float64

	NewtonIterations int
	BisectIterations int

	// Tolerance is the |f| acceptance threshold; BisectTolerance is the
	// tighter early-exit threshold inside bisection.
	Tolerance       float64
	BisectTolerance float64
}

// RootResult is the best iterate seen across both strategies.
type RootResult struct {
	Value     float64
	Residual  float64
	Converged bool
}

// RateSearchOptions returns the standard rate-domain search configuration
// seeded with the given initial guess. Exported for the cash-flow analyzer,
// which runs the same strategy over the NPV residual.
func RateSearchOptions(guess float64) RootOptions {
	return RootOptions{
		Guess:            guess,
		StepMin:          rateStepMin,
		StepMax:          rateStepMax,
		BracketLo:        rateBracketLo,
		BracketHi:        rateBracketHi,
		Probes:           rateProbes,
		NewtonIterations: maxNewtonIterations,
		BisectIterations: maxBisectIterations,
		Tolerance:        residualTol,
		BisectTolerance:  bisectTol,
	}
}

// =============================================================================
// FIND ROOT - Newton phase, then bracketed bisection
// =============================================================================

// FindRoot locates a zero of f using Newton-Raphson with df as the
// derivative, falling back to bracketed bisection when Newton's best
// residual stays above tolerance. The best iterate is always returned;
// Converged reports whether it met Tolerance.
func FindRoot(f, df Func, opts RootOptions) RootResult {
	best := RootResult{Value: opts.Guess, Residual: math.Inf(1)}

	x := opts.Guess
	for iter := 0; iter < opts.NewtonIterations; iter++ {
		fx := f(x)
		if r := math.Abs(fx); r < best.Residual {
			best.Value, best.Residual = x, r
		}
		if math.Abs(fx) < opts.Tolerance {
			break
		}
		d := df(x)
		if !isFinite(d) || math.Abs(d) < degenerateEps {
			break
		}
		next := x - fx/d
		if !isFinite(next) {
			break
		}
		// Reject escapes from the admissible range by averaging the step
		// back toward the current iterate.
		if next <= opts.StepMin {
			next = (x + opts.StepMin) / 2
		} else if next > opts.StepMax {
			next = (x + opts.StepMax) / 2
		}
		x = next
	}

	if best.Residual > opts.Tolerance {
		if lo, hi, ok := bracketSignChange(f, probePoints(opts)); ok {
			v, r := bisect(f, lo, hi, opts.BisectIterations, opts.BisectTolerance)
			if r < best.Residual {
				best.Value, best.Residual = v, r
			}
		}
	}

	best.Converged = best.Residual <= opts.Tolerance
	return best
}

func probePoints(opts RootOptions) []float64 {
	points := make([]float64, 0, len(opts.Probes)+2)
	points = append(points, opts.BracketLo)
	points = append(points, opts.Probes...)
	points = append(points, opts.BracketHi)
	return points
}

// bracketSignChange scans consecutive probe points for opposite-sign
// residuals.
func bracketSignChange(f Func, points []float64) (lo, hi float64, ok bool) {
	prev := points[0]
	fprev := f(prev)
	for _, p := range points[1:] {
		fp := f(p)
		if isFinite(fprev) && isFinite(fp) && (fprev < 0) != (fp < 0) {
			return prev, p, true
		}
		prev, fprev = p, fp
	}
	return 0, 0, false
}

// bisect halves [lo, hi] until the midpoint residual drops under tol or the
// iteration budget runs out, returning the final midpoint either way.
func bisect(f Func, lo, hi float64, maxIter int, tol float64) (x, residual float64) {
	flo := f(lo)
	for iter := 0; iter < maxIter; iter++ {
		x = (lo + hi) / 2
		fx := f(x)
		if residual = math.Abs(fx); residual < tol {
			return x, residual
		}
		if (fx < 0) == (flo < 0) {
			lo, flo = x, fx
		} else {
			hi = x
		}
	}
	x = (lo + hi) / 2
	return x, math.Abs(f(x))
}

// =============================================================================
// N-SEARCH - Bisection over the period count
// =============================================================================

// searchN solves for N when both the rate and the payment are non-zero, so
// neither closed-form reduction applies. The residual is flat at FV-PV for
// n <= 0, which keeps probes out of the invalid domain.
func searchN(p Problem, i float64) (Result, error) {
	pv, pmt, fv := *p.PV, *p.PMT, *p.FV
	begin := p.Settings.Begin()

	f := func(n float64) float64 {
		if n <= 0 {
			return fv - pv
		}
		return fv - pv*math.Pow(1+i, n) - pmt*annuityFactor(i, n, begin)
	}

	lo, hi := float64(nBracketLo), float64(nBracketHi)
	if (f(lo) < 0) == (f(hi) < 0) {
		if blo, bhi, ok := bracketSignChange(f, nProbes); ok {
			lo, hi = blo, bhi
		}
	}

	value, residual := bisect(f, lo, hi, maxBisectIterations, bisectTol)
	result := Result{Variable: VarN, Value: value, Converged: residual <= residualTol, Residual: residual}
	if !result.Converged {
		return result, &DivergentSearchError{Variable: VarN, Estimate: value, Residual: residual}
	}
	return result, nil
}

// =============================================================================
// RATE SEARCH - Newton over the periodic rate, bisection fallback
// =============================================================================

// solveRate finds the periodic rate zeroing the TVM residual, then converts
// it back to a nominal annual percentage. The derivative is analytic, with
// a second-order Taylor form at i ~ 0 where the exact expression is
// singular.
func solveRate(p Problem) (Result, error) {
	n, pv, pmt, fv := *p.N, *p.PV, *p.PMT, *p.FV
	begin := p.Settings.Begin()

	f := func(i float64) float64 {
		return fv - pv*math.Pow(1+i, n) - pmt*annuityFactor(i, n, begin)
	}
	df := func(i float64) float64 {
		if math.Abs(i) < zeroRateEps {
			// lim i->0 of the derivative below.
			return -pv*n - pmt*n*(n+1)/2
		}
		grow := math.Pow(1+i, n)
		growPrev := math.Pow(1+i, n-1)
		af := (grow - 1) / i
		daf := (n*i*growPrev - (grow - 1)) / (i * i)
		if begin {
			daf = daf*(1+i) + af
		}
		return -pv*n*growPrev - pmt*daf
	}

	found := FindRoot(f, df, RateSearchOptions(rateInitialGuess))

	nominal := NominalRate(found.Value, p.Settings.CompoundingFreq, p.Settings.PaymentFreq)
	if !isFinite(nominal) {
		return Result{}, &NoSolutionError{Variable: VarIY, Reason: "result is not finite"}
	}
	result := Result{Variable: VarIY, Value: nominal, Converged: found.Converged, Residual: found.Residual}
	if !found.Converged {
		return result, &DivergentSearchError{Variable: VarIY, Estimate: nominal, Residual: found.Residual}
	}
	return result, nil
}

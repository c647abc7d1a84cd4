/*
analysis.go - NPV and IRR over a cash-flow series

PURPOSE:
  Discounts an ordered series of cash flows and searches for its internal
  rate of return. The IRR search is the same Newton-then-bisection strategy
  the rate solver uses, run over the NPV residual directly.

PRECONDITIONS:
  Both analyses need at least two entries and a positive payment frequency.
  IRR additionally requires at least one positive and one negative flow;
  without mixed signs the NPV residual cannot cross zero in any normal
  configuration, so the search fails fast instead of wandering.

RATE HANDLING:
  NPV takes a nominal annual rate in percent; the per-period discount rate
  is rate/100/py. IRR searches the per-period domain and annualizes the
  root as r * py * 100.

SEE ALSO:
  - series.go: the register these functions consume
  - tvm/rootfind.go: FindRoot and the shared search configuration
*/
package cashflow

import (
	"math"

	"github.com/warp/tvm-engine/tvm"
)

// irrInitialGuess seeds the Newton phase of the IRR search.
const irrInitialGuess = 0.1

// NPV discounts the series at the given nominal annual rate (percent) and
// payment frequency: sum of flows[t] / (1+r)^t with r = rate/100/py.
func NPV(flows []float64, annualRatePercent, py float64) (float64, error) {
	if err := validateFlows(flows, py); err != nil {
		return 0, err
	}
	rate := annualRatePercent / 100 / py
	v := npvAt(flows, rate)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &tvm.NoSolutionError{Variable: "NPV", Reason: "discounted sum is not finite"}
	}
	return v, nil
}

// IRR finds the annualized rate (percent) at which the series' NPV is
// zero. On a divergent search the best estimate is still returned along
// with a *tvm.DivergentSearchError.
func IRR(flows []float64, py float64) (float64, error) {
	if err := validateFlows(flows, py); err != nil {
		return 0, err
	}
	if !mixedSigns(flows) {
		return 0, &tvm.NoSolutionError{
			Variable: "IRR",
			Reason:   "series needs at least one positive and one negative flow",
		}
	}

	f := func(r float64) float64 {
		return npvAt(flows, r)
	}
	df := func(r float64) float64 {
		var d float64
		for t := 1; t < len(flows); t++ {
			d -= float64(t) * flows[t] / math.Pow(1+r, float64(t+1))
		}
		return d
	}

	found := tvm.FindRoot(f, df, tvm.RateSearchOptions(irrInitialGuess))
	annualized := found.Value * py * 100
	if !found.Converged {
		return annualized, &tvm.DivergentSearchError{
			Variable: "IRR",
			Estimate: annualized,
			Residual: found.Residual,
		}
	}
	return annualized, nil
}

// NPV discounts the register at the given nominal annual rate (percent).
func (s *Series) NPV(annualRatePercent, py float64) (float64, error) {
	return NPV(s.Values(), annualRatePercent, py)
}

// IRR finds the register's annualized internal rate of return (percent).
func (s *Series) IRR(py float64) (float64, error) {
	return IRR(s.Values(), py)
}

func npvAt(flows []float64, rate float64) float64 {
	var sum float64
	for t, cf := range flows {
		sum += cf / math.Pow(1+rate, float64(t))
	}
	return sum
}

func validateFlows(flows []float64, py float64) error {
	if len(flows) < 2 {
		return &tvm.ConfigurationError{Field: "cash_flows", Reason: "need at least two entries"}
	}
	if py <= 0 {
		return &tvm.ConfigurationError{Field: "payment_frequency", Reason: "must be positive"}
	}
	return nil
}

func mixedSigns(flows []float64) bool {
	var pos, neg bool
	for _, cf := range flows {
		if cf > 0 {
			pos = true
		}
		if cf < 0 {
			neg = true
		}
	}
	return pos && neg
}

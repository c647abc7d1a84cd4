/*
amortize.go - Period-by-period amortization

PURPOSE:
  Decomposes each payment period into its principal and interest portions
  and walks the running balance. The walk is a sequential simulation on
  purpose: an amortization schedule is DEFINED period by period, and the
  window aggregate must match the row-by-row decomposition exactly, not
  just the algebraic end state.

WINDOWING:
  Callers ask for a closed window [p1, p2], but the balance is always
  walked from period 1 because each period's interest depends on the
  running balance. Principal and interest accumulate only for periods
  >= p1; the returned balance is the state after period p2.

TIMING CONVENTIONS:
  END:   interest accrues on the opening balance, the payment then covers
         interest first and the remainder reduces principal.
  BEGIN: the payment lands at the period start and reduces the balance
         immediately; interest then accrues on the reduced balance.

  Both walks unroll to the closed-form compound expression, so the balance
  after period N equals the FV the closed forms produce for the same
  inputs.

ROUNDING:
  Amortize and the running balance are pure float64. Schedule additionally
  emits per-row values rounded to two decimal places via shopspring/decimal
  for presentation; rounding never feeds back into the walk.

SEE ALSO:
  - solve.go: the closed forms the walk must agree with
*/
package tvm

import (
	"math"

	"github.com/shopspring/decimal"
)

// ScheduleEntry is one period's row of an amortization schedule, rounded
// to two decimal places for presentation.
type ScheduleEntry struct {
	Period    int
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Balance   decimal.Decimal
}

// Amortize aggregates principal and interest over the closed period window
// [p1, p2] and returns the balance after period p2. The problem's N, IY,
// PV and PMT must all be set; FV is not consulted. Nothing is cached: the
// walk reruns on every call so edits to any input are always reflected.
func Amortize(p Problem, p1, p2 int) (AmortizationResult, error) {
	i, pv, pmt, err := amortizationInputs(p, p1, p2)
	if err != nil {
		return AmortizationResult{}, err
	}

	var res AmortizationResult
	walk(i, pv, pmt, p2, p.Settings.Begin(), func(period int, principal, interest, balance float64) {
		if period >= p1 {
			res.Principal += principal
			res.Interest += interest
		}
		res.Balance = balance
	})
	return res, nil
}

// Schedule returns the per-period rows for the window [p1, p2], each row
// rounded to cents. The underlying walk is identical to Amortize's, so the
// unrounded rows sum to the Amortize aggregate.
func Schedule(p Problem, p1, p2 int) ([]ScheduleEntry, error) {
	i, pv, pmt, err := amortizationInputs(p, p1, p2)
	if err != nil {
		return nil, err
	}

	rows := make([]ScheduleEntry, 0, p2-p1+1)
	walk(i, pv, pmt, p2, p.Settings.Begin(), func(period int, principal, interest, balance float64) {
		if period >= p1 {
			rows = append(rows, ScheduleEntry{
				Period:    period,
				Principal: round2(principal),
				Interest:  round2(interest),
				Balance:   round2(balance),
			})
		}
	})
	return rows, nil
}

// walk runs the simulation from period 1 through p2, reporting each
// period's decomposition and the balance after it.
func walk(i, pv, pmt float64, p2 int, begin bool, visit func(period int, principal, interest, balance float64)) {
	balance := pv
	for period := 1; period <= p2; period++ {
		var principal, interest float64
		if begin {
			// Payment at period start; interest accrues on the reduced
			// balance and capitalizes.
			principal = -pmt
			balance += pmt
			interest = balance * i
			balance += interest
		} else {
			interest = balance * i
			principal = -pmt - interest
			balance += interest + pmt
		}
		visit(period, principal, interest, balance)
	}
}

func amortizationInputs(p Problem, p1, p2 int) (i, pv, pmt float64, err error) {
	if err = validateSettings(p.Settings); err != nil {
		return
	}
	if p.N == nil || p.IY == nil || p.PV == nil || p.PMT == nil {
		err = &ConfigurationError{Field: "problem", Reason: "N, I/Y, PV and PMT must all be set to amortize"}
		return
	}
	if p1 < 1 || p2 < p1 || float64(p2) > math.Floor(*p.N) {
		err = &ConfigurationError{Field: "window", Reason: "need 1 <= p1 <= p2 <= floor(N)"}
		return
	}
	i = p.periodic()
	pv = *p.PV
	pmt = *p.PMT
	return
}

func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

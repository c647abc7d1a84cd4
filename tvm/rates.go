/*
rates.go - Nominal <-> periodic rate conversion

PURPOSE:
  Converts a nominal annual rate (in percent) plus a compounding frequency
  and a payment frequency into the effective rate per payment period, and
  back. The periodic rate is always derived on demand from its inputs; it
  is never stored, so it can never go stale against IY/CY/PY edits.

CONVERSION:
  r = nominal/100
  cy == py:  periodic = r / py            (no pow needed)
  cy != py:  periodic = (1 + r/cy)^(cy/py) - 1

  The inverse re-expresses a solved periodic rate as a nominal annual
  percentage using the same two branches.

VALIDATION:
  None here. Callers guarantee cy > 0 and py > 0 (Solve validates Settings
  before any rate math runs).

SEE ALSO:
  - solve.go: validates Settings, then calls PeriodicRate
  - rootfind.go: converts a solved periodic rate back via NominalRate
*/
package tvm

import "math"

// PeriodicRate converts a nominal annual rate in percent into the effective
// rate per payment period. cy is the compounding frequency per year, py the
// payment frequency per year.
func PeriodicRate(nominalPercent, cy, py float64) float64 {
	r := nominalPercent / 100
	if cy == py {
		return r / py
	}
	return math.Pow(1+r/cy, cy/py) - 1
}

// NominalRate is the inverse of PeriodicRate: it re-expresses an effective
// per-payment-period rate as a nominal annual rate in percent.
func NominalRate(periodic, cy, py float64) float64 {
	if cy == py {
		return periodic * py * 100
	}
	return cy * (math.Pow(1+periodic, py/cy) - 1) * 100
}

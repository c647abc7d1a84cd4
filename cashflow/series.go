/*
Package cashflow analyzes ordered cash-flow series.

PURPOSE:
  Holds the cash-flow register (an ordered list of signed amounts, index 0
  being the initial outlay) and computes NPV and IRR over it, reusing the
  tvm package's root-finder machinery for the IRR search.

KEY CONCEPTS IN THIS FILE (series.go):
  - Series: the mutable register. Entries change only through explicit
    Add/Insert/Update/Delete operations; the initial entry at index 0 can
    be reset but never removed.

PRECISION:
  Register entries are stored as decimal.Decimal so user-entered amounts
  survive editing exactly. Analysis (discounting, root finding) converts
  to float64, since it is inherently approximate anyway.

USAGE:
  s := cashflow.NewSeries(-100000)
  s.Add(30000)
  s.Add(35000)
  npv, err := s.NPV(10, 1)

SEE ALSO:
  - analysis.go: NPV and IRR over Series values
*/
package cashflow

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/tvm-engine/tvm"
)

// IndexError reports an out-of-range register operation.
type IndexError struct {
	Index int
	Len   int
	Op    string
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("cash flow %s: index %d out of range (len %d)", e.Op, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return tvm.ErrInvalidConfiguration
}

// Series is an ordered cash-flow register. Index 0 conventionally holds
// the initial outlay and is always present.
type Series struct {
	flows []decimal.Decimal
}

// NewSeries creates a register whose index 0 holds the initial flow.
func NewSeries(initial float64) *Series {
	return &Series{flows: []decimal.Decimal{decimal.NewFromFloat(initial)}}
}

// FromValues builds a register from an existing slice. The first entry
// becomes the initial outlay at index 0.
func FromValues(flows []float64) (*Series, error) {
	if len(flows) == 0 {
		return nil, &tvm.ConfigurationError{Field: "cash_flows", Reason: "need at least one entry"}
	}
	s := NewSeries(flows[0])
	for _, v := range flows[1:] {
		s.Add(v)
	}
	return s, nil
}

// Len returns the number of entries, index 0 included.
func (s *Series) Len() int {
	return len(s.flows)
}

// Add appends a flow after the current last entry.
func (s *Series) Add(v float64) {
	s.flows = append(s.flows, decimal.NewFromFloat(v))
}

// Insert places a flow at index i, shifting later entries up. Inserting at
// index 0 is rejected: the initial outlay can only be reset, not displaced.
func (s *Series) Insert(i int, v float64) error {
	if i < 1 || i > len(s.flows) {
		return &IndexError{Index: i, Len: len(s.flows), Op: "insert"}
	}
	s.flows = append(s.flows, decimal.Zero)
	copy(s.flows[i+1:], s.flows[i:])
	s.flows[i] = decimal.NewFromFloat(v)
	return nil
}

// Update replaces the flow at index i.
func (s *Series) Update(i int, v float64) error {
	if i < 0 || i >= len(s.flows) {
		return &IndexError{Index: i, Len: len(s.flows), Op: "update"}
	}
	s.flows[i] = decimal.NewFromFloat(v)
	return nil
}

// Delete removes the flow at index i, shifting later entries down. Index 0
// cannot be deleted; use ResetInitial.
func (s *Series) Delete(i int) error {
	if i < 1 || i >= len(s.flows) {
		return &IndexError{Index: i, Len: len(s.flows), Op: "delete"}
	}
	s.flows = append(s.flows[:i], s.flows[i+1:]...)
	return nil
}

// ResetInitial overwrites the initial outlay at index 0.
func (s *Series) ResetInitial(v float64) {
	s.flows[0] = decimal.NewFromFloat(v)
}

// At returns the exact stored value at index i.
func (s *Series) At(i int) (decimal.Decimal, error) {
	if i < 0 || i >= len(s.flows) {
		return decimal.Zero, &IndexError{Index: i, Len: len(s.flows), Op: "read"}
	}
	return s.flows[i], nil
}

// Values returns the register as float64s for analysis.
func (s *Series) Values() []float64 {
	out := make([]float64, len(s.flows))
	for i, d := range s.flows {
		out[i], _ = d.Float64()
	}
	return out
}

/*
errors.go - Centralized error types for the solver engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers should match with errors.Is / errors.As rather than comparing
  messages.

ERROR CATEGORIES:
  1. Configuration errors - bad frequencies, wrong count of unset fields
  2. No-solution errors   - algebraically degenerate inputs (log of a
     non-positive ratio, annihilated annuity factor, non-finite result)
  3. Divergent searches   - the root finder exhausted Newton and bisection
     without meeting tolerance; the best estimate is still reported

USAGE:
  res, err := tvm.Solve(p)
  var div *tvm.DivergentSearchError
  if errors.As(err, &div) {
      // res.Value / div.Estimate is a low-confidence best effort
  }

SEE ALSO:
  - solve.go: raises NoSolutionError before NaN can propagate
  - rootfind.go: raises DivergentSearchError
*/
package tvm

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidConfiguration is returned when frequencies are unset or
	// non-positive, or when the wrong number of TVM fields is unset.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNoSolution is returned when the requested quantity has no real,
	// finite solution for the given inputs.
	ErrNoSolution = errors.New("no solution")

	// ErrDivergentSearch is returned when the root finder's best residual
	// stays above tolerance after both Newton and bisection. The value
	// accompanying it is a best effort, never to be treated as exact.
	ErrDivergentSearch = errors.New("search did not converge")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConfigurationError reports an invalid Problem or Settings field.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// NoSolutionError reports a degenerate case detected before arithmetic
// could produce NaN or an infinity.
type NoSolutionError struct {
	Variable Variable
	Reason   string
}

func (e *NoSolutionError) Error() string {
	return fmt.Sprintf("no solution for %s: %s", e.Variable, e.Reason)
}

func (e *NoSolutionError) Unwrap() error {
	return ErrNoSolution
}

// DivergentSearchError flags a low-confidence result. Estimate is the best
// iterate seen across both search strategies and Residual its equation
// residual.
type DivergentSearchError struct {
	Variable Variable
	Estimate float64
	Residual float64
}

func (e *DivergentSearchError) Error() string {
	return fmt.Sprintf("search for %s did not converge: best estimate %g (residual %g)",
		e.Variable, e.Estimate, e.Residual)
}

func (e *DivergentSearchError) Unwrap() error {
	return ErrDivergentSearch
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsNoSolution returns true if the inputs admit no real, finite answer.
func IsNoSolution(err error) bool {
	return errors.Is(err, ErrNoSolution)
}

// IsDivergent returns true if the error carries a best-effort, unconverged
// estimate.
func IsDivergent(err error) bool {
	return errors.Is(err, ErrDivergentSearch)
}

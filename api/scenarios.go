/*
scenarios.go - Bundled demo problems for testing and demonstrations

PURPOSE:
  Provides reference problems with known answers so a fresh deployment can
  be exercised end to end without composing request bodies by hand. The
  expected values come from standard financial-calculator fixtures.

AVAILABLE SCENARIOS:
  savings-growth:    lump sum compounding monthly for 10 years
  mortgage-payment:  fully amortized 30-year loan payment
  project-npv:       five-flow investment discounted at 10%
  project-irr:       the same investment's internal rate of return

ADDING NEW SCENARIOS:
  Append to builtinScenarios with an id, a short description, a run
  function and the expected value with its tolerance.

SEE ALSO:
  - handlers.go: ListScenarios, RunScenario
*/
package api

import (
	"github.com/warp/tvm-engine/cashflow"
	"github.com/warp/tvm-engine/tvm"
)

// scenario pairs a runnable problem with its reference answer.
type scenario struct {
	id          string
	name        string
	description string
	expected    float64
	tolerance   float64
	run         func() (float64, error)
}

func (s scenario) dto() ScenarioDTO {
	return ScenarioDTO{
		ID:          s.id,
		Name:        s.name,
		Description: s.description,
		Expected:    s.expected,
		Tolerance:   s.tolerance,
	}
}

func builtinScenarios() []scenario {
	monthly := tvm.Settings{CompoundingFreq: 12, PaymentFreq: 12, Timing: tvm.TimingEnd}

	project := cashflow.NewSeries(-100000)
	project.Add(30000)
	project.Add(35000)
	project.Add(40000)
	project.Add(45000)

	return []scenario{
		{
			id:          "savings-growth",
			name:        "Savings growth",
			description: "10,000 deposited for 120 months at 5% nominal, compounded monthly",
			expected:    -16470.09,
			tolerance:   1,
			run: func() (float64, error) {
				res, err := tvm.Solve(tvm.Problem{
					N: tvm.Value(120), IY: tvm.Value(5), PV: tvm.Value(-10000), PMT: tvm.Value(0),
					Settings: monthly,
				})
				return res.Value, err
			},
		},
		{
			id:          "mortgage-payment",
			name:        "Mortgage payment",
			description: "200,000 borrowed over 360 months at 6% nominal, fully amortized",
			expected:    -1199.10,
			tolerance:   2,
			run: func() (float64, error) {
				res, err := tvm.Solve(tvm.Problem{
					N: tvm.Value(360), IY: tvm.Value(6), PV: tvm.Value(200000), FV: tvm.Value(0),
					Settings: monthly,
				})
				return res.Value, err
			},
		},
		{
			id:          "project-npv",
			name:        "Project NPV",
			description: "Five-flow investment discounted at 10% annually",
			expected:    16986.54,
			tolerance:   1,
			run: func() (float64, error) {
				return project.NPV(10, 1)
			},
		},
		{
			id:          "project-irr",
			name:        "Project IRR",
			description: "Internal rate of return of the five-flow investment",
			expected:    17.09,
			tolerance:   0.5,
			run: func() (float64, error) {
				return project.IRR(1)
			},
		},
	}
}

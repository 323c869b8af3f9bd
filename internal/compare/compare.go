// Package compare runs the sample-size engine over a set of named
// scenarios and reports aligned, ordered outcomes for tables and charts.
package compare

import "github.com/powerplan/powerplan/internal/stats"

// Scenario pairs a label with the parameters to plan. Names are free-form
// and need not be unique; identical scenarios stay distinct rows.
type Scenario struct {
	Name   string       `yaml:"name" json:"name"`
	Params stats.Params `yaml:",inline" json:"parameters"`
}

// Outcome is one scenario's slot in a comparison. Exactly one of Result
// and Err is set.
type Outcome struct {
	Index  int
	Name   string
	Params stats.Params
	Result *stats.Result
	Err    error
}

// Failed reports whether this scenario's parameters were rejected.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Run plans every scenario with the default curve sweep.
func Run(scenarios []Scenario) []Outcome {
	return RunCurve(scenarios, stats.DefaultCurveSpec)
}

// RunCurve plans every scenario in insertion order. A scenario that fails
// validation occupies its slot with the error attributed to it; it never
// aborts the rest. Output order matches input order - consumers rendering
// tables and charts rely on that. Nothing is cached: every call recomputes.
func RunCurve(scenarios []Scenario, spec stats.CurveSpec) []Outcome {
	outcomes := make([]Outcome, len(scenarios))
	for i, sc := range scenarios {
		out := Outcome{Index: i, Name: sc.Name, Params: sc.Params}

		res, err := stats.CalculateCurve(sc.Params, spec)
		if err != nil {
			out.Err = err
		} else {
			out.Result = res
		}

		outcomes[i] = out
	}
	return outcomes
}

// MaxSampleSize returns the largest per-variant size among successful
// outcomes, for axis scaling. Failed scenarios are skipped; zero means
// nothing succeeded.
func MaxSampleSize(outcomes []Outcome) int {
	max := 0
	for _, o := range outcomes {
		if o.Failed() {
			continue
		}
		if o.Result.SampleSizePerVariant > max {
			max = o.Result.SampleSizePerVariant
		}
	}
	return max
}

// MaxTotalSampleSize is MaxSampleSize over the combined two-arm totals.
func MaxTotalSampleSize(outcomes []Outcome) int {
	max := 0
	for _, o := range outcomes {
		if o.Failed() {
			continue
		}
		if o.Result.TotalSampleSize > max {
			max = o.Result.TotalSampleSize
		}
	}
	return max
}

package stats

import "fmt"

// Tails selects the rejection region for the z-test.
type Tails string

const (
	OneTailed Tails = "one-tailed"
	TwoTailed Tails = "two-tailed"
)

// Params describes a single test to plan. MDE is an absolute lift: the
// variant rate under the alternative is BaselineRate + MDE.
type Params struct {
	BaselineRate float64 `yaml:"baseline_rate" json:"baseline_rate"`
	MDE          float64 `yaml:"minimum_detectable_effect" json:"minimum_detectable_effect"`
	Power        float64 `yaml:"power" json:"power"`
	Significance float64 `yaml:"significance" json:"significance"`
	Tails        Tails   `yaml:"tails,omitempty" json:"tails"`
	DailyTraffic int     `yaml:"daily_traffic,omitempty" json:"daily_traffic,omitempty"`
}

// InvalidParameterError reports a parameter that failed validation.
// It is the only error kind the engine produces.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *InvalidParameterError {
	return &InvalidParameterError{Field: field, Reason: reason}
}

// VariantRate returns the conversion rate the variant arm must reach for
// the effect to be real.
func (p Params) VariantRate() float64 {
	return p.BaselineRate + p.MDE
}

// tailsOrDefault treats an unset Tails as two-tailed, the conservative
// convention.
func (p Params) tailsOrDefault() Tails {
	if p.Tails == "" {
		return TwoTailed
	}
	return p.Tails
}

// Validate checks every field before any arithmetic runs. Callers are
// never trusted to have validated; Calculate revalidates internally.
func (p Params) Validate() error {
	if p.BaselineRate <= 0 || p.BaselineRate >= 1 {
		return invalid("baseline_rate", "must be strictly between 0 and 1")
	}
	if p.MDE <= 0 {
		return invalid("minimum_detectable_effect", "must be greater than 0")
	}
	if p2 := p.VariantRate(); p2 <= 0 || p2 >= 1 {
		return invalid("minimum_detectable_effect", "effect pushes conversion rate out of bounds")
	}
	if p.Power <= 0 || p.Power >= 1 {
		return invalid("power", "must be strictly between 0 and 1")
	}
	if p.Significance <= 0 || p.Significance >= 1 {
		return invalid("significance", "must be strictly between 0 and 1")
	}
	switch p.tailsOrDefault() {
	case OneTailed, TwoTailed:
	default:
		return invalid("tails", fmt.Sprintf("must be %q or %q", OneTailed, TwoTailed))
	}
	if p.DailyTraffic < 0 {
		return invalid("daily_traffic", "must not be negative")
	}
	return nil
}

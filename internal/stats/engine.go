package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Result holds the planned sample sizes for one test.
type Result struct {
	SampleSizePerVariant int          `json:"sample_size_per_variant"`
	TotalSampleSize      int          `json:"total_sample_size"`
	EstimatedDays        int          `json:"estimated_days,omitempty"`
	PowerCurve           []CurvePoint `json:"power_curve"`
}

// stdNormal backs every quantile and CDF lookup in the package.
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// Calculate plans a two-proportion test with the default power-curve sweep.
// The engine is stateless: identical params always yield identical results.
func Calculate(p Params) (*Result, error) {
	return CalculateCurve(p, DefaultCurveSpec)
}

// CalculateCurve is Calculate with an explicit curve sweep, for callers
// that tune the chart resolution.
func CalculateCurve(p Params, spec CurveSpec) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	perVariant := sampleSizePerVariant(p)
	total := 2 * perVariant

	res := &Result{
		SampleSizePerVariant: perVariant,
		TotalSampleSize:      total,
		PowerCurve:           PowerCurve(p, perVariant, spec),
	}
	if p.DailyTraffic > 0 {
		res.EstimatedDays = int(math.Ceil(float64(total) / float64(p.DailyTraffic)))
	}
	return res, nil
}

// alphaQuantile returns the critical z for the significance level. One- and
// two-tailed tests take different quantiles; the branch stays explicit
// instead of sharing a path with a correction factor.
func alphaQuantile(p Params) float64 {
	switch p.tailsOrDefault() {
	case OneTailed:
		return stdNormal.Quantile(1 - p.Significance)
	default:
		return stdNormal.Quantile(1 - p.Significance/2)
	}
}

// sampleSizePerVariant evaluates the pooled two-proportion formula.
// Params are assumed validated. Rounding is always up: a fractional subject
// short means an under-powered test.
func sampleSizePerVariant(p Params) int {
	p1 := p.BaselineRate
	p2 := p.VariantRate()
	pooled := (p1 + p2) / 2

	zAlpha := alphaQuantile(p)
	zBeta := stdNormal.Quantile(p.Power)

	nullSD := math.Sqrt(2 * pooled * (1 - pooled))
	altSD := math.Sqrt(p1*(1-p1) + p2*(1-p2))

	n := math.Pow(zAlpha*nullSD+zBeta*altSD, 2) / math.Pow(p2-p1, 2)

	size := int(math.Ceil(n))
	if size < 1 {
		size = 1
	}
	return size
}

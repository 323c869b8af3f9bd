package stats

import "math"

// CurvePoint is one sample of the power curve.
type CurvePoint struct {
	EffectSize    float64 `json:"effect_size"`
	AchievedPower float64 `json:"achieved_power"`
}

// CurveSpec tunes the power-curve sweep. It is a display parameter only:
// the same spec and params always produce the same curve.
type CurveSpec struct {
	Points      int     // samples in the sweep
	MinFraction float64 // sweep starts at MinFraction * MDE
	MaxMultiple float64 // sweep ends at MaxMultiple * MDE
}

// DefaultCurveSpec gives charts a smooth line without oversampling.
var DefaultCurveSpec = CurveSpec{Points: 50, MinFraction: 0.1, MaxMultiple: 3}

// rateEpsilon keeps swept variant rates inside the open unit interval so a
// degenerate proportion never reaches the normal CDF.
const rateEpsilon = 1e-6

// powerEpsilon keeps achieved power inside (0, 1).
const powerEpsilon = 1e-9

// PowerCurve sweeps effect sizes around the configured MDE and reports the
// power the fixed per-variant sample size would achieve at each one.
// A nonsensical spec falls back to DefaultCurveSpec.
func PowerCurve(p Params, perVariant int, spec CurveSpec) []CurvePoint {
	if spec.Points < 2 || spec.MinFraction <= 0 || spec.MaxMultiple <= spec.MinFraction {
		spec = DefaultCurveSpec
	}

	lo := spec.MinFraction * p.MDE
	hi := spec.MaxMultiple * p.MDE
	step := (hi - lo) / float64(spec.Points-1)

	points := make([]CurvePoint, spec.Points)
	for i := range points {
		effect := lo + float64(i)*step
		points[i] = CurvePoint{
			EffectSize:    effect,
			AchievedPower: AchievedPower(p, perVariant, effect),
		}
	}
	return points
}

// AchievedPower inverts the sample-size formula: holding the per-variant
// size fixed, it returns the power the test would have against the given
// effect. The result is clamped into the open interval (0, 1).
func AchievedPower(p Params, perVariant int, effect float64) float64 {
	p1 := p.BaselineRate
	p2 := clampRate(p1 + effect)

	pooled := (p1 + p2) / 2
	nullSD := math.Sqrt(2 * pooled * (1 - pooled))
	altSD := math.Sqrt(p1*(1-p1) + p2*(1-p2))

	zBeta := ((p2-p1)*math.Sqrt(float64(perVariant)) - alphaQuantile(p)*nullSD) / altSD

	return clampPower(stdNormal.CDF(zBeta))
}

func clampRate(r float64) float64 {
	if r > 1-rateEpsilon {
		return 1 - rateEpsilon
	}
	if r < rateEpsilon {
		return rateEpsilon
	}
	return r
}

func clampPower(pw float64) float64 {
	if pw < powerEpsilon {
		return powerEpsilon
	}
	if pw > 1-powerEpsilon {
		return 1 - powerEpsilon
	}
	return pw
}

package stats_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/powerplan/powerplan/internal/stats"
)

func TestPowerCurve_Deterministic(t *testing.T) {
	p := stats.Params{
		BaselineRate: 0.10,
		MDE:          0.02,
		Power:        0.80,
		Significance: 0.05,
	}

	first := mustCalculate(t, p)
	second := mustCalculate(t, p)

	if !reflect.DeepEqual(first.PowerCurve, second.PowerCurve) {
		t.Error("identical params produced different curves")
	}
}

func TestPowerCurve_SweepShape(t *testing.T) {
	p := stats.Params{
		BaselineRate: 0.10,
		MDE:          0.02,
		Power:        0.80,
		Significance: 0.05,
	}
	res := mustCalculate(t, p)
	curve := res.PowerCurve

	if len(curve) != stats.DefaultCurveSpec.Points {
		t.Fatalf("expected %d points, got %d", stats.DefaultCurveSpec.Points, len(curve))
	}

	wantFirst := stats.DefaultCurveSpec.MinFraction * p.MDE
	wantLast := stats.DefaultCurveSpec.MaxMultiple * p.MDE
	if math.Abs(curve[0].EffectSize-wantFirst) > 1e-12 {
		t.Errorf("first effect %v, expected %v", curve[0].EffectSize, wantFirst)
	}
	if math.Abs(curve[len(curve)-1].EffectSize-wantLast) > 1e-9 {
		t.Errorf("last effect %v, expected %v", curve[len(curve)-1].EffectSize, wantLast)
	}

	// Effects sweep upward; bigger effects never lose power at fixed n.
	for i := 1; i < len(curve); i++ {
		if curve[i].EffectSize <= curve[i-1].EffectSize {
			t.Fatalf("effect at %d not increasing: %v then %v", i, curve[i-1].EffectSize, curve[i].EffectSize)
		}
		if curve[i].AchievedPower < curve[i-1].AchievedPower {
			t.Errorf("power dropped at point %d: %v then %v", i, curve[i-1].AchievedPower, curve[i].AchievedPower)
		}
	}
}

func TestAchievedPower_HitsTargetAtMDE(t *testing.T) {
	p := stats.Params{
		BaselineRate: 0.10,
		MDE:          0.02,
		Power:        0.80,
		Significance: 0.05,
	}
	res := mustCalculate(t, p)

	// The sample size was solved for exactly this target, so evaluating
	// the curve at the configured MDE lands on it. Ceiling rounding only
	// pushes achieved power up, never down.
	achieved := stats.AchievedPower(p, res.SampleSizePerVariant, p.MDE)
	if achieved < p.Power-0.001 || achieved > p.Power+0.01 {
		t.Errorf("achieved power %v not within tolerance of target %v", achieved, p.Power)
	}
}

func TestAchievedPower_ClampedToOpenInterval(t *testing.T) {
	p := stats.Params{
		BaselineRate: 0.50,
		MDE:          0.30,
		Power:        0.80,
		Significance: 0.05,
	}
	res := mustCalculate(t, p)

	// The default sweep tops out at 3x the MDE, which pushes the variant
	// rate past 1. The clamp must keep every point inside (0, 1).
	curve := stats.PowerCurve(p, res.SampleSizePerVariant, stats.DefaultCurveSpec)
	for i, pt := range curve {
		if pt.AchievedPower <= 0 || pt.AchievedPower >= 1 {
			t.Errorf("point %d: achieved power %v outside (0, 1)", i, pt.AchievedPower)
		}
	}

	// Same at the other extreme: a tiny effect against a huge sample.
	tiny := stats.AchievedPower(p, 100000000, 1e-9)
	if tiny <= 0 || tiny >= 1 {
		t.Errorf("tiny effect: achieved power %v outside (0, 1)", tiny)
	}
}

func TestPowerCurve_BadSpecFallsBackToDefault(t *testing.T) {
	p := stats.Params{
		BaselineRate: 0.10,
		MDE:          0.02,
		Power:        0.80,
		Significance: 0.05,
	}
	res := mustCalculate(t, p)

	curve := stats.PowerCurve(p, res.SampleSizePerVariant, stats.CurveSpec{Points: 0})
	if len(curve) != stats.DefaultCurveSpec.Points {
		t.Errorf("expected fallback to %d points, got %d", stats.DefaultCurveSpec.Points, len(curve))
	}
}

func TestCalculateCurve_CustomPointCount(t *testing.T) {
	p := stats.Params{
		BaselineRate: 0.10,
		MDE:          0.02,
		Power:        0.80,
		Significance: 0.05,
	}

	res, err := stats.CalculateCurve(p, stats.CurveSpec{Points: 10, MinFraction: 0.5, MaxMultiple: 2})
	if err != nil {
		t.Fatalf("CalculateCurve failed: %v", err)
	}
	if len(res.PowerCurve) != 10 {
		t.Errorf("expected 10 points, got %d", len(res.PowerCurve))
	}
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/powerplan/powerplan/internal/config"
	"github.com/powerplan/powerplan/internal/stats"
)

// fillParamDefaults resolves unset parameter fields from config. Flags and
// scenario files only need to carry what differs from the defaults.
func fillParamDefaults(p *stats.Params, cfg *config.Config) {
	if p.Power == 0 {
		p.Power = cfg.Defaults.Power
	}
	if p.Significance == 0 {
		p.Significance = cfg.Defaults.Significance
	}
	if p.Tails == "" {
		p.Tails = stats.Tails(cfg.Defaults.Tails)
	}
}

// curveSpec maps the config's curve tuning onto the engine's sweep spec.
func curveSpec(cfg *config.Config) stats.CurveSpec {
	return stats.CurveSpec{
		Points:      cfg.Curve.Points,
		MinFraction: cfg.Curve.MinFraction,
		MaxMultiple: cfg.Curve.MaxMultiple,
	}
}

func formatPercent(rate float64) string {
	if rate == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", rate*100)
}

// formatCount renders an integer with thousands separators.
func formatCount(n int) string {
	s := strconv.Itoa(n)
	if n < 0 || len(s) <= 3 {
		return s
	}

	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

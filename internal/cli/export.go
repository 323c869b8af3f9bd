package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/powerplan/powerplan/internal/compare"
	"github.com/powerplan/powerplan/internal/stats"
)

// Export shapes carry every parameter and result field so consumers can
// round-trip a calculation losslessly.

type jsonCalculation struct {
	Parameters stats.Params  `json:"parameters"`
	Result     *stats.Result `json:"result"`
}

func exportCalculationJSON(w io.Writer, p stats.Params, res *stats.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonCalculation{Parameters: p, Result: res})
}

func exportCalculationCSV(w io.Writer, p stats.Params, res *stats.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(calculationHeader()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.Write(calculationRow(p, res)); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

type jsonOutcome struct {
	Name       string        `json:"name"`
	Parameters stats.Params  `json:"parameters"`
	Result     *stats.Result `json:"result,omitempty"`
	Error      string        `json:"error,omitempty"`
}

type jsonComparison struct {
	Scenarios []jsonOutcome `json:"scenarios"`
}

func exportComparisonJSON(w io.Writer, outcomes []compare.Outcome) error {
	export := jsonComparison{
		Scenarios: make([]jsonOutcome, len(outcomes)),
	}

	for i, o := range outcomes {
		entry := jsonOutcome{
			Name:       o.Name,
			Parameters: o.Params,
		}
		if o.Failed() {
			entry.Error = o.Err.Error()
		} else {
			entry.Result = o.Result
		}
		export.Scenarios[i] = entry
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}

func exportComparisonCSV(w io.Writer, outcomes []compare.Outcome) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := append([]string{"scenario", "error"}, calculationHeader()...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, o := range outcomes {
		var row []string
		if o.Failed() {
			row = append([]string{o.Name, o.Err.Error()}, paramsRow(o.Params)...)
			row = append(row, "", "", "")
		} else {
			row = append([]string{o.Name, ""}, calculationRow(o.Params, o.Result)...)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

func exportCurveCSV(w io.Writer, curve []stats.CurvePoint) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"effect_size", "achieved_power"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, pt := range curve {
		row := []string{
			strconv.FormatFloat(pt.EffectSize, 'f', -1, 64),
			strconv.FormatFloat(pt.AchievedPower, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

func exportCurveJSON(w io.Writer, curve []stats.CurvePoint) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		PowerCurve []stats.CurvePoint `json:"power_curve"`
	}{PowerCurve: curve})
}

func calculationHeader() []string {
	return []string{
		"baseline_rate", "minimum_detectable_effect", "power", "significance",
		"tails", "daily_traffic",
		"sample_size_per_variant", "total_sample_size", "estimated_days",
	}
}

func paramsRow(p stats.Params) []string {
	return []string{
		strconv.FormatFloat(p.BaselineRate, 'f', -1, 64),
		strconv.FormatFloat(p.MDE, 'f', -1, 64),
		strconv.FormatFloat(p.Power, 'f', -1, 64),
		strconv.FormatFloat(p.Significance, 'f', -1, 64),
		string(p.Tails),
		strconv.Itoa(p.DailyTraffic),
	}
}

func calculationRow(p stats.Params, res *stats.Result) []string {
	days := ""
	if res.EstimatedDays > 0 {
		days = strconv.Itoa(res.EstimatedDays)
	}
	return append(paramsRow(p),
		strconv.Itoa(res.SampleSizePerVariant),
		strconv.Itoa(res.TotalSampleSize),
		days,
	)
}

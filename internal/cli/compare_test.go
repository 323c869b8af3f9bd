package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/powerplan/powerplan/internal/compare"
	"github.com/powerplan/powerplan/internal/config"
	"github.com/powerplan/powerplan/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write scenario file: %v", err)
	}
	return path
}

func TestLoadScenarioFile_FillsDefaultsAndKeepsOrder(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - name: conservative
    baseline_rate: 0.05
    minimum_detectable_effect: 0.005
    daily_traffic: 2000
  - name: aggressive
    baseline_rate: 0.05
    minimum_detectable_effect: 0.02
    power: 0.9
    tails: one-tailed
`)

	scenarios, err := loadScenarioFile(path, config.Default())
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	assert.Equal(t, "conservative", scenarios[0].Name)
	assert.Equal(t, "aggressive", scenarios[1].Name)

	// Unset fields come from the defaults; set fields stay put.
	assert.InDelta(t, 0.80, scenarios[0].Params.Power, 1e-12)
	assert.InDelta(t, 0.05, scenarios[0].Params.Significance, 1e-12)
	assert.Equal(t, stats.TwoTailed, scenarios[0].Params.Tails)
	assert.Equal(t, 2000, scenarios[0].Params.DailyTraffic)

	assert.InDelta(t, 0.9, scenarios[1].Params.Power, 1e-12)
	assert.Equal(t, stats.OneTailed, scenarios[1].Params.Tails)
}

func TestLoadScenarioFile_NamesUnnamedScenarios(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - baseline_rate: 0.05
    minimum_detectable_effect: 0.005
`)

	scenarios, err := loadScenarioFile(path, config.Default())
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "scenario 1", scenarios[0].Name)
}

func TestLoadScenarioFile_EmptyIsAnError(t *testing.T) {
	path := writeScenarioFile(t, "scenarios: []\n")

	_, err := loadScenarioFile(path, config.Default())
	assert.Error(t, err)
}

func TestLoadScenarioFile_MissingFile(t *testing.T) {
	_, err := loadScenarioFile(filepath.Join(t.TempDir(), "nope.yaml"), config.Default())
	assert.Error(t, err)
}

func TestPrintComparison_ShowsFailuresInPlace(t *testing.T) {
	scenarios := []compare.Scenario{
		{Name: "good", Params: stats.Params{BaselineRate: 0.10, MDE: 0.02, Power: 0.8, Significance: 0.05, Tails: stats.TwoTailed}},
		{Name: "bad", Params: stats.Params{BaselineRate: 1.5, MDE: 0.02, Power: 0.8, Significance: 0.05, Tails: stats.TwoTailed}},
	}
	outcomes := compare.Run(scenarios)

	var buf bytes.Buffer
	printComparison(&buf, outcomes)

	out := buf.String()
	assert.Contains(t, out, "good")
	assert.Contains(t, out, "bad")
	assert.Contains(t, out, "baseline_rate")
	assert.Contains(t, out, "Largest arm")
}

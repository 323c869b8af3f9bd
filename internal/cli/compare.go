package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/olekukonko/tablewriter"
	"github.com/powerplan/powerplan/internal/compare"
	"github.com/powerplan/powerplan/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	rootCmd.AddCommand(newCompareCmd())
}

func newCompareCmd() *cobra.Command {
	var (
		file        string
		interactive bool
		format      string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare sample sizes across multiple scenarios",
		Long: `Compare several parameter sets side by side. Scenarios come from a YAML
file or are entered interactively. A scenario with invalid parameters keeps
its row and shows the reason; it never hides the others.

Scenario file format:
  scenarios:
    - name: conservative
      baseline_rate: 0.05
      minimum_detectable_effect: 0.005
      daily_traffic: 2000
    - name: aggressive
      baseline_rate: 0.05
      minimum_detectable_effect: 0.02
      power: 0.9

Fields left out fall back to the configured defaults.

Examples:
  powerplan compare --file scenarios.yaml
  powerplan compare --interactive
  powerplan compare --file scenarios.yaml --format json > comparison.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var scenarios []compare.Scenario
			switch {
			case file != "":
				scenarios, err = loadScenarioFile(file, cfg)
			case interactive:
				scenarios, err = promptScenarios(cfg)
			default:
				return fmt.Errorf("provide --file or --interactive")
			}
			if err != nil {
				return err
			}

			outcomes := compare.RunCurve(scenarios, curveSpec(cfg))

			switch format {
			case "":
				printComparison(os.Stdout, outcomes)
				return nil
			case "json":
				return exportComparisonJSON(os.Stdout, outcomes)
			case "csv":
				return exportComparisonCSV(os.Stdout, outcomes)
			default:
				return fmt.Errorf("invalid format: must be 'json' or 'csv'")
			}
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML file with the scenarios to compare")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "enter scenarios interactively")
	cmd.Flags().StringVarP(&format, "format", "f", "", "machine output instead of the table (json or csv)")

	return cmd
}

type scenarioFile struct {
	Scenarios []compare.Scenario `yaml:"scenarios"`
}

// loadScenarioFile reads a scenario set, preserving file order and filling
// unset fields from the configured defaults.
func loadScenarioFile(path string, cfg *config.Config) ([]compare.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios: %w", err)
	}

	var sf scenarioFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios: %w", err)
	}
	if len(sf.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios in %q", path)
	}

	for i := range sf.Scenarios {
		fillParamDefaults(&sf.Scenarios[i].Params, cfg)
		if sf.Scenarios[i].Name == "" {
			sf.Scenarios[i].Name = fmt.Sprintf("scenario %d", i+1)
		}
	}
	return sf.Scenarios, nil
}

// promptScenarios collects scenarios until the user is done. Insertion
// order is kept; duplicate names are allowed.
func promptScenarios(cfg *config.Config) ([]compare.Scenario, error) {
	var scenarios []compare.Scenario

	for {
		namePrompt := promptui.Prompt{
			Label:   "Scenario name",
			Default: fmt.Sprintf("scenario %d", len(scenarios)+1),
		}
		name, err := namePrompt.Run()
		if err != nil {
			if err == promptui.ErrInterrupt {
				os.Exit(0)
			}
			return nil, err
		}

		params, err := promptParams(cfg)
		if err != nil {
			return nil, err
		}

		scenarios = append(scenarios, compare.Scenario{Name: name, Params: params})

		next := promptui.Select{
			Label: "Scenarios",
			Items: []string{"Add another", "Done"},
			Size:  2,
		}
		idx, _, err := next.Run()
		if err != nil {
			if err == promptui.ErrInterrupt {
				os.Exit(0)
			}
			return nil, err
		}
		if idx == 1 {
			return scenarios, nil
		}
	}
}

func printComparison(w io.Writer, outcomes []compare.Outcome) {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Scenario", "Baseline", "MDE", "Power", "Alpha", "Tails", "Per variant", "Total", "Days")

	for _, o := range outcomes {
		perVariant, total, days := "-", "-", "-"
		if !o.Failed() {
			perVariant = formatCount(o.Result.SampleSizePerVariant)
			total = formatCount(o.Result.TotalSampleSize)
			if o.Result.EstimatedDays > 0 {
				days = formatCount(o.Result.EstimatedDays)
			}
		}

		table.Append(
			fmt.Sprintf("%d", o.Index+1),
			o.Name,
			formatPercent(o.Params.BaselineRate),
			fmt.Sprintf("+%.2f pp", o.Params.MDE*100),
			formatPercent(o.Params.Power),
			formatPercent(o.Params.Significance),
			string(o.Params.Tails),
			perVariant,
			total,
			days,
		)
	}

	table.Render()

	failed := 0
	for _, o := range outcomes {
		if o.Failed() {
			failed++
			fmt.Fprintf(w, "  %s: %v\n", o.Name, o.Err)
		}
	}

	if max := compare.MaxSampleSize(outcomes); max > 0 {
		fmt.Fprintf(w, "  Largest arm: %s per variant across %d scenario(s)\n",
			formatCount(max), len(outcomes)-failed)
	}
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/powerplan/powerplan/internal/config"
	"github.com/powerplan/powerplan/internal/stats"
	"github.com/spf13/cobra"
)

var (
	calcBaseline     float64
	calcMDE          float64
	calcPower        float64
	calcSignificance float64
	calcTails        string
	calcTraffic      int
	calcFormat       string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate the sample size for a single test",
	Long: `Calculate the per-variant and total sample size for a two-proportion
A/B test, plus an estimated duration when daily traffic is known.

The minimum detectable effect is an absolute lift: --baseline 0.05 --mde 0.01
plans for detecting a move from 5% to 6%.

Without --baseline and --mde the command walks through the parameters
interactively.

Examples:
  powerplan calc --baseline 0.05 --mde 0.01
  powerplan calc --baseline 0.10 --mde 0.02 --daily-traffic 1000
  powerplan calc --baseline 0.10 --mde 0.02 --tails one-tailed --format json`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().Float64VarP(&calcBaseline, "baseline", "b", 0, "control-group conversion rate, 0-1 (required unless interactive)")
	calcCmd.Flags().Float64VarP(&calcMDE, "mde", "m", 0, "minimum detectable effect as absolute lift (required unless interactive)")
	calcCmd.Flags().Float64Var(&calcPower, "power", 0, "target statistical power, 0-1 (default from config)")
	calcCmd.Flags().Float64Var(&calcSignificance, "significance", 0, "significance level alpha, 0-1 (default from config)")
	calcCmd.Flags().StringVar(&calcTails, "tails", "", "one-tailed or two-tailed (default from config)")
	calcCmd.Flags().IntVar(&calcTraffic, "daily-traffic", 0, "expected visitors per day, for duration estimate (optional)")
	calcCmd.Flags().StringVarP(&calcFormat, "format", "f", "", "machine output instead of the summary (json or csv)")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var p stats.Params
	if calcBaseline == 0 && calcMDE == 0 {
		// No parameters given: walk through them interactively.
		p, err = promptParams(cfg)
		if err != nil {
			return err
		}
	} else {
		p = stats.Params{
			BaselineRate: calcBaseline,
			MDE:          calcMDE,
			Power:        calcPower,
			Significance: calcSignificance,
			Tails:        stats.Tails(calcTails),
			DailyTraffic: calcTraffic,
		}
		fillParamDefaults(&p, cfg)
	}

	res, err := stats.CalculateCurve(p, curveSpec(cfg))
	if err != nil {
		return err
	}

	switch calcFormat {
	case "":
		printCalculation(os.Stdout, p, res)
		return nil
	case "json":
		return exportCalculationJSON(os.Stdout, p, res)
	case "csv":
		return exportCalculationCSV(os.Stdout, p, res)
	default:
		return fmt.Errorf("invalid format: must be 'json' or 'csv'")
	}
}

func printCalculation(w io.Writer, p stats.Params, res *stats.Result) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "SAMPLE SIZE")
	fmt.Fprintf(w, "  Per variant:       %s\n", formatCount(res.SampleSizePerVariant))
	fmt.Fprintf(w, "  Total (both arms): %s\n", formatCount(res.TotalSampleSize))
	if res.EstimatedDays > 0 {
		fmt.Fprintf(w, "  Duration:          %s days at %s visitors/day\n",
			formatCount(res.EstimatedDays), formatCount(p.DailyTraffic))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TEST SUMMARY")
	fmt.Fprintln(w, strings.Repeat("─", 44))
	fmt.Fprintf(w, "%-26s %s\n", "Baseline rate", formatPercent(p.BaselineRate))
	fmt.Fprintf(w, "%-26s %s\n", "Expected variant rate", formatPercent(p.VariantRate()))
	fmt.Fprintf(w, "%-26s +%.2f pp\n", "Minimum detectable effect", p.MDE*100)
	fmt.Fprintf(w, "%-26s %s\n", "Statistical power", formatPercent(p.Power))
	fmt.Fprintf(w, "%-26s %s\n", "Significance level", formatPercent(p.Significance))
	fmt.Fprintf(w, "%-26s %s\n", "Test type", string(p.Tails))
}

// promptParams collects one parameter set interactively. Interrupt exits
// quietly, matching the rest of the prompts in this package.
func promptParams(cfg *config.Config) (stats.Params, error) {
	var p stats.Params

	baseline, err := promptFloat("Baseline conversion rate (0-1)", "0.05")
	if err != nil {
		return p, err
	}

	mde, err := promptFloat("Minimum detectable effect, absolute lift (e.g. 0.01)", "0.01")
	if err != nil {
		return p, err
	}

	power, err := promptFloat("Statistical power (0-1)", strconv.FormatFloat(cfg.Defaults.Power, 'g', -1, 64))
	if err != nil {
		return p, err
	}

	significance, err := promptFloat("Significance level (0-1)", strconv.FormatFloat(cfg.Defaults.Significance, 'g', -1, 64))
	if err != nil {
		return p, err
	}

	tails, err := promptTails(cfg.Defaults.Tails)
	if err != nil {
		return p, err
	}

	traffic, err := promptInt("Expected visitors per day (0 to skip duration)", "0")
	if err != nil {
		return p, err
	}

	p = stats.Params{
		BaselineRate: baseline,
		MDE:          mde,
		Power:        power,
		Significance: significance,
		Tails:        tails,
		DailyTraffic: traffic,
	}
	return p, nil
}

func promptFloat(label, defaultValue string) (float64, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
		Validate: func(input string) error {
			_, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
			if err != nil {
				return fmt.Errorf("enter a number")
			}
			return nil
		},
	}

	raw, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

func promptInt(label, defaultValue string) (int, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
		Validate: func(input string) error {
			_, err := strconv.Atoi(strings.TrimSpace(input))
			if err != nil {
				return fmt.Errorf("enter a whole number")
			}
			return nil
		},
	}

	raw, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}

func promptTails(defaultTails string) (stats.Tails, error) {
	options := []string{string(stats.TwoTailed), string(stats.OneTailed)}
	if defaultTails == string(stats.OneTailed) {
		options = []string{string(stats.OneTailed), string(stats.TwoTailed)}
	}

	prompt := promptui.Select{
		Label: "Test type",
		Items: options,
		Size:  2,
	}

	_, choice, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return "", err
	}
	return stats.Tails(choice), nil
}

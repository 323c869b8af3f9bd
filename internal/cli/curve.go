package cli

import (
	"fmt"
	"os"

	"github.com/powerplan/powerplan/internal/stats"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCurveCmd())
}

func newCurveCmd() *cobra.Command {
	var (
		baseline     float64
		mde          float64
		power        float64
		significance float64
		tails        string
		points       int
		format       string
	)

	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Generate the power curve for a test",
		Long: `Generate the power curve: achieved power as a function of effect size,
holding the planned sample size fixed. Output goes to stdout for charting.

Examples:
  powerplan curve --baseline 0.10 --mde 0.02 > curve.csv
  powerplan curve --baseline 0.10 --mde 0.02 --format json
  powerplan curve --baseline 0.05 --mde 0.01 --points 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("invalid format: must be 'csv' or 'json'")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			p := stats.Params{
				BaselineRate: baseline,
				MDE:          mde,
				Power:        power,
				Significance: significance,
				Tails:        stats.Tails(tails),
			}
			fillParamDefaults(&p, cfg)

			spec := curveSpec(cfg)
			if points > 0 {
				spec.Points = points
			}

			res, err := stats.CalculateCurve(p, spec)
			if err != nil {
				return err
			}

			if format == "csv" {
				return exportCurveCSV(os.Stdout, res.PowerCurve)
			}
			return exportCurveJSON(os.Stdout, res.PowerCurve)
		},
	}

	cmd.Flags().Float64VarP(&baseline, "baseline", "b", 0, "control-group conversion rate, 0-1 (required)")
	cmd.Flags().Float64VarP(&mde, "mde", "m", 0, "minimum detectable effect as absolute lift (required)")
	cmd.Flags().Float64Var(&power, "power", 0, "target statistical power, 0-1 (default from config)")
	cmd.Flags().Float64Var(&significance, "significance", 0, "significance level alpha, 0-1 (default from config)")
	cmd.Flags().StringVar(&tails, "tails", "", "one-tailed or two-tailed (default from config)")
	cmd.Flags().IntVar(&points, "points", 0, "number of points in the sweep (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format (csv or json)")
	cmd.MarkFlagRequired("baseline")
	cmd.MarkFlagRequired("mde")

	return cmd
}

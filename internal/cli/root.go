package cli

import (
	"os"

	"github.com/powerplan/powerplan/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "powerplan",
	Short: "Powerplan - sample size and duration planning for A/B tests",
	Long: `Powerplan calculates the sample size a two-proportion A/B test needs,
estimates how long the test will take to fill, and generates power curves
for charting. Single Go binary, no external services.

Running without a subcommand starts the calculator (same as 'powerplan calc').`,
	RunE: runCalc, // Default action is the single-test calculator
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", getEnvOrDefault("POWERPLAN_CONFIG", "powerplan.yaml"), "config file path")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// loadConfig resolves defaults for the current invocation.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

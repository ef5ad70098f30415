package main

import (
	"github.com/jgoulah/hvacsim/internal/config"
	"github.com/jgoulah/hvacsim/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hvacsim",
	Short: "Simulate a day of HVAC energy usage and savings",
	Long: `hvacsim generates synthetic hourly occupancy, weather and baseline energy usage
for a 24-hour day, applies an efficiency heuristic to estimate optimized HVAC usage,
and reports the energy and cost saved as a table, a console summary and charts.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// saveConfig saves the configuration file
func saveConfig(cfg *config.Config) error {
	return config.Save(getConfigPath(), cfg)
}

// newLogger builds the diagnostic logger honoring --verbose
func newLogger() (*zap.Logger, error) {
	return logging.New(verbose)
}

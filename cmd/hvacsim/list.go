package main

import (
	"fmt"
	"os"

	"github.com/jgoulah/hvacsim/internal/config"
	"github.com/jgoulah/hvacsim/internal/database"
	"github.com/jgoulah/hvacsim/internal/report"
	"github.com/spf13/cobra"
)

var (
	listOut    string
	listFormat string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the last written output table",
	Long:  `Reads the per-hour table written by the last run and displays it with its total.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listOut, "out", "", "Output table path (default from config)")
	listCmd.Flags().StringVar(&listFormat, "format", "", "Output table format: csv or sqlite (default from config)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if listFormat != "" {
		cfg.Output.Format = listFormat
	}
	if listOut != "" {
		cfg.Output.Path = listOut
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	rows, err := readTable(cfg)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Printf("No data found in %s\n", cfg.GetOutputPath())
		return nil
	}

	fmt.Printf("\n%s:\n", cfg.GetOutputPath())
	return report.PrintRows(os.Stdout, rows)
}

// readTable loads the output table in the configured format
func readTable(cfg *config.Config) ([]report.Row, error) {
	path := cfg.GetOutputPath()
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no output table at %s (run 'hvacsim run' first): %w", path, err)
	}

	if cfg.GetOutputFormat() == config.FormatSQLite {
		db, err := database.New(path)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
		return db.Rows()
	}

	return report.ReadCSV(path)
}

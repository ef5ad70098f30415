package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jgoulah/hvacsim/internal/chart"
	"github.com/jgoulah/hvacsim/internal/config"
	"github.com/jgoulah/hvacsim/internal/database"
	"github.com/jgoulah/hvacsim/internal/metrics"
	"github.com/jgoulah/hvacsim/internal/publisher"
	"github.com/jgoulah/hvacsim/internal/report"
	"github.com/jgoulah/hvacsim/internal/sampler"
	"github.com/jgoulah/hvacsim/internal/simulation"
	"github.com/jgoulah/hvacsim/pkg/models"
)

var (
	runSeed        uint64
	runOut         string
	runFormat      string
	runChart       string
	runNoChart     bool
	runCost        float64
	runMetricsFile string
	runPublish     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one day and write the report",
	Long: `Simulates 24 hours of occupancy, weather and baseline usage, applies the HVAC
efficiency heuristic and writes the per-hour table (CSV by default), prints the
console report and renders the usage charts to a PNG file.

Use --publish to also send the run to the MQTT, Home Assistant and Kafka
targets enabled in config.yaml.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "Random seed (0 = derive from the clock)")
	runCmd.Flags().StringVar(&runOut, "out", "", "Output table path (default energy_data.csv or energy_data.db)")
	runCmd.Flags().StringVar(&runFormat, "format", "", "Output table format: csv or sqlite (default csv)")
	runCmd.Flags().StringVar(&runChart, "chart", "", "Chart PNG path (default energy_chart.png)")
	runCmd.Flags().BoolVar(&runNoChart, "no-chart", false, "Skip chart rendering")
	runCmd.Flags().Float64Var(&runCost, "cost", 0, "Cost per kWh used to price savings (default 0.2)")
	runCmd.Flags().StringVar(&runMetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	runCmd.Flags().BoolVar(&runPublish, "publish", false, "Publish the run to the targets enabled in config")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Simulation started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	// Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyRunFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	run, err := simulateAndReport(cfg, os.Stdout, log)
	if err != nil {
		return err
	}

	if runPublish {
		if err := publishRun(cmd.Context(), cfg, run, log); err != nil {
			return err
		}
	}

	return nil
}

// applyRunFlags overrides config values with flags given on the command line
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = runSeed
	}
	if flags.Changed("out") {
		cfg.Output.Path = runOut
	}
	if flags.Changed("format") {
		cfg.Output.Format = runFormat
	}
	if flags.Changed("chart") {
		cfg.Chart.Path = runChart
	}
	if flags.Changed("no-chart") {
		cfg.Chart.Disabled = runNoChart
	}
	if flags.Changed("cost") {
		cfg.CostPerKWh = runCost
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = runMetricsFile
	}
}

// tableSink picks the output table implementation for cfg
func tableSink(cfg *config.Config) report.TableSink {
	if cfg.GetOutputFormat() == config.FormatSQLite {
		return &database.Table{Path: cfg.GetOutputPath()}
	}
	return report.NewCSVTable(cfg.GetOutputPath())
}

// simulateAndReport runs one day and feeds it to the table, console, chart and metrics sinks
func simulateAndReport(cfg *config.Config, out io.Writer, log *zap.Logger) (*models.Run, error) {
	src, seed := sampler.NewSource(cfg.Seed)
	run := simulation.Simulate(sampler.New(src), simulation.Options{
		CostPerKWh: decimal.NewFromFloat(cfg.GetCostPerKWh()),
		Seed:       seed,
	})
	log.Info("simulated day",
		zap.Stringer("run", run.ID),
		zap.Uint64("seed", seed),
		zap.Float64("energy_saved_kwh", run.TotalEnergySaved),
	)

	if err := tableSink(cfg).WriteTable(run); err != nil {
		return nil, fmt.Errorf("writing output table: %w", err)
	}

	var console report.TextSink = &report.Console{W: out}
	if err := console.WriteText(run); err != nil {
		return nil, fmt.Errorf("printing report: %w", err)
	}

	path := cfg.GetOutputPath()
	if info, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "\n✓ Wrote %s (%s, %d rows)\n", path, humanize.Bytes(uint64(info.Size())), len(run.Records))
	}

	if !cfg.Chart.Disabled {
		var charts report.ChartSink = chart.NewRenderer(cfg.GetChartPath())
		if err := charts.WriteChart(run); err != nil {
			return nil, fmt.Errorf("rendering charts: %w", err)
		}
		fmt.Fprintf(out, "✓ Chart saved to %s\n", cfg.GetChartPath())
	}

	if cfg.MetricsFile != "" {
		m := metrics.New()
		m.Observe(run)
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			return nil, err
		}
		log.Debug("wrote metrics", zap.String("path", cfg.MetricsFile))
	}

	fmt.Fprintf(out, "Seed: %d (rerun with --seed %d to reproduce)\n", seed, seed)
	return run, nil
}

// publishRun sends run to every target enabled in cfg, stopping at the first failure
func publishRun(ctx context.Context, cfg *config.Config, run *models.Run, log *zap.Logger) error {
	if !cfg.MQTT.Enabled && !cfg.HomeAssistant.Enabled && !cfg.Kafka.Enabled {
		return fmt.Errorf("no publish targets are enabled in config")
	}

	if cfg.MQTT.Enabled || cfg.HomeAssistant.Enabled {
		pub, err := publisher.New(cfg.MQTT, cfg.HomeAssistant, log)
		if err != nil {
			return fmt.Errorf("creating publisher: %w", err)
		}
		defer pub.Close()

		if cfg.MQTT.Enabled {
			fmt.Printf("Publishing %d records to MQTT... ", len(run.Records))
			if err := pub.PublishMQTT(run); err != nil {
				fmt.Println("FAILED")
				return err
			}
			fmt.Println("✓")
		}

		if cfg.HomeAssistant.Enabled {
			fmt.Printf("Publishing total to Home Assistant (%s)... ", cfg.HomeAssistant.EntityID)
			if err := pub.PublishHA(run); err != nil {
				fmt.Println("FAILED")
				return err
			}
			fmt.Println("✓")
		}
	}

	if cfg.Kafka.Enabled {
		k, err := publisher.NewKafka(cfg.Kafka, log)
		if err != nil {
			return fmt.Errorf("creating kafka publisher: %w", err)
		}
		defer k.Close()

		fmt.Printf("Publishing %d records to Kafka topic %s... ", len(run.Records), cfg.GetKafkaTopic())
		if err := k.PublishKafka(ctx, run); err != nil {
			fmt.Println("FAILED")
			return err
		}
		fmt.Println("✓")
	}

	return nil
}

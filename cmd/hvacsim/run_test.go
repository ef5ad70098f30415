package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jgoulah/hvacsim/internal/config"
	"github.com/jgoulah/hvacsim/internal/database"
	"github.com/jgoulah/hvacsim/internal/report"
)

func tempConfig(t *testing.T, format string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{Seed: 1234}
	cfg.Output.Format = format
	ext := "csv"
	if format == config.FormatSQLite {
		ext = "db"
	}
	cfg.Output.Path = filepath.Join(dir, "energy_data."+ext)
	cfg.Chart.Path = filepath.Join(dir, "energy_chart.png")
	return cfg
}

func TestSimulateAndReport_CSV(t *testing.T) {
	cfg := tempConfig(t, config.FormatCSV)
	cfg.MetricsFile = filepath.Join(filepath.Dir(cfg.Output.Path), "hvacsim.prom")

	var out bytes.Buffer
	run, err := simulateAndReport(cfg, &out, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, run.Records, 24)
	assert.Equal(t, uint64(1234), run.Seed)

	rows, err := readTable(cfg)
	require.NoError(t, err)
	assert.Equal(t, report.FormatRows(run), rows)

	_, err = os.Stat(cfg.Chart.Path)
	assert.NoError(t, err)
	_, err = os.Stat(cfg.MetricsFile)
	assert.NoError(t, err)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Hour | Occupancy | Temp (°C) | Historical (kWh) | Optimized (kWh)\n"))
	assert.Contains(t, text, "Total Energy Saved: ")
	assert.Contains(t, text, "Total Cost Saved: $"+run.TotalCostSaved.StringFixed(2))
	assert.Contains(t, text, "--seed 1234")
}

func TestSimulateAndReport_SQLiteWithoutChart(t *testing.T) {
	cfg := tempConfig(t, config.FormatSQLite)
	cfg.Chart.Disabled = true

	run, err := simulateAndReport(cfg, &bytes.Buffer{}, zap.NewNop())
	require.NoError(t, err)

	rows, err := readTable(cfg)
	require.NoError(t, err)
	assert.Equal(t, report.FormatRows(run), rows)

	_, err = os.Stat(cfg.Chart.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestSimulateAndReport_SameSeedSameTable(t *testing.T) {
	cfg := tempConfig(t, config.FormatCSV)
	cfg.Chart.Disabled = true

	first, err := simulateAndReport(cfg, &bytes.Buffer{}, zap.NewNop())
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)

	second, err := simulateAndReport(cfg, &bytes.Buffer{}, zap.NewNop())
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)

	assert.Equal(t, first.TotalEnergySaved, second.TotalEnergySaved)
	assert.True(t, first.TotalCostSaved.Equal(second.TotalCostSaved))
	assert.Equal(t, firstBytes, secondBytes)
}

func TestReadTable_Missing(t *testing.T) {
	cfg := tempConfig(t, config.FormatCSV)
	_, err := readTable(cfg)
	assert.ErrorContains(t, err, "hvacsim run")
}

func TestPublishRun_NothingEnabled(t *testing.T) {
	err := publishRun(context.Background(), &config.Config{}, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestApplyRunFlags(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().AddFlagSet(runCmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{"--seed", "9", "--format", "sqlite", "--no-chart", "--cost", "0.5"}))

	cfg := &config.Config{Seed: 1, CostPerKWh: 0.1}
	cfg.Output.Path = "keep.db"
	applyRunFlags(cmd, cfg)

	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Equal(t, config.FormatSQLite, cfg.Output.Format)
	assert.Equal(t, "keep.db", cfg.Output.Path)
	assert.True(t, cfg.Chart.Disabled)
	assert.Equal(t, 0.5, cfg.CostPerKWh)
}

func TestTableSink(t *testing.T) {
	cfg := &config.Config{}
	assert.IsType(t, &report.CSVTable{}, tableSink(cfg))

	cfg.Output.Format = config.FormatSQLite
	assert.IsType(t, &database.Table{}, tableSink(cfg))
}

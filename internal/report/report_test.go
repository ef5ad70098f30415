package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/hvacsim/internal/sampler"
	"github.com/jgoulah/hvacsim/internal/simulation"
	"github.com/jgoulah/hvacsim/pkg/models"
)

func makeRun(t *testing.T) *models.Run {
	t.Helper()
	src, _ := sampler.NewSource(2024)
	return simulation.Simulate(sampler.New(src), simulation.Options{Seed: 2024})
}

func TestFormatRow(t *testing.T) {
	row := FormatRow(models.HourRecord{
		Hour:            7,
		Occupancy:       0.123,
		Temperature:     25.06,
		HistoricalUsage: 150,
		OptimizedUsage:  94.5,
		EnergySaved:     55.5,
	})

	assert.Equal(t, []string{"7", "0.12", "25.1", "150.0", "94.5", "55.50"}, row.Fields())
}

func TestRowFromFields(t *testing.T) {
	row, err := RowFromFields([]string{"1", "0.10", "30.0", "110.0", "77.0", "33.00"})
	require.NoError(t, err)
	saved, err := row.Saved()
	require.NoError(t, err)
	assert.Equal(t, 33.0, saved)

	_, err = RowFromFields([]string{"1", "2"})
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	run := makeRun(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, run))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 25)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, "Temperature (°C)", records[0][2])

	for i, rec := range records[1:] {
		assert.Equal(t, FormatRow(run.Records[i]).Fields(), rec)
		// Two decimals for occupancy and savings, one for the rest
		assert.Len(t, strings.SplitN(rec[1], ".", 2)[1], 2)
		assert.Len(t, strings.SplitN(rec[2], ".", 2)[1], 1)
		assert.Len(t, strings.SplitN(rec[3], ".", 2)[1], 1)
		assert.Len(t, strings.SplitN(rec[4], ".", 2)[1], 1)
		assert.Len(t, strings.SplitN(rec[5], ".", 2)[1], 2)
	}
}

func TestCSVTable_OverwritesAndReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "energy_data.csv")
	table := NewCSVTable(path)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("stale,data\n1,2\n"), 0644))

	run := makeRun(t)
	require.NoError(t, table.WriteTable(run))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 24)
	assert.Equal(t, FormatRows(run), rows)
}

func TestNewCSVTable_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultCSVPath, NewCSVTable("").Path)
}

func TestReadCSV_Missing(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestConsole_WriteText(t *testing.T) {
	run := &models.Run{
		Records: []models.HourRecord{
			{Hour: 0, Occupancy: 0.1, Temperature: 25, HistoricalUsage: 150, OptimizedUsage: 94.5, EnergySaved: 55.5},
			{Hour: 12, Occupancy: 0.9, Temperature: 28, HistoricalUsage: 180, OptimizedUsage: 180, EnergySaved: 0},
		},
		TotalEnergySaved: 55.5,
		TotalCostSaved:   decimal.NewFromFloat(11.1),
	}

	var buf bytes.Buffer
	require.NoError(t, (&Console{W: &buf}).WriteText(run))

	want := "Hour | Occupancy | Temp (°C) | Historical (kWh) | Optimized (kWh)\n" +
		"   0 | 0.10      | 25.0       | 150.0            | 94.5\n" +
		"  12 | 0.90      | 28.0       | 180.0            | 180.0\n" +
		"\nTotal Energy Saved: 55.50 kWh\n" +
		"Total Cost Saved: $11.10\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintRows(t *testing.T) {
	rows := []Row{
		{Hour: "0", Occupancy: "0.10", Temperature: "25.0", Historical: "150.0", Optimized: "94.5", EnergySaved: "55.50"},
		{Hour: "1", Occupancy: "0.05", Temperature: "33.0", Historical: "110.0", Optimized: "84.7", EnergySaved: "25.30"},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintRows(&buf, rows))
	assert.Contains(t, buf.String(), "Total: 80.80 kWh saved (2 hours)")

	rows[0].EnergySaved = "bogus"
	assert.Error(t, PrintRows(&bytes.Buffer{}, rows))
}

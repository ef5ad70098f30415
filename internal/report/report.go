// Package report turns a simulated run into a table, a console summary and charts.
package report

import (
	"fmt"
	"strconv"

	"github.com/jgoulah/hvacsim/pkg/models"
)

// TableSink persists the per-hour table of a run
type TableSink interface {
	WriteTable(run *models.Run) error
}

// TextSink prints a human readable report of a run
type TextSink interface {
	WriteText(run *models.Run) error
}

// ChartSink renders the run's series
type ChartSink interface {
	WriteChart(run *models.Run) error
}

// Header is the column header of the output table
var Header = []string{
	"Hour",
	"Occupancy",
	"Temperature (°C)",
	"Historical (kWh)",
	"Optimized (kWh)",
	"Energy Saved (kWh)",
}

// Row is one formatted line of the output table
type Row struct {
	Hour        string
	Occupancy   string
	Temperature string
	Historical  string
	Optimized   string
	EnergySaved string
}

// FormatRow formats a record with the table's fixed precision
func FormatRow(rec models.HourRecord) Row {
	return Row{
		Hour:        strconv.Itoa(rec.Hour),
		Occupancy:   fmt.Sprintf("%.2f", rec.Occupancy),
		Temperature: fmt.Sprintf("%.1f", rec.Temperature),
		Historical:  fmt.Sprintf("%.1f", rec.HistoricalUsage),
		Optimized:   fmt.Sprintf("%.1f", rec.OptimizedUsage),
		EnergySaved: fmt.Sprintf("%.2f", rec.EnergySaved),
	}
}

// FormatRows formats every record of a run
func FormatRows(run *models.Run) []Row {
	rows := make([]Row, len(run.Records))
	for i, rec := range run.Records {
		rows[i] = FormatRow(rec)
	}
	return rows
}

// Fields returns the row in column order
func (r Row) Fields() []string {
	return []string{r.Hour, r.Occupancy, r.Temperature, r.Historical, r.Optimized, r.EnergySaved}
}

// RowFromFields builds a row from a table line
func RowFromFields(fields []string) (Row, error) {
	if len(fields) != len(Header) {
		return Row{}, fmt.Errorf("expected %d columns, got %d", len(Header), len(fields))
	}
	return Row{
		Hour:        fields[0],
		Occupancy:   fields[1],
		Temperature: fields[2],
		Historical:  fields[3],
		Optimized:   fields[4],
		EnergySaved: fields[5],
	}, nil
}

// Saved parses the energy saved column
func (r Row) Saved() (float64, error) {
	v, err := strconv.ParseFloat(r.EnergySaved, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing energy saved %q: %w", r.EnergySaved, err)
	}
	return v, nil
}

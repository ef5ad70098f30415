package report

import (
	"fmt"
	"io"

	"github.com/jgoulah/hvacsim/pkg/models"
)

// Console prints the per-hour report and totals
type Console struct {
	W io.Writer
}

// WriteText implements TextSink
func (c *Console) WriteText(run *models.Run) error {
	if _, err := fmt.Fprintln(c.W, "Hour | Occupancy | Temp (°C) | Historical (kWh) | Optimized (kWh)"); err != nil {
		return fmt.Errorf("writing console header: %w", err)
	}

	for _, rec := range run.Records {
		_, err := fmt.Fprintf(c.W, "%4d | %.2f      | %.1f       | %.1f            | %.1f\n",
			rec.Hour, rec.Occupancy, rec.Temperature, rec.HistoricalUsage, rec.OptimizedUsage)
		if err != nil {
			return fmt.Errorf("writing console line: %w", err)
		}
	}

	if _, err := fmt.Fprintf(c.W, "\nTotal Energy Saved: %.2f kWh\n", run.TotalEnergySaved); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}
	if _, err := fmt.Fprintf(c.W, "Total Cost Saved: $%s\n", run.TotalCostSaved.StringFixed(2)); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}

	return nil
}

// PrintRows prints a table read back from storage, with its total
func PrintRows(w io.Writer, rows []Row) error {
	fmt.Fprintln(w, "----------------------------------------------------------------------")
	fmt.Fprintf(w, "%-4s  %9s  %8s  %10s  %10s  %8s\n", "Hour", "Occupancy", "Temp", "Historical", "Optimized", "Saved")
	fmt.Fprintln(w, "----------------------------------------------------------------------")

	var total float64
	for _, row := range rows {
		fmt.Fprintf(w, "%-4s  %9s  %8s  %10s  %10s  %8s\n",
			row.Hour, row.Occupancy, row.Temperature, row.Historical, row.Optimized, row.EnergySaved)
		saved, err := row.Saved()
		if err != nil {
			return err
		}
		total += saved
	}

	fmt.Fprintln(w, "----------------------------------------------------------------------")
	_, err := fmt.Fprintf(w, "Total: %.2f kWh saved (%d hours)\n", total, len(rows))
	return err
}

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jgoulah/hvacsim/pkg/models"
)

// DefaultCSVPath is where the table is written when nothing else is configured
const DefaultCSVPath = "energy_data.csv"

// CSVTable writes the output table as CSV, replacing the file each run
type CSVTable struct {
	Path string
}

// NewCSVTable creates a CSV table sink for path
func NewCSVTable(path string) *CSVTable {
	if path == "" {
		path = DefaultCSVPath
	}
	return &CSVTable{Path: path}
}

// WriteTable implements TableSink
func (c *CSVTable) WriteTable(run *models.Run) error {
	dir := filepath.Dir(c.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(c.Path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", c.Path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, run); err != nil {
		return err
	}

	return f.Close()
}

// WriteCSV writes header and rows of run to w
func WriteCSV(w io.Writer, run *models.Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range FormatRows(run) {
		if err := cw.Write(row.Fields()); err != nil {
			return fmt.Errorf("writing row for hour %s: %w", row.Hour, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// ReadCSV loads a table previously written by CSVTable
func ReadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	// Skip header
	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := RowFromFields(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

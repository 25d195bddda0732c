package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Table is ordered tabular export content. Every row should have one cell
// per column; missing cells render empty.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

func (t Table) cells(row []string) []string {
	record := make([]string, len(t.Columns))
	copy(record, row)
	return record
}

// CSVExporter renders tables as CSV.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV bytes with a header line.
func (e *CSVExporter) Render(table Table) ([]byte, error) {
	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("csv requires at least one column")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(table.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(table.cells(row)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

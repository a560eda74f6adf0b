package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteCSV serializes the table as comma-separated text, header row first.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON serializes the table as a JSON array of column-keyed objects,
// one per row, preserving row order. An empty table yields an empty array.
func (t Table) WriteJSON(w io.Writer) error {
	rows := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		obj := make(map[string]string, len(t.Columns))
		for i, column := range t.Columns {
			obj[column] = row[i]
		}
		rows = append(rows, obj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// ExportCSVFile writes the table to a file, creating or truncating it.
func (t Table) ExportCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := t.WriteCSV(f); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

package tabio

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV decodes a CSV stream with a header row into a Table. Rows with
// fewer fields than the header are padded with empty cells and rows with
// more are truncated; externally sourced exports are not reliably
// rectangular.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // input is not reliably rectangular
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read header: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	table := NewTable(header...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", table.NumRows()+2, err)
		}
		table.AppendRow(record)
	}

	return table, nil
}

// WriteCSV encodes a Table as CSV with a header row. The column order of
// the table is the column order on the wire.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

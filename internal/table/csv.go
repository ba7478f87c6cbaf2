package table

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNoHeader indicates CSV input without a header row.
var ErrNoHeader = errors.New("csv input has no header row")

// ReadCSV builds a table from CSV data. The first record is the header; empty
// fields become null cells. Column kinds are inferred after loading, and
// columns named in categorical are tagged KindCategorical.
func ReadCSV(r io.Reader, categorical []string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols := make([]*Column, len(header))
	for i, name := range header {
		cols[i] = &Column{Name: name}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}

		for i, col := range cols {
			if i >= len(record) || record[i] == "" {
				col.Cells = append(col.Cells, NullCell())

				continue
			}

			col.Cells = append(col.Cells, StringCell(record[i]))
		}
	}

	isCategorical := make(map[string]bool, len(categorical))
	for _, name := range categorical {
		isCategorical[name] = true
	}

	tbl := New()

	for _, col := range cols {
		col.Kind = InferKind(col)
		if isCategorical[col.Name] {
			col.Kind = KindCategorical
		}

		if err := tbl.AddColumn(col); err != nil {
			return nil, err
		}
	}

	return tbl, nil
}

// WriteCSV writes the table as CSV with a header row. Null cells become
// empty fields.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	rows := t.NumRows()

	record := make([]string, t.NumCols())

	for i := 0; i < rows; i++ {
		for j, col := range t.cols {
			if col.Cells[i].Null {
				record[j] = ""

				continue
			}

			record[j] = col.Cells[i].Value
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}

// MarshalJSON renders the table as an array of row objects. Null cells become
// JSON null; int and float cells are emitted as numbers when they parse.
func (t *Table) MarshalJSON() ([]byte, error) {
	rows := t.NumRows()

	out := make([]map[string]any, rows)

	for i := 0; i < rows; i++ {
		row := make(map[string]any, t.NumCols())

		for _, col := range t.cols {
			cell := col.Cells[i]
			if cell.Null {
				row[col.Name] = nil

				continue
			}

			switch col.Kind {
			case KindInt, KindFloat:
				if f, err := cell.Float(); err == nil {
					row[col.Name] = f

					continue
				}
			}

			row[col.Name] = cell.Value
		}

		out[i] = row
	}

	return json.Marshal(out)
}

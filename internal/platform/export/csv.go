package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// Column renders one CSV column of T.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// WriteCSV writes a header row followed by one row per item. Quoting follows
// RFC 4180.
func WriteCSV[T any](w io.Writer, columns []Column[T], items []T) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	row := make([]string, len(columns))
	for _, item := range items {
		for i, col := range columns {
			row[i] = col.Value(item)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSV renders items into memory.
func CSV[T any](columns []Column[T], items []T) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, columns, items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

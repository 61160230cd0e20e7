package model

import (
	"fmt"
	"strconv"
)

// Value is a single cell value as read from a workbook.
// It is nil (empty), a string, a float64 or a bool.
type Value = any

// Row is an ordered sequence of cell values
type Row []Value

// Sheet holds the raw content of one worksheet
type Sheet struct {
	Name    string
	Header1 Row   // Row 1 of the worksheet
	Header2 Row   // Row 2 of the worksheet
	Data    []Row // Rows 3..n
}

// Column identifies one column of a Table
type Column struct {
	Position  int    // 0-based position in the source sheet
	Name      string // Display name derived from the two header rows
	Synthetic bool   // True when the name was generated ("Unnamed: <pos>")
}

// Table is the in-memory form of a sheet that the reconciler works on.
// Every row in Rows has exactly len(Columns) cells after construction.
type Table struct {
	Columns []Column
	Rows    []Row
}

// IsEmpty reports whether a cell value counts as empty
func IsEmpty(v Value) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}

// Width returns the number of columns in the table
func (t *Table) Width() int {
	return len(t.Columns)
}

// ColumnNames returns the display names in column order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Cell returns the value at (row, col), treating short rows as padded
func (t *Table) Cell(row, col int) Value {
	r := t.Rows[row]
	if col >= len(r) {
		return nil
	}
	return r[col]
}

// Pad extends every row with empty values up to the column count
func (t *Table) Pad() {
	width := len(t.Columns)
	for i, r := range t.Rows {
		if len(r) < width {
			padded := make(Row, width)
			copy(padded, r)
			t.Rows[i] = padded
		}
	}
}

// IsBlank reports whether every cell of the row is empty
func (r Row) IsBlank() bool {
	for _, v := range r {
		if !IsEmpty(v) {
			return false
		}
	}
	return true
}

// Text renders a cell value as display text.
// Whole numbers are printed without a fractional part.
func Text(v Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(x)
	}
}

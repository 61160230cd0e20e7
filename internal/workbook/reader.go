// Package workbook reads and writes .xlsx workbooks for the cleaning stages.
package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"cell-recon/internal/model"

	"github.com/xuri/excelize/v2"
)

// Workbook is an open .xlsx file
type Workbook struct {
	file *excelize.File
	path string
}

// Open opens an existing workbook
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{file: f, path: path}, nil
}

// Close releases the underlying file
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Path returns the path the workbook was opened from
func (w *Workbook) Path() string {
	return w.path
}

// File exposes the excelize file for stages that edit sheets in place
func (w *Workbook) File() *excelize.File {
	return w.file
}

// SheetNames returns the sheet names in workbook order
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// HasSheet reports whether the workbook contains a sheet
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx != -1
}

// Rows returns every row of a sheet as typed values.
// Formula cells yield their cached result.
func (w *Workbook) Rows(sheet string) ([]model.Row, error) {
	raw, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %q: %w", sheet, err)
	}

	rows := make([]model.Row, len(raw))
	for r, cells := range raw {
		row := make(model.Row, len(cells))
		for c, text := range cells {
			v, err := w.typedValue(sheet, c+1, r+1, text)
			if err != nil {
				return nil, err
			}
			row[c] = v
		}
		rows[r] = row
	}
	return rows, nil
}

// typedValue converts the raw text of a cell into a model.Value.
// Only numeric-looking text needs the cell type to tell numbers, booleans
// and numeric strings apart.
func (w *Workbook) typedValue(sheet string, col, row int, text string) (model.Value, error) {
	if text == "" {
		return nil, nil
	}

	num, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return text, nil
	}

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}
	typ, err := w.file.GetCellType(sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("failed to read type of %s!%s: %w", sheet, cell, err)
	}

	switch typ {
	case excelize.CellTypeBool:
		return text == "1" || strings.EqualFold(text, "true"), nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return text, nil
	default:
		return num, nil
	}
}

// ReadSheet splits a sheet into its two header rows and its data rows
func (w *Workbook) ReadSheet(name string) (*model.Sheet, error) {
	rows, err := w.Rows(name)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%q: %w", name, ErrMissingHeaders)
	}

	data := rows[2:]
	if len(data) == 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrNoData)
	}

	return &model.Sheet{
		Name:    name,
		Header1: rows[0],
		Header2: rows[1],
		Data:    data,
	}, nil
}

package workbook

import (
	"fmt"

	"cell-recon/internal/model"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Writer builds a new workbook sheet by sheet
type Writer struct {
	file    *excelize.File
	written map[string]bool
}

// NewWriter creates a writer backed by an empty workbook
func NewWriter() *Writer {
	return &Writer{
		file:    excelize.NewFile(),
		written: make(map[string]bool),
	}
}

// File exposes the excelize file for styling
func (w *Writer) File() *excelize.File {
	return w.file
}

// Sheets returns the number of sheets written so far
func (w *Writer) Sheets() int {
	return len(w.written)
}

// WriteSheet writes the two header rows unchanged at rows 1 and 2 and the
// data rows from row 3 on. The first sheet written takes the place of the
// default sheet so sheets keep the order they were written in.
func (w *Writer) WriteSheet(name string, header1, header2 model.Row, data []model.Row) error {
	if err := w.createSheet(name); err != nil {
		return err
	}
	w.written[name] = true

	if err := WriteRow(w.file, name, 1, header1); err != nil {
		return err
	}
	if err := WriteRow(w.file, name, 2, header2); err != nil {
		return err
	}
	for i, row := range data {
		if err := WriteRow(w.file, name, i+3, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) createSheet(name string) error {
	if len(w.written) == 0 && name != defaultSheet {
		if err := w.file.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
		return nil
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}
	return nil
}

// Save writes the workbook to path
func (w *Writer) Save(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// Close releases the workbook
func (w *Writer) Close() error {
	return w.file.Close()
}

// WriteRow writes the non-empty values of a row starting at column A.
// Empty values leave the cell untouched.
func WriteRow(f *excelize.File, sheet string, rowNum int, row model.Row) error {
	for i, v := range row {
		if model.IsEmpty(v) {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

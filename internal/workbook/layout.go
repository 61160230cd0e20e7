package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/width"
)

// LayoutOptions bounds the estimated column widths
type LayoutOptions struct {
	MinWidth int
	MaxWidth int
	Padding  int
}

// DefaultLayout returns the widths used when nothing is configured
func DefaultLayout() LayoutOptions {
	return LayoutOptions{MinWidth: 8, MaxWidth: 50, Padding: 2}
}

// ColumnWidth converts the widest display width of a column into the width
// to set on the sheet
func (o LayoutOptions) ColumnWidth(w int) float64 {
	w += o.Padding
	if w < o.MinWidth {
		w = o.MinWidth
	}
	if w > o.MaxWidth {
		w = o.MaxWidth
	}
	return float64(w)
}

// DisplayWidth estimates how many character cells s occupies.
// East Asian wide, fullwidth and ambiguous runes count as two.
// For multi-line text the widest line wins.
func DisplayWidth(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		n := 0
		for _, r := range line {
			switch width.LookupRune(r).Kind() {
			case width.EastAsianWide, width.EastAsianFullwidth, width.EastAsianAmbiguous:
				n += 2
			default:
				n++
			}
		}
		if n > widest {
			widest = n
		}
	}
	return widest
}

// ApplyLayout sizes every used column of a sheet to its widest cell and
// centers the used range. Number formats, fonts and fills of the cells are
// kept.
func ApplyLayout(f *excelize.File, sheet string, opts LayoutOptions, s *Styler) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read rows of %q: %w", sheet, err)
	}

	widths := make([]int, 0)
	for _, row := range rows {
		for c, text := range row {
			for len(widths) <= c {
				widths = append(widths, 0)
			}
			if w := DisplayWidth(text); w > widths[c] {
				widths[c] = w
			}
		}
	}
	if len(widths) == 0 || len(rows) == 0 {
		return nil
	}

	for c, w := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, opts.ColumnWidth(w)); err != nil {
			return fmt.Errorf("failed to set width of %s!%s: %w", sheet, col, err)
		}
	}

	for r := 1; r <= len(rows); r++ {
		for c := 1; c <= len(widths); c++ {
			cell, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return err
			}
			if err := centerCell(f, sheet, cell, s); err != nil {
				return fmt.Errorf("failed to align %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func centerCell(f *excelize.File, sheet, cell string, s *Styler) error {
	id, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return err
	}
	style, err := s.Centered(id)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}

// FormatCodeColumn applies the code style to the first-column cells of the
// header rows and to numeric first-column cells from startRow on
func FormatCodeColumn(f *excelize.File, sheet string, startRow int, s *Styler) error {
	for _, cell := range []string{"A1", "A2"} {
		if err := f.SetCellStyle(sheet, cell, cell, s.CodeStyle); err != nil {
			return err
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("failed to read rows of %q: %w", sheet, err)
	}

	for r := startRow; r <= len(rows); r++ {
		row := rows[r-1]
		if len(row) == 0 || !isNumeric(row[0]) {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, r)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, s.CodeStyle); err != nil {
			return err
		}
	}
	return nil
}

func isNumeric(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	_, err := strconv.ParseFloat(text, 64)
	return err == nil
}

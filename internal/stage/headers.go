package stage

import (
	"fmt"
	"time"

	"cell-recon/internal/logger"
	"cell-recon/internal/model"
	"cell-recon/internal/workbook"

	"github.com/xuri/excelize/v2"
)

// RunHeaders copies the two header rows of the template sheet onto every
// other sheet, formats the first column as a padded code and lays out
// column widths and alignment. The result is saved to output.
func RunHeaders(input, output string, opts Options) (*model.StageSummary, error) {
	summary := model.NewStageSummary(Headers, input, output)
	defer func() { summary.Finished = time.Now() }()

	wb, err := workbook.Open(input)
	if err != nil {
		return summary, err
	}
	defer wb.Close()

	template := opts.TemplateSheet
	if !wb.HasSheet(template) {
		return summary, fmt.Errorf("%w: %q", ErrTemplateNotFound, template)
	}

	header1, header2, err := templateHeaders(wb, template)
	if err != nil {
		return summary, err
	}
	logger.Info("[%s] Read %d header columns from %q", Headers, len(header1), template)

	f := wb.File()
	styler, err := workbook.NewStyler(f, opts.CodeFormat)
	if err != nil {
		return summary, err
	}

	names := wb.SheetNames()
	progress := opts.tracker()
	progress.SetTotal(len(names))

	for _, name := range names {
		progress.Describe(name)
		switch {
		case name == template:
			summary.Add(skipped(name, model.ReasonTemplate))
		case opts.skip(name):
			summary.Add(skipped(name, model.ReasonExcluded))
		default:
			res := processSheet(Headers, name, func() (model.SheetResult, error) {
				return standardizeSheet(f, name, header1, header2, styler, opts)
			})
			summary.Add(res)
		}
		progress.Increment()
	}

	if err := f.SaveAs(output); err != nil {
		return summary, fmt.Errorf("failed to save workbook %s: %w", output, err)
	}

	logSummary(summary)
	return summary, nil
}

// templateHeaders returns rows 1 and 2 of the template sheet, both padded
// to the widest row of that sheet
func templateHeaders(wb *workbook.Workbook, template string) (model.Row, model.Row, error) {
	rows, err := wb.Rows(template)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("template %q: %w", template, workbook.ErrMissingHeaders)
	}

	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	return fit(rows[0], width), fit(rows[1], width), nil
}

func standardizeSheet(f *excelize.File, name string, header1, header2 model.Row, s *workbook.Styler, opts Options) (model.SheetResult, error) {
	if err := unmergeHeaderRows(f, name); err != nil {
		return model.SheetResult{}, err
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return model.SheetResult{}, err
	}
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}

	// Clear the old header rows before writing the template rows
	for row := 1; row <= 2; row++ {
		for col := 1; col <= width; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return model.SheetResult{}, err
			}
			if err := f.SetCellValue(name, cell, nil); err != nil {
				return model.SheetResult{}, err
			}
		}
	}
	if err := workbook.WriteRow(f, name, 1, header1); err != nil {
		return model.SheetResult{}, err
	}
	if err := workbook.WriteRow(f, name, 2, header2); err != nil {
		return model.SheetResult{}, err
	}

	if err := workbook.ApplyLayout(f, name, opts.Layout, s); err != nil {
		return model.SheetResult{}, err
	}
	if err := workbook.FormatCodeColumn(f, name, 3, s); err != nil {
		return model.SheetResult{}, err
	}

	dataRows := len(rows) - 2
	if dataRows < 0 {
		dataRows = 0
	}
	out := width
	if len(header1) > out {
		out = len(header1)
	}
	logger.Debug("[%s] %q: headers replaced, %d data rows", Headers, name, dataRows)

	return model.SheetResult{
		Sheet:      name,
		Status:     model.StatusSuccess,
		Rows:       dataRows,
		ColumnsIn:  width,
		ColumnsOut: out,
	}, nil
}

// unmergeHeaderRows removes every merged range that starts in row 1 or 2
func unmergeHeaderRows(f *excelize.File, name string) error {
	merged, err := f.GetMergeCells(name)
	if err != nil {
		return fmt.Errorf("failed to read merged cells of %q: %w", name, err)
	}
	for _, mc := range merged {
		_, row, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			return err
		}
		if row > 2 {
			continue
		}
		if err := f.UnmergeCell(name, mc.GetStartAxis(), mc.GetEndAxis()); err != nil {
			return fmt.Errorf("failed to unmerge %s:%s in %q: %w", mc.GetStartAxis(), mc.GetEndAxis(), name, err)
		}
	}
	return nil
}

// fit truncates or pads a row to exactly n cells
func fit(r model.Row, n int) model.Row {
	out := make(model.Row, n)
	copy(out, r)
	return out
}

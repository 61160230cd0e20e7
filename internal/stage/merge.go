package stage

import (
	"time"

	"cell-recon/internal/logger"
	"cell-recon/internal/model"
	"cell-recon/internal/workbook"
)

// RunMerge appends the data rows of every sheet into a single sheet.
// Header rows come from the first sheet, only the first MaxColumns columns
// are kept and rows without any value are dropped.
func RunMerge(input, output string, opts Options) (*model.StageSummary, error) {
	summary := model.NewStageSummary(Merge, input, output)
	defer func() { summary.Finished = time.Now() }()

	wb, err := workbook.Open(input)
	if err != nil {
		return summary, err
	}
	defer wb.Close()

	var names []string
	for _, name := range wb.SheetNames() {
		if opts.skip(name) {
			summary.Add(skipped(name, model.ReasonExcluded))
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return summary, ErrNoSheets
	}

	width := opts.MaxColumns
	first, err := wb.Rows(names[0])
	if err != nil {
		return summary, err
	}
	header1, header2 := fit(nil, width), fit(nil, width)
	if len(first) > 0 {
		header1 = fit(first[0], width)
	}
	if len(first) > 1 {
		header2 = fit(first[1], width)
	}
	logger.Info("[%s] Using headers of %q, %d columns", Merge, names[0], width)

	progress := opts.tracker()
	progress.SetTotal(len(names))

	var merged []model.Row
	for _, name := range names {
		progress.Describe(name)
		var data []model.Row
		res := processSheet(Merge, name, func() (model.SheetResult, error) {
			var err error
			data, err = sheetData(wb, name, width)
			if err != nil {
				return model.SheetResult{}, err
			}
			logger.Debug("[%s] %q: %d rows", Merge, name, len(data))
			return model.SheetResult{
				Sheet:      name,
				Status:     model.StatusSuccess,
				Rows:       len(data),
				ColumnsIn:  width,
				ColumnsOut: width,
			}, nil
		})
		if res.Status == model.StatusSuccess {
			merged = append(merged, data...)
		}
		summary.Add(res)
		progress.Increment()
	}
	logger.Info("[%s] Collected %d rows", Merge, len(merged))

	w := workbook.NewWriter()
	defer w.Close()

	target := opts.MergedSheet
	if err := w.WriteSheet(target, header1, header2, merged); err != nil {
		return summary, err
	}

	styler, err := workbook.NewStyler(w.File(), opts.CodeFormat)
	if err != nil {
		return summary, err
	}
	if err := workbook.ApplyLayout(w.File(), target, opts.Layout, styler); err != nil {
		return summary, err
	}
	if err := workbook.FormatCodeColumn(w.File(), target, 3, styler); err != nil {
		return summary, err
	}

	if err := w.Save(output); err != nil {
		return summary, err
	}

	logSummary(summary)
	return summary, nil
}

// sheetData returns rows 3..n of a sheet cut to width, without blank rows
func sheetData(wb *workbook.Workbook, name string, width int) ([]model.Row, error) {
	rows, err := wb.Rows(name)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 2 {
		return nil, nil
	}

	data := make([]model.Row, 0, len(rows)-2)
	for _, r := range rows[2:] {
		row := fit(r, width)
		if row.IsBlank() {
			continue
		}
		data = append(data, row)
	}
	return data, nil
}

package stage

import (
	"errors"
	"strings"
	"time"

	"cell-recon/internal/logger"
	"cell-recon/internal/model"
	"cell-recon/internal/reconcile"
	"cell-recon/internal/workbook"
)

// RunClean reconciles the merged-header artifacts of every sheet in input
// and writes the cleaned sheets to output. Each output sheet keeps its
// original two header rows; data starts at row 3 without synthetic columns.
func RunClean(input, output string, opts Options) (*model.StageSummary, error) {
	summary := model.NewStageSummary(Clean, input, output)
	defer func() { summary.Finished = time.Now() }()

	wb, err := workbook.Open(input)
	if err != nil {
		return summary, err
	}
	defer wb.Close()

	w := workbook.NewWriter()
	defer w.Close()

	names := wb.SheetNames()
	logger.Info("[%s] Found %d sheets in %s", Clean, len(names), input)

	progress := opts.tracker()
	progress.SetTotal(len(names))

	for _, name := range names {
		progress.Describe(name)
		if opts.skip(name) {
			summary.Add(skipped(name, model.ReasonExcluded))
			progress.Increment()
			continue
		}

		res := processSheet(Clean, name, func() (model.SheetResult, error) {
			return cleanSheet(wb, w, name)
		})
		summary.Add(res)
		progress.Increment()
	}

	if err := w.Save(output); err != nil {
		return summary, err
	}

	logSummary(summary)
	return summary, nil
}

func cleanSheet(wb *workbook.Workbook, w *workbook.Writer, name string) (model.SheetResult, error) {
	sheet, err := wb.ReadSheet(name)
	switch {
	case errors.Is(err, workbook.ErrMissingHeaders):
		logger.Warn("[%s] %q has fewer than two header rows, skipped", Clean, name)
		return skipped(name, model.ReasonNoHeaders), nil
	case errors.Is(err, workbook.ErrNoData):
		logger.Warn("[%s] %q has no data rows, skipped", Clean, name)
		return skipped(name, model.ReasonNoData), nil
	case err != nil:
		return model.SheetResult{}, err
	}

	table := reconcile.NewTable(sheet.Header1, sheet.Header2, sheet.Data)
	res := model.SheetResult{
		Sheet:     name,
		Status:    model.StatusSuccess,
		Rows:      len(table.Rows),
		ColumnsIn: table.Width(),
	}
	logger.Debug("[%s] %q: %d rows, %d columns", Clean, name, res.Rows, res.ColumnsIn)

	report := reconcile.Reconcile(table)
	for _, m := range report.Migrations {
		if m.Moved > 0 {
			logger.Info("  ✓ %s → %s: moved %d values", m.Column, oneLine(m.Target), m.Moved)
		}
		if m.Discarded > 0 {
			logger.Warn("  %s → %s: %d values dropped, target already filled", m.Column, oneLine(m.Target), m.Discarded)
		}
		res.Migrations = append(res.Migrations, m)
	}
	for _, u := range report.Unreconciled {
		logger.Warn("  %s: %v", name, u)
		res.Unreconciled = append(res.Unreconciled, model.Unreconciled{
			Column:   u.Column,
			Position: u.Position,
			Values:   u.Values,
		})
	}
	if report.Removed > 0 {
		logger.Debug("[%s] %q: removed %d synthetic columns", Clean, name, report.Removed)
	}
	res.ColumnsOut = table.Width()

	if err := w.WriteSheet(name, sheet.Header1, sheet.Header2, table.Rows); err != nil {
		return model.SheetResult{}, err
	}
	return res, nil
}

// oneLine flattens a two-line header label for log output
func oneLine(label string) string {
	return strings.ReplaceAll(label, "\n", " ")
}

package exporter

import (
	"fmt"

	"cell-recon/internal/config"
	"cell-recon/internal/exporter/common"
	"cell-recon/internal/model"

	"github.com/xuri/excelize/v2"
)

// Report sheet names
const (
	OverviewSheet = "Overview"
	SheetsSheet   = "Sheets"
)

// ExcelExporter handles the Excel generation
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export generates the Excel report
func (e *ExcelExporter) Export(run *model.RunSummary, cfg *config.Config) error {
	outputFile := cfg.ReportPath(".xlsx")
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	// 1. Create Overview Sheet
	if err := e.writeOverview(f, styler, run); err != nil {
		return err
	}

	// 2. Create per-sheet detail
	if err := e.writeSheets(f, styler, run); err != nil {
		return err
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}

	if err := f.SaveAs(outputFile); err != nil {
		return fmt.Errorf("failed to save report %s: %w", outputFile, err)
	}

	return nil
}

// --- Overview Sheet Logic ---

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, run *model.RunSummary) error {
	sheet := OverviewSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	// Section A: Run Summary
	row := 1
	e.writeRow(f, sheet, row, []string{"Metric", "Value"}, s.HeaderStyle)
	row++

	metrics := []struct {
		Key string
		Val any
	}{
		{"Run ID", run.ID},
		{"Date", run.Date},
		{"Stages", len(run.Stages)},
		{"Sheet Results", run.TotalSheets()},
		{"Failed Sheets", run.TotalFailed()},
	}

	for _, m := range metrics {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Val)
		row++
	}

	row += 2 // Spacer

	// Section B: Stage statistics
	headersB := []string{"Stage", "Sheets", "Succeeded", "Skipped", "Failed", "Rows", "Mean Rows", "Median Rows", "Max Rows", "Seconds", "Output"}
	e.writeRow(f, sheet, row, headersB, s.HeaderStyle)
	row++

	for _, st := range common.RunStats(run) {
		values := []any{
			st.Stage, st.Total, st.Succeeded, st.Skipped, st.Failed,
			st.RowsTotal, st.RowsMean, st.RowsMedian, st.RowsMax,
			st.Duration.Seconds(), st.Output,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}

		style := s.StageStyle
		if st.Failed > 0 {
			style = s.FailedStyle
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("K%d", row), style)
		row++
	}

	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "K", "K", 50)

	return nil
}

// --- Sheets Detail Logic ---

func (e *ExcelExporter) writeSheets(f *excelize.File, s *Styler, run *model.RunSummary) error {
	sheet := SheetsSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Stage", "Sheet", "Status", "Rows", "Columns In", "Columns Out", "Moved", "Discarded", "Unreconciled", "Reason"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	row := 2
	for _, r := range common.FlattenRun(run) {
		e.writeResultRow(f, sheet, row, r, s)
		row++
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "I", 13)
	f.SetColWidth(sheet, "J", "J", 60)

	return nil
}

func (e *ExcelExporter) writeResultRow(f *excelize.File, sheet string, row int, r common.ResultRow, s *Styler) {
	values := []any{
		r.Stage, r.Sheet, string(r.Status), r.Rows, r.ColumnsIn, r.ColumnsOut,
		r.Moved, r.Discarded, r.Unreconciled, r.Reason,
	}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}

	style := s.ForStatus(r.Status, r.NeedsAttention())
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("J%d", row), style)
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

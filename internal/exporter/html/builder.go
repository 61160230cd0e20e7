package html

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"cell-recon/internal/config"
	"cell-recon/internal/exporter/common"
	"cell-recon/internal/model"
)

type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// RunReportData is the data rendered by RunReportTemplate
type RunReportData struct {
	RunID       string
	Date        string
	TotalSheets int
	TotalFailed int
	Stages      []common.StageStats
	Attention   []common.ResultRow
	Clean       []common.ResultRow
}

func (e *HTMLExporter) Export(run *model.RunSummary, cfg *config.Config) error {
	attention, clean := common.SplitRows(common.FlattenRun(run))

	data := RunReportData{
		RunID:       run.ID,
		Date:        run.Date,
		TotalSheets: run.TotalSheets(),
		TotalFailed: run.TotalFailed(),
		Stages:      common.RunStats(run),
		Attention:   attention,
		Clean:       clean,
	}

	tmpl, err := template.New("run-report").Funcs(template.FuncMap{
		"statusClass": getStatusClass,
		"seconds": func(d time.Duration) string {
			return fmt.Sprintf("%.2fs", d.Seconds())
		},
	}).Parse(RunReportTemplate)
	if err != nil {
		return err
	}

	outputFile := cfg.ReportPath(".html")
	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

// getStatusClass returns the CSS class for a sheet status
func getStatusClass(status model.SheetStatus) string {
	switch status {
	case model.StatusSuccess:
		return "status-success"
	case model.StatusSkipped:
		return "status-skipped"
	case model.StatusFailed:
		return "status-failed"
	default:
		return "status-default"
	}
}

// Package jsonfile writes the run report as a machine-readable JSON document.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"

	"cell-recon/internal/config"
	"cell-recon/internal/exporter/common"
	"cell-recon/internal/model"
)

// Report Root Object
type Report struct {
	RunID       string  `json:"runId"`
	Date        string  `json:"date"`
	TotalSheets int     `json:"totalSheets"`
	TotalFailed int     `json:"totalFailed"`
	Stages      []Stage `json:"stages"`
}

type Stage struct {
	Name      string  `json:"name"`
	Input     string  `json:"input"`
	Output    string  `json:"output"`
	Seconds   float64 `json:"seconds"`
	Total     int     `json:"total"`
	Succeeded int     `json:"succeeded"`
	Skipped   int     `json:"skipped"`
	Failed    int     `json:"failed"`
	Rows      Rows    `json:"rows"`
	Sheets    []Sheet `json:"sheets"`
}

type Rows struct {
	Total  int     `json:"total"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

type Sheet struct {
	Name         string              `json:"name"`
	Status       model.SheetStatus   `json:"status"`
	Reason       string              `json:"reason,omitempty"`
	Rows         int                 `json:"rows"`
	ColumnsIn    int                 `json:"columnsIn"`
	ColumnsOut   int                 `json:"columnsOut"`
	Migrations   []Migration         `json:"migrations,omitempty"`
	Unreconciled []UnreconciledEntry `json:"unreconciled,omitempty"`
}

type Migration struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Moved     int    `json:"moved"`
	Discarded int    `json:"discarded"`
}

type UnreconciledEntry struct {
	Column   string `json:"column"`
	Position int    `json:"position"`
	Values   int    `json:"values"`
}

type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (b *JSONExporter) Export(run *model.RunSummary, cfg *config.Config) error {
	report := BuildReport(run)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	outputFile := cfg.ReportPath(".json")
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	return nil
}

// BuildReport converts a run summary into the JSON document layout
func BuildReport(run *model.RunSummary) *Report {
	report := &Report{
		RunID:       run.ID,
		Date:        run.Date,
		TotalSheets: run.TotalSheets(),
		TotalFailed: run.TotalFailed(),
		Stages:      make([]Stage, 0, len(run.Stages)),
	}

	for _, s := range run.Stages {
		st := common.ComputeStats(s)
		stage := Stage{
			Name:      st.Stage,
			Input:     st.Input,
			Output:    st.Output,
			Seconds:   st.Duration.Seconds(),
			Total:     st.Total,
			Succeeded: st.Succeeded,
			Skipped:   st.Skipped,
			Failed:    st.Failed,
			Rows: Rows{
				Total:  st.RowsTotal,
				Mean:   st.RowsMean,
				Median: st.RowsMedian,
				Max:    st.RowsMax,
			},
			Sheets: make([]Sheet, 0, len(s.Results)),
		}
		for _, res := range s.Results {
			stage.Sheets = append(stage.Sheets, toSheet(res))
		}
		report.Stages = append(report.Stages, stage)
	}

	return report
}

func toSheet(res model.SheetResult) Sheet {
	sheet := Sheet{
		Name:       res.Sheet,
		Status:     res.Status,
		Reason:     res.Reason,
		Rows:       res.Rows,
		ColumnsIn:  res.ColumnsIn,
		ColumnsOut: res.ColumnsOut,
	}
	for _, m := range res.Migrations {
		sheet.Migrations = append(sheet.Migrations, Migration{
			From:      m.Column,
			To:        m.Target,
			Moved:     m.Moved,
			Discarded: m.Discarded,
		})
	}
	for _, u := range res.Unreconciled {
		sheet.Unreconciled = append(sheet.Unreconciled, UnreconciledEntry{
			Column:   u.Column,
			Position: u.Position,
			Values:   u.Values,
		})
	}
	return sheet
}

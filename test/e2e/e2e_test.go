package e2e

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cell-recon/internal/config"
	"cell-recon/internal/exporter"
	"cell-recon/internal/model"
	"cell-recon/internal/stage"

	"github.com/xuri/excelize/v2"
)

// writeDangerousGoods builds a workbook shaped like an exported regulation
// table: two header rows, horizontally merged name cells and a cover sheet
func writeDangerousGoods(t *testing.T, path string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name string
		rows [][]any
	}{
		{"Cover", [][]any{{"List of dangerous goods"}}},
		{"Table 2", [][]any{
			{"UN No.", "Name", nil},
			{nil, "and description", nil},
			{1090, nil, "ACETONE"},
			{1170, "ETHANOL", nil},
		}},
		{"Table 3", [][]any{
			{"UN No.", "Name"},
			{},
			{7, "METHANOL"},
			{},
			{1203, "GASOLINE"},
		}},
	}

	for _, s := range sheets {
		f.NewSheet(s.name)
		for r, row := range s.rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				f.SetCellValue(s.name, cell, v)
			}
		}
	}
	f.MergeCell("Table 2", "B1", "C1")
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to write input workbook: %v", err)
	}
}

func TestEndToEndFlow(t *testing.T) {
	// Setup Paths
	workDir := t.TempDir()
	outputDir := filepath.Join(workDir, "output")
	input := filepath.Join(workDir, "dangerous_goods.xlsx")
	writeDangerousGoods(t, input)

	// 1. Configure
	cfg := &config.Config{
		Input: config.InputConfig{Path: input},
		Output: config.OutputConfig{
			Dir:        outputDir,
			FileName:   "e2e",
			ReportName: "e2e_report",
		},
		Stages: config.StagesConfig{
			Headers: config.HeadersConfig{TemplateSheet: "Table 2", CodeFormat: "0000"},
			Merge:   config.MergeConfig{MaxColumns: 2, SheetName: "Merged"},
		},
		Layout: config.LayoutConfig{MinWidth: 8, MaxWidth: 50, Padding: 2},
	}
	if err := cfg.EnsureOutputDir(); err != nil {
		t.Fatal(err)
	}

	// 2. Run all stages
	run, err := stage.NewRunner(cfg, nil).Run(stage.Order)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	clean := run.Stages[0]
	if clean.Skipped() != 1 || clean.Succeeded() != 2 {
		t.Errorf("clean stage: %d succeeded, %d skipped", clean.Succeeded(), clean.Skipped())
	}

	// 3. Export every report format
	for _, exp := range exporter.GetExporters([]string{"excel", "html", "word", "json"}) {
		if err := exp.Export(run, cfg); err != nil {
			t.Errorf("Export failed: %v", err)
		}
	}

	// 4. Verify Outputs
	expectedFiles := []string{
		"e2e_clean.xlsx",
		"e2e_headers.xlsx",
		"e2e_final.xlsx",
		"e2e_report.xlsx",
		"e2e_report.html",
		"e2e_report.docx",
		"e2e_report.json",
	}
	for _, name := range expectedFiles {
		path := filepath.Join(outputDir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Expected output file missing: %s", path)
		} else {
			t.Logf("✅ Verified output: %s", name)
		}
	}

	// 5. The merged sheet holds every data row once, codes padded
	verifyMerged(t, filepath.Join(outputDir, "e2e_final.xlsx"))

	// 6. The JSON report records the migration
	verifyReport(t, filepath.Join(outputDir, "e2e_report.json"))
}

func verifyMerged(t *testing.T, path string) {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Merged")
	if err != nil {
		t.Fatal(err)
	}

	want := [][]string{
		{"UN No.", "Name"},
		{"", "and description"},
		{"1090", "ACETONE"},
		{"1170", "ETHANOL"},
		{"0007", "METHANOL"},
		{"1203", "GASOLINE"},
	}
	if len(rows) != len(want) {
		t.Fatalf("merged sheet has %d rows, want %d: %v", len(rows), len(want), rows)
	}
	for i := range want {
		for c := range want[i] {
			got := ""
			if c < len(rows[i]) {
				got = rows[i][c]
			}
			if got != want[i][c] {
				t.Errorf("row %d col %d = %q, want %q", i+1, c+1, got, want[i][c])
			}
		}
	}
}

func verifyReport(t *testing.T, path string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var report struct {
		TotalFailed int `json:"totalFailed"`
		Stages      []struct {
			Name   string `json:"name"`
			Sheets []struct {
				Name       string            `json:"name"`
				Status     model.SheetStatus `json:"status"`
				Migrations []struct {
					From  string `json:"from"`
					Moved int    `json:"moved"`
				} `json:"migrations"`
			} `json:"sheets"`
		} `json:"stages"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("invalid JSON report: %v", err)
	}

	if report.TotalFailed != 0 || len(report.Stages) != 3 {
		t.Fatalf("report = %+v", report)
	}

	table2 := report.Stages[0].Sheets[1]
	if table2.Name != "Table 2" || len(table2.Migrations) != 1 {
		t.Fatalf("Table 2 result = %+v", table2)
	}
	if m := table2.Migrations[0]; m.From != "Unnamed: 2" || m.Moved != 1 {
		t.Errorf("migration = %+v", m)
	}
}

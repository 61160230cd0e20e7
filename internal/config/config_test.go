package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load config with defaults: %v", err)
	}

	if !filepath.IsAbs(cfg.Input.Path) {
		t.Errorf("Expected absolute input path, got %s", cfg.Input.Path)
	}
	if cfg.Output.FileName != "cleaned" {
		t.Errorf("Output.FileName = %s, expected cleaned", cfg.Output.FileName)
	}
	if cfg.Stages.Headers.TemplateSheet != "Table 2" {
		t.Errorf("TemplateSheet = %q, expected %q", cfg.Stages.Headers.TemplateSheet, "Table 2")
	}
	if cfg.Stages.Headers.CodeFormat != "0000" {
		t.Errorf("CodeFormat = %q, expected 0000", cfg.Stages.Headers.CodeFormat)
	}
	if cfg.Stages.Merge.MaxColumns != 11 {
		t.Errorf("MaxColumns = %d, expected 11", cfg.Stages.Merge.MaxColumns)
	}
	if cfg.Layout.MinWidth != 8 || cfg.Layout.MaxWidth != 50 || cfg.Layout.Padding != 2 {
		t.Errorf("Layout = %+v, expected 8/50/2", cfg.Layout)
	}
	if _, err := os.Stat(cfg.Output.Dir); !os.IsNotExist(err) {
		t.Errorf("Load should not create the output directory, stat err = %v", err)
	}
	if err := cfg.EnsureOutputDir(); err != nil {
		t.Fatalf("EnsureOutputDir failed: %v", err)
	}
	if _, err := os.Stat(cfg.Output.Dir); err != nil {
		t.Errorf("Output directory was not created: %v", err)
	}

	cfg.Print()
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := `
input:
  path: "./dg-list.xlsx"
output:
  dir: "./out"
  file_name: "dg"
sheets:
  exclude: ["Notes*"]
stages:
  merge:
    max_columns: 9
    sheet_name: "All"
`
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if filepath.Base(cfg.Input.Path) != "dg-list.xlsx" {
		t.Errorf("Input.Path = %s", cfg.Input.Path)
	}
	if cfg.Stages.Merge.MaxColumns != 9 || cfg.Stages.Merge.SheetName != "All" {
		t.Errorf("Merge = %+v", cfg.Stages.Merge)
	}
	// Unset keys keep their defaults
	if cfg.Stages.Headers.TemplateSheet != "Table 2" {
		t.Errorf("TemplateSheet = %q", cfg.Stages.Headers.TemplateSheet)
	}
	if !cfg.ShouldSkipSheet("Notes 1") {
		t.Error("expected Notes 1 to be excluded")
	}
	if got := cfg.StageOutputPath("clean"); got != filepath.Join(cfg.Output.Dir, "dg_clean.xlsx") {
		t.Errorf("StageOutputPath = %s", got)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CELLRECON_STAGES_MERGE_MAX_COLUMNS", "5")
	t.Setenv("CELLRECON_OUTPUT_FILE_NAME", "from-env")

	cfg, err := Load("missing.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Stages.Merge.MaxColumns != 5 {
		t.Errorf("MaxColumns = %d, expected 5", cfg.Stages.Merge.MaxColumns)
	}
	if cfg.Output.FileName != "from-env" {
		t.Errorf("FileName = %s, expected from-env", cfg.Output.FileName)
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CELLRECON_OUTPUT_REPORT_NAME=dotenv-report\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("CELLRECON_OUTPUT_REPORT_NAME") })

	cfg, err := Load("missing.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Output.ReportName != "dotenv-report" {
		t.Errorf("ReportName = %s, expected dotenv-report", cfg.Output.ReportName)
	}
}

func TestShouldSkipSheet(t *testing.T) {
	cfg := &Config{
		Sheets: SheetsConfig{
			Exclude: []string{"Notes*", "*Draft", "*tmp*", "Cover"},
		},
	}

	tests := []struct {
		sheet    string
		expected bool
	}{
		{"Notes", true},
		{"Notes 2", true},
		{"Table 3 Draft", true},
		{"my tmp sheet", true},
		{"Cover", true},
		{"Cover 2", false},
		{"Table 2", false},
	}

	for _, tt := range tests {
		if result := cfg.ShouldSkipSheet(tt.sheet); result != tt.expected {
			t.Errorf("ShouldSkipSheet(%s) = %v, expected %v", tt.sheet, result, tt.expected)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	cfg := &Config{
		Output: OutputConfig{
			Dir:        "/tmp/output",
			FileName:   "dg",
			ReportName: "run-report",
		},
		Log: LogConfig{File: "run.log"},
	}

	tests := []struct {
		got      string
		expected string
	}{
		{cfg.StageOutputPath("clean"), filepath.Join("/tmp/output", "dg_clean.xlsx")},
		{cfg.StageOutputPath("final"), filepath.Join("/tmp/output", "dg_final.xlsx")},
		{cfg.ReportPath(".html"), filepath.Join("/tmp/output", "run-report.html")},
		{cfg.LogPath(), filepath.Join("/tmp/output", "run.log")},
	}

	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("got %s, expected %s", tt.got, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.xlsx")
	if err := os.WriteFile(input, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	valid := func() *Config {
		return &Config{
			Input:  InputConfig{Path: input},
			Output: OutputConfig{FileName: "dg", ReportName: "report"},
			Stages: StagesConfig{Merge: MergeConfig{MaxColumns: 11, SheetName: "Merged"}},
			Layout: LayoutConfig{MinWidth: 8, MaxWidth: 50, Padding: 2},
		}
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		shouldErr bool
	}{
		{"Valid config", func(c *Config) {}, false},
		{"Missing input", func(c *Config) { c.Input.Path = "/nonexistent/in.xlsx" }, true},
		{"Empty output filename", func(c *Config) { c.Output.FileName = "" }, true},
		{"Empty report name", func(c *Config) { c.Output.ReportName = "" }, true},
		{"Zero max columns", func(c *Config) { c.Stages.Merge.MaxColumns = 0 }, true},
		{"Empty merged sheet name", func(c *Config) { c.Stages.Merge.SheetName = "" }, true},
		{"Inverted widths", func(c *Config) { c.Layout.MinWidth = 60 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.shouldErr && err == nil {
				t.Error("Expected error but got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		str      string
		pattern  string
		expected bool
	}{
		{"Table 2", "Table*", true},
		{"Notes", "*es", true},
		{"Appendix notes", "*notes*", true},
		{"Table 2", "*Draft", false},
		{"Cover", "Cover", true},
		{"Anything", "*", true},
	}

	for _, tt := range tests {
		if result := matchPattern(tt.str, tt.pattern); result != tt.expected {
			t.Errorf("matchPattern(%s, %s) = %v, expected %v", tt.str, tt.pattern, result, tt.expected)
		}
	}
}

package word

import (
	"embed"
	"fmt"
	"strings"

	"cell-recon/internal/config"
	"cell-recon/internal/exporter/common"
	"cell-recon/internal/model"

	"github.com/nguyenthenguyen/docx"
)

//go:embed template.docx
var templateFS embed.FS

type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Export(run *model.RunSummary, cfg *config.Config) error {
	r, err := docx.ReadDocxFromFS("template.docx", templateFS)
	if err != nil {
		return fmt.Errorf("failed to read embedded template: %w", err)
	}
	defer r.Close()

	doc := r.Editable()

	replacements := []struct {
		placeholder string
		value       string
	}{
		{"{{Date}}", run.Date},
		{"{{RunID}}", run.ID},
		{"{{TotalSheets}}", fmt.Sprintf("%d", run.TotalSheets())},
		// Plain text body; the library handles XML encoding and line breaks
		{"{{Content}}", buildContent(run)},
	}
	for _, rep := range replacements {
		if err := doc.Replace(rep.placeholder, rep.value, -1); err != nil {
			return fmt.Errorf("failed to fill %s: %w", rep.placeholder, err)
		}
	}

	outFile := cfg.ReportPath(".docx")
	if err := doc.WriteToFile(outFile); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}

	return nil
}

// buildContent renders the stage statistics and the per-sheet results
func buildContent(run *model.RunSummary) string {
	var sb strings.Builder

	sb.WriteString("CLEANING RUN\n\n")
	sb.WriteString("Summary Overview:\n")
	sb.WriteString(fmt.Sprintf("  • Sheet Results: %d\n", run.TotalSheets()))
	sb.WriteString(fmt.Sprintf("  • Failed: %d\n\n", run.TotalFailed()))
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	stats := common.RunStats(run)
	for i := range stats {
		buildStageText(&sb, &stats[i])
	}

	attention, clean := common.SplitRows(common.FlattenRun(run))
	if len(attention) > 0 {
		sb.WriteString("NEEDS REVIEW:\n")
		writeResultTable(&sb, attention)
		sb.WriteString("\n")
	}
	if len(clean) > 0 {
		sb.WriteString("CLEANED SHEETS:\n")
		writeResultTable(&sb, clean)
	}

	return sb.String()
}

// buildStageText writes the statistics block of one stage
func buildStageText(sb *strings.Builder, st *common.StageStats) {
	sb.WriteString(fmt.Sprintf("[%s] %s\n", strings.ToUpper(st.Stage), st.Output))
	sb.WriteString(fmt.Sprintf("Input: %s\n", st.Input))
	sb.WriteString(fmt.Sprintf("Sheets: %d (succeeded %d, skipped %d, failed %d)\n",
		st.Total, st.Succeeded, st.Skipped, st.Failed))
	sb.WriteString(fmt.Sprintf("Rows: %d (mean %.2f, median %.1f, max %.0f)\n",
		st.RowsTotal, st.RowsMean, st.RowsMedian, st.RowsMax))
	sb.WriteString(fmt.Sprintf("Time: %.2fs\n", st.Duration.Seconds()))
	sb.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
}

func writeResultTable(sb *strings.Builder, rows []common.ResultRow) {
	sb.WriteString(fmt.Sprintf("%-10s %-25s %-8s %6s %6s %9s %12s  %s\n",
		"Stage", "Sheet", "Status", "Rows", "Moved", "Discarded", "Unreconciled", "Reason"))
	sb.WriteString(strings.Repeat("-", 100) + "\n")

	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-10s %-25s %-8s %6d %6d %9d %12d  %s\n",
			r.Stage,
			truncate(r.Sheet, 25),
			r.Status,
			r.Rows,
			r.Moved,
			r.Discarded,
			r.Unreconciled,
			r.Reason))
	}
}

// truncate truncates a string to a maximum number of runes
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

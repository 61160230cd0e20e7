package exporter

import (
	"strings"

	"cell-recon/internal/exporter/html"
	"cell-recon/internal/exporter/jsonfile"
	"cell-recon/internal/exporter/word"
)

// GetExporters returns a list of Exporters based on requested formats.
// Unknown formats are ignored; the caller decides what an empty list means.
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))
		if seen[fmtStr] {
			continue
		}
		seen[fmtStr] = true

		switch fmtStr {
		case "excel", "xlsx":
			exporters = append(exporters, NewExcelExporter())
		case "html":
			exporters = append(exporters, html.NewHTMLExporter())
		case "word", "docx":
			exporters = append(exporters, word.NewWordExporter())
		case "json":
			exporters = append(exporters, jsonfile.NewJSONExporter())
		}
	}

	return exporters
}

// Package exporter writes the run report in the requested formats.
package exporter

import (
	"cell-recon/internal/config"
	"cell-recon/internal/model"
)

// Exporter is the unified interface for all reporting strategies
type Exporter interface {
	Export(run *model.RunSummary, cfg *config.Config) error
}

// Package stage implements the independently runnable steps of a cleaning
// run: clean, headers and merge. Every stage reads one workbook, writes
// another and reports a typed result per sheet.
package stage

import (
	"errors"
	"fmt"

	"cell-recon/internal/config"
	"cell-recon/internal/logger"
	"cell-recon/internal/model"
	"cell-recon/internal/workbook"
)

// Stage names
const (
	Clean   = "clean"
	Headers = "headers"
	Merge   = "merge"
	All     = "all"
)

var (
	// ErrUnknownStage is returned for a stage name that is not registered
	ErrUnknownStage = errors.New("unknown stage")

	// ErrTemplateNotFound is returned when the header template sheet is missing
	ErrTemplateNotFound = errors.New("template sheet not found")

	// ErrNoSheets is returned when a workbook has nothing to merge
	ErrNoSheets = errors.New("workbook has no sheets")
)

// Tracker receives per-sheet progress. ui.ProgressBar satisfies it.
type Tracker interface {
	SetTotal(total int)
	Describe(sheet string)
	Increment() error
}

type noopTracker struct{}

func (noopTracker) SetTotal(int)     {}
func (noopTracker) Describe(string)  {}
func (noopTracker) Increment() error { return nil }

// Options carries the settings every stage may need
type Options struct {
	TemplateSheet string
	CodeFormat    string
	MaxColumns    int
	MergedSheet   string
	Layout        workbook.LayoutOptions

	// Skip reports whether a sheet is excluded from processing
	Skip func(sheet string) bool

	Tracker Tracker
}

// OptionsFromConfig builds stage options from the loaded configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		TemplateSheet: cfg.Stages.Headers.TemplateSheet,
		CodeFormat:    cfg.Stages.Headers.CodeFormat,
		MaxColumns:    cfg.Stages.Merge.MaxColumns,
		MergedSheet:   cfg.Stages.Merge.SheetName,
		Layout: workbook.LayoutOptions{
			MinWidth: cfg.Layout.MinWidth,
			MaxWidth: cfg.Layout.MaxWidth,
			Padding:  cfg.Layout.Padding,
		},
		Skip: cfg.ShouldSkipSheet,
	}
}

func (o Options) tracker() Tracker {
	if o.Tracker == nil {
		return noopTracker{}
	}
	return o.Tracker
}

func (o Options) skip(sheet string) bool {
	return o.Skip != nil && o.Skip(sheet)
}

// Func is the signature shared by all stages
type Func func(input, output string, opts Options) (*model.StageSummary, error)

// Lookup returns the stage function registered under name
func Lookup(name string) (Func, error) {
	switch name {
	case Clean:
		return RunClean, nil
	case Headers:
		return RunHeaders, nil
	case Merge:
		return RunMerge, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, name)
	}
}

// processSheet runs fn for one sheet and turns a returned error or a panic
// into a failed result, so one broken sheet never stops the stage
func processSheet(stage, sheet string, fn func() (model.SheetResult, error)) (res model.SheetResult) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			logger.LogSheetError(stage, sheet, err)
			res = failed(sheet, err)
		}
	}()

	res, err := fn()
	if err != nil {
		logger.LogSheetError(stage, sheet, err)
		return failed(sheet, err)
	}
	return res
}

func failed(sheet string, err error) model.SheetResult {
	return model.SheetResult{
		Sheet:  sheet,
		Status: model.StatusFailed,
		Reason: err.Error(),
		Err:    err,
	}
}

func skipped(sheet, reason string) model.SheetResult {
	return model.SheetResult{
		Sheet:  sheet,
		Status: model.StatusSkipped,
		Reason: reason,
	}
}

func logSummary(s *model.StageSummary) {
	logger.Info("[%s] %d/%d sheets processed (%d skipped, %d failed) -> %s",
		s.Stage, s.Succeeded(), s.Total(), s.Skipped(), s.Failed(), s.Output)
}

package model

import "time"

// SheetStatus is the outcome of processing one sheet in a stage
type SheetStatus string

const (
	StatusSuccess SheetStatus = "success"
	StatusSkipped SheetStatus = "skipped"
	StatusFailed  SheetStatus = "failed"
)

// Skip reasons recorded by the stages
const (
	ReasonTemplate  = "template sheet"
	ReasonExcluded  = "excluded by configuration"
	ReasonNoHeaders = "missing header rows"
	ReasonNoData    = "no data rows"
)

// IsPlannedSkip reports whether a skip reason follows from the configuration
// rather than from the content of the sheet
func IsPlannedSkip(reason string) bool {
	return reason == ReasonTemplate || reason == ReasonExcluded
}

// Migration records values moved from a synthetic column into its target
type Migration struct {
	Column         string
	Position       int
	Target         string
	TargetPosition int
	Moved          int // Values copied into empty target cells
	Discarded      int // Values lost because the target cell was occupied
}

// Unreconciled records a synthetic column that had no target to its left
type Unreconciled struct {
	Column   string
	Position int
	Values   int // Non-empty values dropped with the column
}

// SheetResult is the typed per-sheet outcome collected by every stage
type SheetResult struct {
	Sheet      string
	Status     SheetStatus
	Reason     string // Skip reason or failure message
	Err        error  `json:"-"`
	Rows       int
	ColumnsIn  int
	ColumnsOut int

	Migrations   []Migration
	Unreconciled []Unreconciled
}

// StageSummary aggregates the sheet results of one stage run
type StageSummary struct {
	Stage    string
	Input    string
	Output   string
	Started  time.Time
	Finished time.Time
	Results  []SheetResult
}

// NewStageSummary creates a summary for a stage about to start
func NewStageSummary(stage, input, output string) *StageSummary {
	return &StageSummary{
		Stage:   stage,
		Input:   input,
		Output:  output,
		Started: time.Now(),
		Results: make([]SheetResult, 0),
	}
}

// Add appends a sheet result
func (s *StageSummary) Add(r SheetResult) {
	s.Results = append(s.Results, r)
}

// Total returns the number of sheets seen by the stage
func (s *StageSummary) Total() int {
	return len(s.Results)
}

// Succeeded returns the number of sheets processed successfully
func (s *StageSummary) Succeeded() int {
	return s.count(StatusSuccess)
}

// Skipped returns the number of sheets skipped
func (s *StageSummary) Skipped() int {
	return s.count(StatusSkipped)
}

// Failed returns the number of sheets that failed
func (s *StageSummary) Failed() int {
	return s.count(StatusFailed)
}

// Duration returns how long the stage ran
func (s *StageSummary) Duration() time.Duration {
	if s.Finished.IsZero() {
		return 0
	}
	return s.Finished.Sub(s.Started)
}

func (s *StageSummary) count(status SheetStatus) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// RunSummary collects every stage executed in one invocation
type RunSummary struct {
	ID     string
	Date   string
	Stages []*StageSummary
}

// NewRunSummary creates an empty run summary
func NewRunSummary(id, date string) *RunSummary {
	return &RunSummary{
		ID:     id,
		Date:   date,
		Stages: make([]*StageSummary, 0),
	}
}

// TotalSheets returns the number of sheet results across all stages
func (r *RunSummary) TotalSheets() int {
	n := 0
	for _, s := range r.Stages {
		n += s.Total()
	}
	return n
}

// TotalFailed returns the number of failed sheets across all stages
func (r *RunSummary) TotalFailed() int {
	n := 0
	for _, s := range r.Stages {
		n += s.Failed()
	}
	return n
}

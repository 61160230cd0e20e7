// Package common holds the report data shared by every exporter.
package common

import "cell-recon/internal/model"

// ResultRow is one sheet result flattened for tabular output
type ResultRow struct {
	Stage        string
	Sheet        string
	Status       model.SheetStatus
	Reason       string
	Rows         int
	ColumnsIn    int
	ColumnsOut   int
	Moved        int
	Discarded    int
	Unreconciled int
}

// NeedsAttention reports whether the sheet failed, lost values or was
// dropped because of its content. Skips asked for by the configuration
// do not count.
func (r ResultRow) NeedsAttention() bool {
	switch r.Status {
	case model.StatusFailed:
		return true
	case model.StatusSkipped:
		return !model.IsPlannedSkip(r.Reason)
	}
	return r.Discarded > 0 || r.Unreconciled > 0
}

// FlattenRun returns one row per sheet result, in stage order
func FlattenRun(run *model.RunSummary) []ResultRow {
	var rows []ResultRow
	if run == nil {
		return rows
	}
	for _, s := range run.Stages {
		for _, res := range s.Results {
			rows = append(rows, flatten(s.Stage, res))
		}
	}
	return rows
}

func flatten(stage string, res model.SheetResult) ResultRow {
	row := ResultRow{
		Stage:      stage,
		Sheet:      res.Sheet,
		Status:     res.Status,
		Reason:     res.Reason,
		Rows:       res.Rows,
		ColumnsIn:  res.ColumnsIn,
		ColumnsOut: res.ColumnsOut,
	}
	for _, m := range res.Migrations {
		row.Moved += m.Moved
		row.Discarded += m.Discarded
	}
	for _, u := range res.Unreconciled {
		row.Unreconciled += u.Values
	}
	return row
}

// SplitRows separates rows that need a reviewer's attention from the ones
// that went through cleanly. Order inside each stream is kept.
func SplitRows(rows []ResultRow) (attention []ResultRow, clean []ResultRow) {
	for _, r := range rows {
		if r.NeedsAttention() {
			attention = append(attention, r)
		} else {
			clean = append(clean, r)
		}
	}
	return attention, clean
}

// Package reconcile repairs tables whose horizontally merged header cells
// left values under auto-generated "Unnamed" columns.
package reconcile

import (
	"cell-recon/internal/model"
)

// Report describes what Reconcile changed
type Report struct {
	Migrations   []model.Migration
	Unreconciled []*UnreconciledColumnError
	Removed      int // Number of synthetic columns removed
}

// Moved returns the total number of values migrated into target columns
func (r *Report) Moved() int {
	n := 0
	for _, m := range r.Migrations {
		n += m.Moved
	}
	return n
}

// Discarded returns the number of synthetic values lost because the target
// cell already held a value
func (r *Report) Discarded() int {
	n := 0
	for _, m := range r.Migrations {
		n += m.Discarded
	}
	return n
}

// Reconcile migrates the values of every synthetic column into the nearest
// non-synthetic column to its left, then removes all synthetic columns.
// The table is modified in place.
//
// A target cell is only filled when it is empty, so when several synthetic
// columns share a target the leftmost non-empty value wins for each row.
// Synthetic columns without a target are reported as
// UnreconciledColumnError and dropped.
func Reconcile(t *model.Table) *Report {
	report := &Report{}
	if t == nil || len(t.Columns) == 0 {
		return report
	}
	t.Pad()

	for i, col := range t.Columns {
		if !IsSynthetic(col.Name) {
			continue
		}

		target := findTarget(t.Columns, i)
		if target < 0 {
			report.Unreconciled = append(report.Unreconciled, &UnreconciledColumnError{
				Column:   col.Name,
				Position: col.Position,
				Values:   countValues(t.Rows, i),
			})
			continue
		}

		m := model.Migration{
			Column:         col.Name,
			Position:       col.Position,
			Target:         t.Columns[target].Name,
			TargetPosition: t.Columns[target].Position,
		}
		for _, row := range t.Rows {
			if model.IsEmpty(row[i]) {
				continue
			}
			if model.IsEmpty(row[target]) {
				row[target] = row[i]
				m.Moved++
			} else {
				m.Discarded++
			}
		}
		report.Migrations = append(report.Migrations, m)
	}

	report.Removed = dropSynthetic(t)
	return report
}

// findTarget searches strictly leftward from pos for the first
// non-synthetic column. It returns -1 when there is none.
func findTarget(cols []model.Column, pos int) int {
	for j := pos - 1; j >= 0; j-- {
		if !IsSynthetic(cols[j].Name) {
			return j
		}
	}
	return -1
}

func countValues(rows []model.Row, col int) int {
	n := 0
	for _, row := range rows {
		if !model.IsEmpty(row[col]) {
			n++
		}
	}
	return n
}

// dropSynthetic removes synthetic columns from the header metadata and from
// every row, keeping the surviving columns in their original order.
func dropSynthetic(t *model.Table) int {
	keep := make([]int, 0, len(t.Columns))
	for i, col := range t.Columns {
		if !IsSynthetic(col.Name) {
			keep = append(keep, i)
		}
	}
	removed := len(t.Columns) - len(keep)
	if removed == 0 {
		return 0
	}

	columns := make([]model.Column, len(keep))
	for k, i := range keep {
		columns[k] = t.Columns[i]
		columns[k].Synthetic = false
	}
	t.Columns = columns

	for r, row := range t.Rows {
		out := make(model.Row, len(keep))
		for k, i := range keep {
			out[k] = row[i]
		}
		t.Rows[r] = out
	}

	return removed
}

package reconcile

import "fmt"

// UnreconciledColumnError reports a synthetic column that has no
// non-synthetic column to its left. It is recoverable: the column is still
// removed and its values are lost.
type UnreconciledColumnError struct {
	Column   string
	Position int
	Values   int
}

func (e *UnreconciledColumnError) Error() string {
	return fmt.Sprintf("column %q at position %d has no target column to its left (%d values dropped)",
		e.Column, e.Position, e.Values)
}

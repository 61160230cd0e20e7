package workbook

import "errors"

var (
	// ErrMissingHeaders indicates a sheet with fewer than two rows, so the
	// two header rows cannot be read. Stages record it as a skip.
	ErrMissingHeaders = errors.New("sheet has fewer than two header rows")

	// ErrNoData indicates a sheet that has its header rows but no data rows.
	// Stages record it as a skip.
	ErrNoData = errors.New("sheet has no data rows")
)

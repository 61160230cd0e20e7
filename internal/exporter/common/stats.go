package common

import (
	"time"

	"cell-recon/internal/model"

	"github.com/montanaflynn/stats"
)

// StageStats is the per-stage overview shown at the top of every report
type StageStats struct {
	Stage     string
	Input     string
	Output    string
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
	Duration  time.Duration

	// Rows per successfully processed sheet
	RowsTotal  int
	RowsMean   float64
	RowsMedian float64
	RowsMax    float64
}

// ComputeStats summarizes a stage. Row statistics stay zero when no sheet
// succeeded.
func ComputeStats(s *model.StageSummary) StageStats {
	st := StageStats{
		Stage:     s.Stage,
		Input:     s.Input,
		Output:    s.Output,
		Total:     s.Total(),
		Succeeded: s.Succeeded(),
		Skipped:   s.Skipped(),
		Failed:    s.Failed(),
		Duration:  s.Duration(),
	}

	var data stats.Float64Data
	for _, r := range s.Results {
		if r.Status != model.StatusSuccess {
			continue
		}
		data = append(data, float64(r.Rows))
		st.RowsTotal += r.Rows
	}
	if data.Len() == 0 {
		return st
	}

	st.RowsMean, _ = stats.Round(must(data.Mean()), 2)
	st.RowsMedian = must(data.Median())
	st.RowsMax = must(data.Max())
	return st
}

// RunStats computes StageStats for every stage of a run
func RunStats(run *model.RunSummary) []StageStats {
	out := make([]StageStats, 0)
	if run == nil {
		return out
	}
	for _, s := range run.Stages {
		out = append(out, ComputeStats(s))
	}
	return out
}

// must drops the error of a stats call made on non-empty input
func must(v float64, _ error) float64 {
	return v
}

package common

import (
	"testing"

	"cell-recon/internal/model"
)

func sampleRun() *model.RunSummary {
	run := model.NewRunSummary("run-1", "2026-10-19")

	clean := model.NewStageSummary("clean", "in.xlsx", "out_clean.xlsx")
	clean.Add(model.SheetResult{
		Sheet: "Table 2", Status: model.StatusSuccess, Rows: 10, ColumnsIn: 5, ColumnsOut: 4,
		Migrations: []model.Migration{{Column: "Unnamed: 1", Target: "Name", Moved: 3, Discarded: 1}},
	})
	clean.Add(model.SheetResult{Sheet: "Table 3", Status: model.StatusSuccess, Rows: 4, ColumnsIn: 3, ColumnsOut: 3})
	clean.Add(model.SheetResult{Sheet: "Table 4", Status: model.StatusSuccess, Rows: 1,
		Unreconciled: []model.Unreconciled{{Column: "Unnamed: 0", Values: 2}}})
	clean.Add(model.SheetResult{Sheet: "Cover", Status: model.StatusSkipped, Reason: "missing header rows"})
	run.Stages = append(run.Stages, clean)

	merge := model.NewStageSummary("merge", "out_clean.xlsx", "out_final.xlsx")
	merge.Add(model.SheetResult{Sheet: "Table 2", Status: model.StatusFailed, Reason: "boom"})
	run.Stages = append(run.Stages, merge)

	return run
}

func TestFlattenRun(t *testing.T) {
	rows := FlattenRun(sampleRun())
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}

	first := rows[0]
	if first.Stage != "clean" || first.Sheet != "Table 2" || first.Moved != 3 || first.Discarded != 1 {
		t.Errorf("first row = %+v", first)
	}
	if rows[2].Unreconciled != 2 {
		t.Errorf("unreconciled values = %d, want 2", rows[2].Unreconciled)
	}
	if rows[4].Stage != "merge" || rows[4].Status != model.StatusFailed {
		t.Errorf("last row = %+v", rows[4])
	}

	if got := FlattenRun(nil); len(got) != 0 {
		t.Errorf("FlattenRun(nil) = %v", got)
	}
}

func TestSplitRows(t *testing.T) {
	attention, clean := SplitRows(FlattenRun(sampleRun()))

	if len(attention) != 4 || len(clean) != 1 {
		t.Fatalf("attention=%d clean=%d, want 4/1", len(attention), len(clean))
	}
	if clean[0].Sheet != "Table 3" {
		t.Errorf("clean row = %+v", clean[0])
	}
	wantOrder := []string{"Table 2", "Table 4", "Cover", "Table 2"}
	for i, want := range wantOrder {
		if attention[i].Sheet != want {
			t.Errorf("attention[%d] = %s, want %s", i, attention[i].Sheet, want)
		}
	}
}

func TestNeedsAttention(t *testing.T) {
	tests := []struct {
		name string
		row  ResultRow
		want bool
	}{
		{"clean success", ResultRow{Status: model.StatusSuccess}, false},
		{"discarded values", ResultRow{Status: model.StatusSuccess, Discarded: 1}, true},
		{"unreconciled values", ResultRow{Status: model.StatusSuccess, Unreconciled: 2}, true},
		{"failed", ResultRow{Status: model.StatusFailed, Reason: "boom"}, true},
		{"template skip", ResultRow{Status: model.StatusSkipped, Reason: model.ReasonTemplate}, false},
		{"excluded skip", ResultRow{Status: model.StatusSkipped, Reason: model.ReasonExcluded}, false},
		{"missing headers", ResultRow{Status: model.StatusSkipped, Reason: model.ReasonNoHeaders}, true},
		{"no data", ResultRow{Status: model.StatusSkipped, Reason: model.ReasonNoData}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.NeedsAttention(); got != tt.want {
				t.Errorf("NeedsAttention() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeStats(t *testing.T) {
	run := sampleRun()
	st := ComputeStats(run.Stages[0])

	if st.Total != 4 || st.Succeeded != 3 || st.Skipped != 1 || st.Failed != 0 {
		t.Errorf("counts = %+v", st)
	}
	if st.RowsTotal != 15 {
		t.Errorf("RowsTotal = %d, want 15", st.RowsTotal)
	}
	if st.RowsMean != 5 {
		t.Errorf("RowsMean = %v, want 5", st.RowsMean)
	}
	if st.RowsMedian != 4 {
		t.Errorf("RowsMedian = %v, want 4", st.RowsMedian)
	}
	if st.RowsMax != 10 {
		t.Errorf("RowsMax = %v, want 10", st.RowsMax)
	}

	empty := ComputeStats(run.Stages[1])
	if empty.RowsMean != 0 || empty.RowsMax != 0 || empty.Failed != 1 {
		t.Errorf("stats without successes = %+v", empty)
	}
}

func TestRunStats(t *testing.T) {
	got := RunStats(sampleRun())
	if len(got) != 2 || got[0].Stage != "clean" || got[1].Stage != "merge" {
		t.Errorf("RunStats = %+v", got)
	}
	if len(RunStats(nil)) != 0 {
		t.Error("RunStats(nil) should be empty")
	}
}

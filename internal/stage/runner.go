package stage

import (
	"fmt"
	"strings"
	"time"

	"cell-recon/internal/config"
	"cell-recon/internal/logger"
	"cell-recon/internal/model"

	"github.com/google/uuid"
)

// Order is the sequence used when all stages run
var Order = []string{Clean, Headers, Merge}

// outputSuffix names the workbook each stage writes
var outputSuffix = map[string]string{
	Clean:   "clean",
	Headers: "headers",
	Merge:   "final",
}

// ParseStages turns a comma-separated stage list into stage names.
// "all" expands to Order. Duplicates are dropped, order is kept.
func ParseStages(list string) ([]string, error) {
	var stages []string
	seen := make(map[string]bool)

	for _, name := range strings.Split(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		expanded := []string{name}
		if name == All {
			expanded = Order
		} else if _, err := Lookup(name); err != nil {
			return nil, err
		}

		for _, s := range expanded {
			if !seen[s] {
				seen[s] = true
				stages = append(stages, s)
			}
		}
	}

	if len(stages) == 0 {
		return nil, fmt.Errorf("%w: empty stage list", ErrUnknownStage)
	}
	return stages, nil
}

// Runner sequences stages, feeding each stage's output into the next
type Runner struct {
	cfg      *config.Config
	trackers func(stage string) Tracker
}

// NewRunner creates a Runner. trackers may be nil.
func NewRunner(cfg *config.Config, trackers func(stage string) Tracker) *Runner {
	return &Runner{cfg: cfg, trackers: trackers}
}

// Run executes the stages in order starting from the configured input.
// A stage that cannot open its input or save its output stops the run; the
// summary collected so far is returned with the error.
func (r *Runner) Run(stages []string) (*model.RunSummary, error) {
	run := model.NewRunSummary(uuid.NewString(), time.Now().Format("2006-01-02"))
	input := r.cfg.Input.Path

	for _, name := range stages {
		fn, err := Lookup(name)
		if err != nil {
			return run, err
		}

		opts := OptionsFromConfig(r.cfg)
		if r.trackers != nil {
			if t := r.trackers(name); t != nil {
				opts.Tracker = t
			}
		}

		output := r.cfg.StageOutputPath(outputSuffix[name])
		logger.Info("Stage %s: %s -> %s", name, input, output)

		summary, err := fn(input, output, opts)
		if summary != nil {
			run.Stages = append(run.Stages, summary)
		}
		if err != nil {
			return run, fmt.Errorf("stage %s failed: %w", name, err)
		}

		input = output
	}

	return run, nil
}

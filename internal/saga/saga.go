// Package saga runs a workflow as an ordered list of steps against stores that
// cannot share a transaction.
//
// The runner halts on the first failing step and then undoes, newest first,
// the completed steps that declared a compensation. A step marked Pivot
// commits everything before it: once a pivot completes, later failures leave
// the earlier steps in place. Steps marked BestEffort never halt the run;
// their failures are recorded in the Outcome and logged.
package saga

import (
	"context"

	"github.com/rs/zerolog"
)

// Step is one unit of work in a workflow.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
	// Compensate undoes Run. Nil when there is nothing to undo.
	Compensate func(ctx context.Context) error
	BestEffort bool
	Pivot      bool
}

// StepFailure pairs a step with the error it returned.
type StepFailure struct {
	Step string
	Err  error
}

// Outcome describes how far a run got.
type Outcome struct {
	Completed            []string
	Failed               string
	Err                  error
	Tolerated            []StepFailure
	Compensated          []string
	CompensationFailures []StepFailure
}

// OK reports whether every non best-effort step completed.
func (o Outcome) OK() bool { return o.Err == nil }

// Runner executes steps sequentially.
type Runner struct {
	logger zerolog.Logger
}

func NewRunner(logger zerolog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes steps in order. The returned Outcome's Err is the error of the
// step that halted the run, unchanged, so callers can classify it.
func (r *Runner) Run(ctx context.Context, steps ...Step) Outcome {
	var out Outcome
	var pending []Step

	for _, step := range steps {
		err := step.Run(ctx)
		if err != nil && step.BestEffort {
			r.logger.Warn().Str("step", step.Name).Err(err).Msg("saga: best-effort step failed, continuing")
			out.Tolerated = append(out.Tolerated, StepFailure{Step: step.Name, Err: err})
			continue
		}
		if err != nil {
			r.logger.Error().Str("step", step.Name).Err(err).Msg("saga: step failed")
			out.Failed = step.Name
			out.Err = err
			r.compensate(ctx, pending, &out)
			return out
		}

		out.Completed = append(out.Completed, step.Name)
		if step.Pivot {
			pending = nil
			continue
		}
		if step.Compensate != nil {
			pending = append(pending, step)
		}
	}
	return out
}

func (r *Runner) compensate(ctx context.Context, pending []Step, out *Outcome) {
	// Compensations must still reach the stores when the caller went away.
	ctx = context.WithoutCancel(ctx)

	for i := len(pending) - 1; i >= 0; i-- {
		step := pending[i]
		if err := step.Compensate(ctx); err != nil {
			r.logger.Error().Str("step", step.Name).Err(err).Msg("saga: compensation failed")
			out.CompensationFailures = append(out.CompensationFailures, StepFailure{Step: step.Name, Err: err})
			continue
		}
		r.logger.Info().Str("step", step.Name).Msg("saga: step compensated")
		out.Compensated = append(out.Compensated, step.Name)
	}
}

package bootstrap

import (
	"context"
	"time"

	"pybootstrap/internal/logging"
)

// Step is one unit of the bootstrap sequence.
type Step interface {
	Name() string
	Run(ctx context.Context) error
}

// Stage pairs a step with the state the machine reaches when it succeeds.
type Stage struct {
	Step    Step
	Reaches State
}

// Result is the outcome of a pipeline run.
type Result struct {
	// State is Failed when Err is set, otherwise the state reached by the
	// last stage.
	State State
	Err   error
	// FailedStep names the step that returned Err.
	FailedStep string
	// Completed lists the steps that succeeded, in order.
	Completed []string
}

// OK reports whether every stage succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Pipeline runs stages in order and stops at the first failure.
// There is no rollback: side effects of completed steps are kept.
type Pipeline struct {
	stages  []Stage
	logger  *logging.AppLogger
	onStart func(step string)
}

// NewPipeline returns a pipeline over the given stages.
func NewPipeline(logger *logging.AppLogger, stages ...Stage) *Pipeline {
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &Pipeline{stages: stages, logger: logger}
}

// OnStepStart registers a callback invoked before each step runs.
func (p *Pipeline) OnStepStart(fn func(step string)) {
	p.onStart = fn
}

// Run executes the stages sequentially.
func (p *Pipeline) Run(ctx context.Context) Result {
	state := StateStart
	res := Result{State: state}

	for _, stage := range p.stages {
		name := stage.Step.Name()
		if p.onStart != nil {
			p.onStart(name)
		}

		start := time.Now()
		err := stage.Step.Run(ctx)
		p.logger.LogPerformance(name, start)

		if err != nil {
			p.logger.LogStateTransition("bootstrap", state.String(), StateFailed.String())
			p.logger.Info("Step failed", "step", name, "error", err)
			res.State = StateFailed
			res.Err = err
			res.FailedStep = name
			return res
		}

		p.logger.LogStateTransition("bootstrap", state.String(), stage.Reaches.String())
		p.logger.Info("Step completed", "step", name)
		state = stage.Reaches
		res.State = state
		res.Completed = append(res.Completed, name)
	}

	return res
}

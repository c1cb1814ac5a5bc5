package pipeline

import (
	"context"
	"errors"
)

// ErrNoAction is returned for a step built without an Action.
var ErrNoAction = errors.New("pipeline: step has no action")

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver registers observers notified of every step event.
func WithObserver(observers ...Observer) Option {
	return func(p *Pipeline) {
		for _, o := range observers {
			if o != nil {
				p.observers = append(p.observers, o)
			}
		}
	}
}

// Pipeline owns an ordered sequence of steps.
type Pipeline struct {
	steps     []Step
	observers []Observer
}

// New constructs a pipeline over a copy of steps.
func New(steps []Step, options ...Option) *Pipeline {
	p := &Pipeline{steps: append([]Step(nil), steps...)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Labels returns the step labels in run order.
func (p *Pipeline) Labels() []string {
	labels := make([]string, len(p.steps))
	for i, s := range p.steps {
		labels[i] = s.Label
	}
	return labels
}

// Run executes every step in order. On the first fail-fast failure it stops
// and returns that step's error unchanged alongside the outcome. A cancelled
// context stops the run before the next step starts; the resulting Failure
// has an empty Label since no step emitted events for it.
func (p *Pipeline) Run(ctx context.Context) (Outcome, error) {
	outcome := Outcome{Completed: make([]string, 0, len(p.steps))}

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			// No step failed; the run stopped between steps.
			outcome.Failure = &StepFailure{Cause: err}
			return outcome, err
		}

		p.emit(Event{Kind: StepStarted, Label: step.Label, StepKind: step.Kind})

		err := ErrNoAction
		if step.Action != nil {
			err = step.Action(ctx)
		}

		if err == nil {
			outcome.Completed = append(outcome.Completed, step.Label)
			p.emit(Event{Kind: StepSucceeded, Label: step.Label, StepKind: step.Kind})
			continue
		}

		p.emit(Event{Kind: StepFailed, Label: step.Label, StepKind: step.Kind, Err: err})
		failure := StepFailure{Label: step.Label, Cause: err}
		if step.Kind == BestEffort {
			outcome.Suppressed = append(outcome.Suppressed, failure)
			continue
		}
		outcome.Failure = &failure
		return outcome, err
	}

	return outcome, nil
}

func (p *Pipeline) emit(ev Event) {
	for _, o := range p.observers {
		o.Observe(ev)
	}
}

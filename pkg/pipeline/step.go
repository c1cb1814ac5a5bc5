package pipeline

import (
	"context"
	"fmt"
)

// Kind tags how a step's failure affects the pipeline.
type Kind int

const (
	// FailFast steps abort the pipeline on failure.
	FailFast Kind = iota
	// BestEffort steps have their failure recorded and ignored.
	BestEffort
)

func (k Kind) String() string {
	switch k {
	case FailFast:
		return "fail-fast"
	case BestEffort:
		return "best-effort"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Action performs the work of a step.
type Action func(ctx context.Context) error

// Step is one labelled unit of work. Steps hold no state of their own.
type Step struct {
	Label  string
	Kind   Kind
	Action Action
}

// NewStep returns a fail-fast step.
func NewStep(label string, action Action) Step {
	return Step{Label: label, Kind: FailFast, Action: action}
}

// NewBestEffortStep returns a step whose failure never aborts the pipeline.
func NewBestEffortStep(label string, action Action) Step {
	return Step{Label: label, Kind: BestEffort, Action: action}
}

// StepFailure pairs a step label with the error it returned.
type StepFailure struct {
	Label string
	Cause error
}

func (f StepFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Label, f.Cause)
}

// Outcome summarises a pipeline run. Each Run returns a fresh value.
type Outcome struct {
	// Completed lists the labels of steps that succeeded, in run order.
	Completed []string
	// Failure is set when a fail-fast step failed, or with an empty Label
	// when the context was cancelled between steps.
	Failure *StepFailure
	// Suppressed lists best-effort failures that were ignored.
	Suppressed []StepFailure
}

// Succeeded reports whether no fail-fast step failed.
func (o Outcome) Succeeded() bool {
	return o.Failure == nil
}

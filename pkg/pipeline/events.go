package pipeline

import (
	"go.uber.org/zap"
)

// EventKind identifies a step lifecycle transition.
type EventKind int

const (
	// StepStarted fires before a step's action runs.
	StepStarted EventKind = iota
	// StepSucceeded fires after an action returns nil.
	StepSucceeded
	// StepFailed fires after an action returns an error.
	StepFailed
)

func (k EventKind) String() string {
	switch k {
	case StepStarted:
		return "started"
	case StepSucceeded:
		return "succeeded"
	case StepFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event reports progress of a single step.
type Event struct {
	Kind     EventKind
	Label    string
	StepKind Kind
	// Err is set for StepFailed.
	Err error
}

// Observer receives step events synchronously, in order.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe implements Observer.
func (f ObserverFunc) Observe(ev Event) {
	f(ev)
}

// LogObserver writes every event to logger.
func LogObserver(logger *zap.Logger) Observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return ObserverFunc(func(ev Event) {
		fields := []zap.Field{
			zap.String("step", ev.Label),
			zap.Stringer("kind", ev.StepKind),
		}
		switch ev.Kind {
		case StepStarted:
			logger.Info("step started", fields...)
		case StepSucceeded:
			logger.Info("step succeeded", fields...)
		case StepFailed:
			fields = append(fields, zap.Error(ev.Err))
			if ev.StepKind == BestEffort {
				logger.Warn("best-effort step failed", fields...)
				return
			}
			logger.Error("step failed", fields...)
		}
	})
}

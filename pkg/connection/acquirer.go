package connection

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-genai-starter/pkg/params"
	"github.com/goliatone/go-genai-starter/pkg/prompt"
)

const (
	// MsgConnected is shown after a passing check.
	MsgConnected = "Successfully connected to Astra DB!"
	// MsgRetry is shown after a failing check, before collecting again.
	MsgRetry = "Failed to connect :( Let's start over..."
)

// Collector asks the user for connection parameters.
type Collector func(ctx context.Context) (params.ConnectionParameters, error)

// Checker verifies connection parameters against the remote service.
type Checker interface {
	Check(ctx context.Context, conn params.ConnectionParameters) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, conn params.ConnectionParameters) error

// Check implements Checker.
func (f CheckerFunc) Check(ctx context.Context, conn params.ConnectionParameters) error {
	return f(ctx, conn)
}

// Notifier tells the user about check results.
type Notifier func(ctx context.Context, msg string)

// Option configures an Acquirer.
type Option func(*Acquirer)

// WithNotifier sets the function used to report check results.
func WithNotifier(n Notifier) Option {
	return func(a *Acquirer) {
		if n != nil {
			a.notify = n
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Acquirer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithObserver registers a callback invoked on every state transition.
func WithObserver(fn func(from, to State)) Option {
	return func(a *Acquirer) {
		a.observe = fn
	}
}

// Acquirer runs the collect/verify loop.
type Acquirer struct {
	collect Collector
	checker Checker
	notify  Notifier
	observe func(from, to State)
	logger  *zap.Logger
}

// NewAcquirer wires the loop to its collector and checker.
func NewAcquirer(collect Collector, checker Checker, options ...Option) (*Acquirer, error) {
	if collect == nil {
		return nil, fmt.Errorf("connection: collector is required")
	}
	if checker == nil {
		return nil, fmt.Errorf("connection: checker is required")
	}
	a := &Acquirer{
		collect: collect,
		checker: checker,
		notify:  func(context.Context, string) {},
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a, nil
}

// Result is the outcome of a successful acquisition.
type Result struct {
	Params params.ConnectionParameters
	// Attempts counts full collect-and-verify cycles, the successful one
	// included.
	Attempts int
}

// Acquire loops until a check passes or the user aborts. Parameters from a
// failed attempt are discarded; the next attempt starts with empty prompts.
func (a *Acquirer) Acquire(ctx context.Context) (Result, error) {
	var (
		state    = Collecting
		pending  params.ConnectionParameters
		attempts int
		lastErr  error
	)

	transition := func(ev Event) {
		next := Next(state, ev)
		a.logger.Debug("connection state transition",
			zap.Stringer("from", state),
			zap.Stringer("to", next),
			zap.Int("attempt", attempts),
		)
		if a.observe != nil {
			a.observe(state, next)
		}
		state = next
	}

	for !state.Terminal() {
		switch state {
		case Collecting:
			conn, err := a.collect(ctx)
			switch {
			case err == nil:
				pending = conn
				attempts++
				transition(Collected)
			case prompt.IsAborted(err):
				lastErr = err
				transition(Aborted)
			default:
				lastErr = err
				transition(CollectFailed)
			}

		case Verifying:
			err := a.checker.Check(ctx, pending)
			switch {
			case err == nil:
				a.notify(ctx, MsgConnected)
				transition(CheckPassed)
			case ctx.Err() != nil:
				lastErr = prompt.ErrAborted
				transition(Aborted)
			default:
				a.logger.Info("connection attempt failed", zap.Int("attempt", attempts), zap.Error(err))
				a.notify(ctx, MsgRetry)
				pending = params.ConnectionParameters{}
				transition(CheckFailed)
			}
		}
	}

	if state != Connected {
		return Result{}, lastErr
	}
	return Result{Params: pending, Attempts: attempts}, nil
}

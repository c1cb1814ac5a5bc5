package astra

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-genai-starter/pkg/params"
)

// ErrConnectionFailed is the only error Check reports. Why the round trip
// failed is logged, not returned.
var ErrConnectionFailed = errors.New("astra: connection failed")

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithTimeout bounds each check. Zero disables the bound.
func WithTimeout(d time.Duration) CheckerOption {
	return func(c *Checker) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

// WithLogger attaches a logger for failure diagnostics.
func WithLogger(logger *zap.Logger) CheckerOption {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Checker performs one list-collections round trip per call.
type Checker struct {
	sessions SessionFactory
	timeout  time.Duration
	logger   *zap.Logger
}

// NewChecker wires a checker to a session factory. A nil factory falls back
// to NewClient().
func NewChecker(sessions SessionFactory, options ...CheckerOption) *Checker {
	if sessions == nil {
		sessions = NewClient()
	}
	c := &Checker{
		sessions: sessions,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Check returns nil when the database answered, ErrConnectionFailed otherwise.
// The session it opens is closed before Check returns.
func (c *Checker) Check(ctx context.Context, conn params.ConnectionParameters) error {
	session, err := c.sessions.Open(conn.Endpoint, conn.Token)
	if err != nil {
		c.logger.Debug("open session failed", zap.String("endpoint", conn.Endpoint), zap.Error(err))
		return ErrConnectionFailed
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			c.logger.Debug("close session failed", zap.Error(cerr))
		}
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	collections, err := session.ListCollections(ctx)
	if err != nil {
		c.logger.Info("connectivity check failed", zap.String("endpoint", conn.Endpoint), zap.Error(err))
		return ErrConnectionFailed
	}
	c.logger.Info("connectivity check passed",
		zap.String("endpoint", conn.Endpoint),
		zap.Int("collections", len(collections)),
	)
	return nil
}

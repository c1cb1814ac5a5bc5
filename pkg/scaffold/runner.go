package scaffold

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Command describes one subprocess invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
}

// String renders the command line for logs and messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes commands. A non-nil error means the command could not be
// started or exited non-zero.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, cmd Command) error

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, cmd Command) error {
	return f(ctx, cmd)
}

// ExecRunner spawns real processes. Output is captured rather than shown and
// only surfaces in logs.
type ExecRunner struct {
	logger *zap.Logger
	env    []string
}

// ExecOption configures an ExecRunner.
type ExecOption func(*ExecRunner)

// WithRunnerLogger attaches a logger that receives command output.
func WithRunnerLogger(logger *zap.Logger) ExecOption {
	return func(r *ExecRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithEnv appends KEY=value pairs to the inherited environment.
func WithEnv(env ...string) ExecOption {
	return func(r *ExecRunner) {
		r.env = append(r.env, env...)
	}
}

// NewExecRunner returns a runner for real subprocesses.
func NewExecRunner(options ...ExecOption) *ExecRunner {
	r := &ExecRunner{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Run starts cmd and waits for it. The process is killed when ctx is done.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	if strings.TrimSpace(cmd.Name) == "" {
		return fmt.Errorf("scaffold: command name is required")
	}
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	// Keep git and package managers from blocking on credential prompts.
	c.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	c.Env = append(c.Env, r.env...)

	var output bytes.Buffer
	c.Stdout = &output
	c.Stderr = &output

	r.logger.Debug("running command", zap.String("command", cmd.String()), zap.String("dir", cmd.Dir))
	if err := c.Run(); err != nil {
		r.logger.Warn("command failed",
			zap.String("command", cmd.String()),
			zap.Error(err),
			zap.String("output", tail(output.String(), 4096)),
		)
		return fmt.Errorf("%q failed: %w", cmd.String(), err)
	}
	return nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"
)

// InputConfig configures a basic text input prompt.
type InputConfig struct {
	Message     string
	Default     string
	Help        string
	Placeholder string
}

// ConfirmConfig configures a yes/no style prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single-select prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
}

// Driver abstracts the actual terminal implementation so prompt logic can be
// tested without a real terminal.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Info(ctx context.Context, msg string) error
	WaitForKey(ctx context.Context, msg string) error
}

// SurveyDriver renders prompts with survey on the process terminal.
type SurveyDriver struct {
	in  *os.File
	out io.Writer
}

// DriverOption configures a SurveyDriver.
type DriverOption func(*SurveyDriver)

// WithIO replaces the streams used by Info and WaitForKey. Survey prompts
// keep using the process terminal.
func WithIO(in *os.File, out io.Writer) DriverOption {
	return func(d *SurveyDriver) {
		if in != nil {
			d.in = in
		}
		if out != nil {
			d.out = out
		}
	}
}

// NewSurveyDriver returns a driver bound to stdin/stdout.
func NewSurveyDriver(options ...DriverOption) *SurveyDriver {
	d := &SurveyDriver{in: os.Stdin, out: os.Stdout}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

func (d *SurveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", translateErr(err)
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    helpText(cfg),
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateErr(err)
	}
	return out, nil
}

func (d *SurveyDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", translateErr(err)
	}
	var out string
	prompt := &survey.Password{
		Message: cfg.Message,
		Help:    helpText(cfg),
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateErr(err)
	}
	return out, nil
}

func (d *SurveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, translateErr(err)
	}
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateErr(err)
	}
	return out, nil
}

func (d *SurveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, translateErr(err)
	}
	var out string
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateErr(err)
	}
	return indexOf(cfg.Options, out), nil
}

func (d *SurveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return translateErr(err)
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// WaitForKey prints msg and blocks until a single key is pressed. Ctrl+C
// while waiting is reported as ErrAborted. Without a terminal it waits for a
// full line instead.
func (d *SurveyDriver) WaitForKey(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return translateErr(err)
	}
	if _, err := fmt.Fprintln(d.out, msg); err != nil {
		return err
	}

	fd := int(d.in.Fd())
	if !term.IsTerminal(fd) {
		return readLine(d.in)
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("prompt: enter raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	buf := make([]byte, 1)
	if _, err := d.in.Read(buf); err != nil {
		return translateErr(err)
	}
	if buf[0] == 3 { // Ctrl+C
		return ErrAborted
	}
	return nil
}

// readLine consumes r up to and including the next newline. It reads one byte
// at a time so input queued for later prompts stays unread.
func readLine(r io.Reader) error {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 && buf[0] == '\n' {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func helpText(cfg InputConfig) string {
	if cfg.Help != "" {
		return cfg.Help
	}
	if cfg.Placeholder != "" {
		return "e.g. " + cfg.Placeholder
	}
	return ""
}

func translateErr(err error) error {
	switch {
	case errors.Is(err, terminal.InterruptErr),
		errors.Is(err, io.EOF),
		errors.Is(err, context.Canceled):
		return ErrAborted
	default:
		return err
	}
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

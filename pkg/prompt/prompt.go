package prompt

import (
	"context"
	"fmt"
)

// ValidateFunc inspects raw input and returns an error message, or "" when
// the input is acceptable.
type ValidateFunc func(raw string) string

// Question is a single prompt that produces one answer.
type Question interface {
	Ask(ctx context.Context, d Driver) (any, error)
}

// Text asks for free-form input and re-asks until Validate accepts it.
type Text struct {
	Message     string
	Placeholder string
	Default     string
	// Secret masks the input.
	Secret   bool
	Validate ValidateFunc
}

// Ask implements Question.
func (t Text) Ask(ctx context.Context, d Driver) (any, error) {
	return t.AskString(ctx, d)
}

// AskString runs the prompt until the answer validates or the user aborts.
// Validation failures are reported through d.Info and never returned.
func (t Text) AskString(ctx context.Context, d Driver) (string, error) {
	cfg := InputConfig{
		Message:     t.Message,
		Default:     t.Default,
		Placeholder: t.Placeholder,
	}
	for {
		var (
			response string
			err      error
		)
		if t.Secret {
			response, err = d.Password(ctx, cfg)
		} else {
			response, err = d.Input(ctx, cfg)
		}
		if err != nil {
			return "", err
		}
		if response == "" {
			response = t.Default
		}

		if t.Validate != nil {
			if msg := t.Validate(response); msg != "" {
				if err := d.Info(ctx, msg); err != nil {
					return "", err
				}
				continue
			}
		}
		return response, nil
	}
}

// Option is one choice offered by Select.
type Option struct {
	Value string
	Label string
}

// Select asks the user to pick one of Options and answers with its Value.
type Select struct {
	Message string
	Options []Option
	Initial string
}

// Ask implements Question.
func (s Select) Ask(ctx context.Context, d Driver) (any, error) {
	return s.AskString(ctx, d)
}

// AskString returns the Value of the chosen option.
func (s Select) AskString(ctx context.Context, d Driver) (string, error) {
	if len(s.Options) == 0 {
		return "", fmt.Errorf("prompt: select %q has no options", s.Message)
	}
	labels := make([]string, len(s.Options))
	defaultIdx := 0
	for i, opt := range s.Options {
		labels[i] = opt.Label
		if labels[i] == "" {
			labels[i] = opt.Value
		}
		if opt.Value == s.Initial {
			defaultIdx = i
		}
	}

	for {
		idx, err := d.Select(ctx, SelectConfig{
			Message:      s.Message,
			Options:      labels,
			DefaultIndex: defaultIdx,
		})
		if err != nil {
			return "", err
		}
		if idx >= 0 && idx < len(s.Options) {
			return s.Options[idx].Value, nil
		}
		if err := d.Info(ctx, "Please pick one of the listed options"); err != nil {
			return "", err
		}
	}
}

// Confirm asks a yes/no question.
type Confirm struct {
	Message string
	Initial bool
}

// Ask implements Question.
func (c Confirm) Ask(ctx context.Context, d Driver) (any, error) {
	return c.AskBool(ctx, d)
}

// AskBool returns the user's choice.
func (c Confirm) AskBool(ctx context.Context, d Driver) (bool, error) {
	return d.Confirm(ctx, ConfirmConfig{
		Message: c.Message,
		Default: c.Initial,
	})
}

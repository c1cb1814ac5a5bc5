package testsupport

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-genai-starter/pkg/prompt"
)

// ScriptedDriver replays canned answers in order. Each queue fails with an
// error once exhausted so tests notice unexpected prompts.
type ScriptedDriver struct {
	Inputs    []string
	Passwords []string
	Selects   []int
	Confirms  []bool

	// AbortOn makes any prompt whose message contains the substring return
	// prompt.ErrAborted.
	AbortOn string
	// KeyErr is returned from WaitForKey when set.
	KeyErr error

	// Asked records every prompt message in order.
	Asked []string
	// Infos records every message passed to Info.
	Infos []string
	// Waits counts WaitForKey calls.
	Waits int

	inputPos, passPos, selectPos, confirmPos int
}

var _ prompt.Driver = (*ScriptedDriver)(nil)

func (s *ScriptedDriver) ask(msg string) error {
	s.Asked = append(s.Asked, msg)
	if s.AbortOn != "" && strings.Contains(msg, s.AbortOn) {
		return prompt.ErrAborted
	}
	return nil
}

func (s *ScriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if err := s.ask(cfg.Message); err != nil {
		return "", err
	}
	if s.inputPos >= len(s.Inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.Inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *ScriptedDriver) Password(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if err := s.ask(cfg.Message); err != nil {
		return "", err
	}
	if s.passPos >= len(s.Passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.Passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *ScriptedDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	if err := s.ask(cfg.Message); err != nil {
		return false, err
	}
	if s.confirmPos >= len(s.Confirms) {
		return false, errors.New("no confirm scripted")
	}
	val := s.Confirms[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *ScriptedDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	if err := s.ask(cfg.Message); err != nil {
		return -1, err
	}
	if s.selectPos >= len(s.Selects) {
		return -1, errors.New("no select scripted")
	}
	val := s.Selects[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *ScriptedDriver) Info(_ context.Context, msg string) error {
	s.Infos = append(s.Infos, msg)
	return nil
}

func (s *ScriptedDriver) WaitForKey(_ context.Context, msg string) error {
	s.Waits++
	s.Infos = append(s.Infos, msg)
	return s.KeyErr
}

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/goliatone/go-genai-starter/internal/console"
)

func init() {
	color.NoColor = true
}

func TestExecute_InvalidConfigAborts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("defaults:\n  language: rust\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), []string{"--config", path}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "defaults.language") {
		t.Fatalf("expected config error on stderr, got %q", stderr.String())
	}
	if stdout.String() != "Aborting...\n" {
		t.Fatalf("expected only the abort message, got %q", stdout.String())
	}
}

func TestExecute_LoggingFailureShowsOnlyAbort(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), []string{"--log-file", filepath.Join(blocker, "sub", "run.log")}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stdout.String() != "Aborting...\n" || stderr.Len() != 0 {
		t.Fatalf("unexpected terminal output stdout=%q stderr=%q", stdout.String(), stderr.String())
	}
}

func TestExecuteWith_StepFailureShowsOnlyAbort(t *testing.T) {
	cause := errors.New(`"npx create-next-app@latest demo-app" failed: exit status 1`)
	fn := func(context.Context, *options, *console.Console) error { return cause }

	var stdout, stderr bytes.Buffer
	code := executeWith(context.Background(), nil, &stdout, &stderr, fn)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stdout.String() != "Aborting...\n" || stderr.Len() != 0 {
		t.Fatalf("unexpected terminal output stdout=%q stderr=%q", stdout.String(), stderr.String())
	}
}

func TestExecuteWith_PassesFlags(t *testing.T) {
	var got options
	fn := func(_ context.Context, opts *options, _ *console.Console) error {
		got = *opts
		return nil
	}

	var stdout, stderr bytes.Buffer
	code := executeWith(context.Background(), []string{"--dir", "/work", "-v"}, &stdout, &stderr, fn)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if got.workDir != "/work" || !got.verbose {
		t.Fatalf("flags not applied: %+v", got)
	}
	if stdout.Len() != 0 {
		t.Fatalf("no output expected on success, got %q", stdout.String())
	}
}

func TestExecute_RejectsPositionalArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := execute(context.Background(), []string{"extra"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand(nil, run)
	for _, name := range []string{"config", "dir", "verbose", "log-file"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("missing flag %q", name)
		}
	}
	if got := cmd.Flags().Lookup("dir").DefValue; got != "." {
		t.Fatalf("expected dir default '.', got %q", got)
	}
}

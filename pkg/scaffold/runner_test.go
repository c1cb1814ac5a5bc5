package scaffold_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-genai-starter/pkg/scaffold"
)

func TestExecRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	runner := scaffold.NewExecRunner()
	ctx := context.Background()

	if err := runner.Run(ctx, scaffold.Command{Name: "sh", Args: []string{"-c", "exit 0"}}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if err := runner.Run(ctx, scaffold.Command{Name: "sh", Args: []string{"-c", "echo oops >&2; exit 3"}}); err == nil {
		t.Fatalf("expected non-zero exit to fail")
	}
	if err := runner.Run(ctx, scaffold.Command{Name: "definitely-not-a-real-binary-xyz"}); err == nil {
		t.Fatalf("expected missing binary to fail")
	}
	if err := runner.Run(ctx, scaffold.Command{}); err == nil {
		t.Fatalf("expected empty command to fail")
	}
}

func TestExecRunner_Dir(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	dir := t.TempDir()
	runner := scaffold.NewExecRunner(scaffold.WithEnv("MARKER=1"))
	cmd := scaffold.Command{Name: "sh", Args: []string{"-c", `test "$MARKER" = 1 && touch created`}, Dir: dir}
	if err := runner.Run(context.Background(), cmd); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "created")); err != nil {
		t.Fatalf("expected file to be created in %s", dir)
	}
}

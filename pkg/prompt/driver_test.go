package prompt_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/goliatone/go-genai-starter/pkg/prompt"
)

func TestSurveyDriver_WaitForKeyLeavesLaterInput(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	if _, err := w.WriteString("\ndemo-app\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	w.Close()

	var out bytes.Buffer
	d := prompt.NewSurveyDriver(prompt.WithIO(r, &out))
	if err := d.WaitForKey(context.Background(), "Press any key when ready"); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if out.String() != "Press any key when ready\n" {
		t.Fatalf("unexpected prompt output %q", out.String())
	}

	rest, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read rest: %v", err)
	}
	if string(rest) != "demo-app\n" {
		t.Fatalf("later input was consumed, left %q", rest)
	}
}

func TestSurveyDriver_WaitForKeyAcceptsEOF(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	w.Close()

	d := prompt.NewSurveyDriver(prompt.WithIO(r, io.Discard))
	if err := d.WaitForKey(context.Background(), "ready?"); err != nil {
		t.Fatalf("EOF should release the gate, got %v", err)
	}
}

func TestSurveyDriver_WaitForKeyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := prompt.NewSurveyDriver(prompt.WithIO(nil, io.Discard))
	if err := d.WaitForKey(ctx, "ready?"); !prompt.IsAborted(err) {
		t.Fatalf("expected abort, got %v", err)
	}
}

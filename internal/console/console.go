// Package console prints the wizard's framing, notes and step progress.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/goliatone/go-genai-starter/pkg/pipeline"
)

// Console writes to a terminal-like writer.
type Console struct {
	out io.Writer

	accent func(a ...any) string
	dim    func(a ...any) string
	ok     func(a ...any) string
	warn   func(a ...any) string
	fail   func(a ...any) string
}

// New returns a Console writing to out, or stdout when out is nil.
func New(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{
		out:    out,
		accent: color.New(color.FgCyan, color.Bold).SprintFunc(),
		dim:    color.New(color.Faint).SprintFunc(),
		ok:     color.New(color.FgGreen).SprintFunc(),
		warn:   color.New(color.FgYellow).SprintFunc(),
		fail:   color.New(color.FgRed).SprintFunc(),
	}
}

// Intro opens the session.
func (c *Console) Intro(msg string) {
	fmt.Fprintf(c.out, "%s  %s\n%s\n", c.accent("┌"), msg, c.dim("│"))
}

// Outro closes the session.
func (c *Console) Outro(msg string) {
	fmt.Fprintf(c.out, "%s\n%s  %s\n", c.dim("│"), c.accent("└"), msg)
}

// Note prints lines as one block, continuation lines prefixed with the
// gutter.
func (c *Console) Note(lines ...string) {
	if len(lines) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString(c.accent("◇") + "  " + lines[0])
	for _, line := range lines[1:] {
		b.WriteString("\n" + c.dim("│") + "  " + line)
	}
	fmt.Fprintln(c.out, b.String())
}

// Abort prints the single message shown before a non-zero exit.
func (c *Console) Abort() {
	fmt.Fprintln(c.out, c.fail("Aborting..."))
}

// Observe implements pipeline.Observer.
func (c *Console) Observe(ev pipeline.Event) {
	switch ev.Kind {
	case pipeline.StepStarted:
		fmt.Fprintf(c.out, "%s  %s...\n", c.accent("◒"), ev.Label)
	case pipeline.StepSucceeded:
		fmt.Fprintf(c.out, "%s  %s %s\n", c.ok("◇"), ev.Label, "✅")
	case pipeline.StepFailed:
		if ev.StepKind == pipeline.BestEffort {
			fmt.Fprintf(c.out, "%s  %s skipped\n", c.warn("◇"), ev.Label)
			return
		}
		fmt.Fprintf(c.out, "%s  %s failed\n", c.fail("■"), ev.Label)
	}
}

var _ pipeline.Observer = (*Console)(nil)

package testsupport

import (
	"context"

	"github.com/goliatone/go-genai-starter/pkg/scaffold"
)

// RecordingRunner records commands instead of spawning processes.
type RecordingRunner struct {
	// OnRun, when set, decides the result of each command. Tests use it to
	// simulate generator output on disk or failing tools.
	OnRun func(cmd scaffold.Command) error
	// Commands lists every command in order.
	Commands []scaffold.Command
}

var _ scaffold.Runner = (*RecordingRunner)(nil)

func (r *RecordingRunner) Run(_ context.Context, cmd scaffold.Command) error {
	r.Commands = append(r.Commands, cmd)
	if r.OnRun != nil {
		return r.OnRun(cmd)
	}
	return nil
}

// Names returns the command strings recorded so far.
func (r *RecordingRunner) Names() []string {
	out := make([]string, len(r.Commands))
	for i, cmd := range r.Commands {
		out[i] = cmd.String()
	}
	return out
}

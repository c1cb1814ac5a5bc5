package testsupport

import (
	"context"

	"github.com/goliatone/go-genai-starter/pkg/params"
)

// ScriptedChecker returns Results in order, then nil for every later call.
type ScriptedChecker struct {
	Results []error
	// Calls records the parameters of every check.
	Calls []params.ConnectionParameters
}

// FailingChecker fails n times with err before succeeding.
func FailingChecker(n int, err error) *ScriptedChecker {
	results := make([]error, n)
	for i := range results {
		results[i] = err
	}
	return &ScriptedChecker{Results: results}
}

func (c *ScriptedChecker) Check(_ context.Context, conn params.ConnectionParameters) error {
	idx := len(c.Calls)
	c.Calls = append(c.Calls, conn)
	if idx < len(c.Results) {
		return c.Results[idx]
	}
	return nil
}

package prompt

import (
	"context"
	"fmt"
)

// Field binds a name to the question that produces its value.
type Field struct {
	Name     string
	Question Question
}

// Answers holds the values collected by Group keyed by field name.
type Answers map[string]any

// String returns the named answer as a string, or "" when absent.
func (a Answers) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Bool returns the named answer as a bool, or false when absent.
func (a Answers) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// Group asks every field in declared order. Either every field is answered
// or no answers are returned: any error, cancellation included, discards the
// values collected so far.
func Group(ctx context.Context, d Driver, fields ...Field) (Answers, error) {
	if d == nil {
		return nil, fmt.Errorf("prompt: driver is nil")
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	answers := make(Answers, len(fields))
	for _, f := range fields {
		if f.Question == nil {
			return nil, fmt.Errorf("prompt: field %q has no question", f.Name)
		}
		value, err := f.Question.Ask(ctx, d)
		if err != nil {
			return nil, err
		}
		answers[f.Name] = value
	}
	return answers, nil
}

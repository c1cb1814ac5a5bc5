package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C). It terminates
	// the whole run and is never retried.
	ErrAborted = errors.New("prompt: aborted")
	// ErrDuplicateField is returned by Group when two fields share a name.
	ErrDuplicateField = errors.New("prompt: duplicate field")
)

// IsAborted reports whether err represents user cancellation.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}

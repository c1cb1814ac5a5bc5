package connection

// State is a node of the acquisition state machine.
type State int

const (
	// Collecting asks the user for connection parameters.
	Collecting State = iota
	// Verifying runs the connectivity check on the collected parameters.
	Verifying
	// Connected is terminal: the check passed.
	Connected
	// Cancelled is terminal: the user aborted while collecting.
	Cancelled
	// Failed is terminal: collection failed for a reason other than a
	// user abort, such as a broken terminal.
	Failed
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Verifying:
		return "verifying"
	case Connected:
		return "connected"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == Connected || s == Cancelled || s == Failed
}

// Event drives a transition.
type Event int

const (
	// Collected: the prompt group produced parameters.
	Collected Event = iota
	// Aborted: the user cancelled the prompt group.
	Aborted
	// CollectFailed: the prompt group failed without a user abort.
	CollectFailed
	// CheckPassed: the connectivity check succeeded.
	CheckPassed
	// CheckFailed: the connectivity check failed.
	CheckFailed
)

// Next returns the state reached from s on ev. Events that do not apply to
// s leave it unchanged.
func Next(s State, ev Event) State {
	switch s {
	case Collecting:
		switch ev {
		case Collected:
			return Verifying
		case Aborted:
			return Cancelled
		case CollectFailed:
			return Failed
		}
	case Verifying:
		switch ev {
		case CheckPassed:
			return Connected
		case CheckFailed:
			return Collecting
		case Aborted:
			return Cancelled
		}
	}
	return s
}

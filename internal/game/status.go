package game

// Status describes the lifecycle of a session.
type Status int

const (
	// StatusUnspecified represents an invalid status value.
	StatusUnspecified Status = iota
	// StatusReady indicates a fresh session before the first reveal.
	StatusReady
	// StatusPlaying indicates an active session with the clock running.
	StatusPlaying
	// StatusWon indicates every safe cell was revealed.
	StatusWon
	// StatusLost indicates a mine was revealed.
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unspecified"
	}
}

// IsTerminal reports whether the status ends a session.
func (s Status) IsTerminal() bool {
	return s == StatusWon || s == StatusLost
}

// isStatusTransitionAllowed reports whether a status transition is permitted.
func isStatusTransitionAllowed(from, to Status) bool {
	switch from {
	case StatusReady:
		return to == StatusPlaying
	case StatusPlaying:
		return to == StatusWon || to == StatusLost
	default:
		return false
	}
}

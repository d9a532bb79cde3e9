package session

type Screen int

const (
	ScreenChat Screen = iota
	ScreenSummary
)

func (s Screen) String() string {
	switch s {
	case ScreenChat:
		return "chat"
	case ScreenSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// State is a read-only snapshot of the coordinator's UI-facing state.
type State struct {
	Screen      Screen
	InFlight    bool
	PendingID   uint64 // task id while InFlight, 0 otherwise
	Summary     string
	HasSummary  bool
	WindowInput string // raw text of the last accepted submission
	LastError   string // last parse or inference failure, cleared by the next success
}

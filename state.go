package musicplayer

// State — состояние движка рендеринга.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateSuspended
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

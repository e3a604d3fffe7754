package reveal

// Status is the lifecycle state of a Player.
type Status int

const (
	StatusIdle     Status = iota // Nothing playing; cursor at zero.
	StatusRunning                // Timer armed, chunks being revealed.
	StatusPaused                 // Timer disarmed, cursor retained.
	StatusStopped                // Terminal until Reset or Start.
	StatusComplete               // Every chunk revealed. Terminal.
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusStopped:
		return "stopped"
	case StatusComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Terminal reports whether s is Stopped or Complete.
func (s Status) Terminal() bool {
	return s == StatusStopped || s == StatusComplete
}

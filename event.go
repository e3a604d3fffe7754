package reveal

// Event is a sealed interface representing a playback notification.
// Events are delivered synchronously, in order, on the host thread that
// caused the transition. The unexported marker method prevents external
// implementations.
type Event interface {
	event()
}

// EventStarted signals that a stream entered the running state from the
// beginning of its content.
type EventStarted struct {
	Chunks int // Length of the chunk sequence.
}

func (EventStarted) event() {}

// EventChunkAppended carries one revealed chunk and the text revealed so far.
type EventChunkAppended struct {
	Chunk string
	Text  string
}

func (EventChunkAppended) event() {}

// EventPaused signals that the stream was paused.
type EventPaused struct{}

func (EventPaused) event() {}

// EventResumed signals that a paused stream is running again.
type EventResumed struct{}

func (EventResumed) event() {}

// EventStopped signals that the stream was stopped. Text is what had been
// revealed at stop time.
type EventStopped struct {
	Text string
}

func (EventStopped) event() {}

// EventComplete signals that every chunk was revealed. It fires exactly once
// per stream.
type EventComplete struct {
	Text string
}

func (EventComplete) event() {}

// EventReset signals that the player returned to idle with empty output.
type EventReset struct{}

func (EventReset) event() {}

// Interface compliance checks.
var (
	_ Event = EventStarted{}
	_ Event = EventChunkAppended{}
	_ Event = EventPaused{}
	_ Event = EventResumed{}
	_ Event = EventStopped{}
	_ Event = EventComplete{}
	_ Event = EventReset{}
)

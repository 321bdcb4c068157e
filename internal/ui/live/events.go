package live

import "time"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventInvocationStart signals that the child process has been launched.
	EventInvocationStart EventKind = iota
	// EventInvocationEnd signals that the child process has been classified.
	EventInvocationEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind      EventKind
	ID        string
	Preset    string
	Model     string
	Binary    string
	Outcome   string
	EmittedAt time.Time
}

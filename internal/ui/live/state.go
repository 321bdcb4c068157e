package live

import "time"

// State captures what the waiting indicator shows.
type State struct {
	ID        string
	Preset    string
	Model     string
	Binary    string
	StartedAt time.Time
	Outcome   string
	Done      bool
}

// Label names the thing being waited on.
func (s State) Label() string {
	name := s.Model
	if name == "" {
		name = s.Binary
	}
	if name == "" {
		name = "runner"
	}
	if s.Preset == "" {
		return name
	}
	return name + " (" + s.Preset + ")"
}

// Elapsed reports the time spent waiting, rounded for display.
func (s State) Elapsed(now time.Time) time.Duration {
	if s.StartedAt.IsZero() || now.Before(s.StartedAt) {
		return 0
	}
	return now.Sub(s.StartedAt).Round(100 * time.Millisecond)
}

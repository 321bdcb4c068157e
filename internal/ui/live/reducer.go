package live

// Reduce applies an event to the UI state.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventInvocationStart:
		state.ID = event.ID
		state.Preset = event.Preset
		state.Model = event.Model
		state.Binary = event.Binary
		if state.StartedAt.IsZero() {
			state.StartedAt = event.EmittedAt
		}
		state.Done = false
		state.Outcome = ""
	case EventInvocationEnd:
		if event.ID != "" && state.ID != "" && event.ID != state.ID {
			return state
		}
		state.Done = true
		state.Outcome = event.Outcome
	}
	return state
}

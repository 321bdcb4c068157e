package live

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"llamachat/internal/testutil"
)

// TestReduceInvocationLifecycle verifies start and end transitions.
func TestReduceInvocationLifecycle(t *testing.T) {
	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	state := Reduce(State{}, Event{Kind: EventInvocationStart, ID: "inv-1", Preset: "ollama", Model: "llama3", EmittedAt: start})
	if state.Done {
		t.Fatalf("expected running state")
	}
	if state.StartedAt != start {
		t.Fatalf("expected start time %v, got %v", start, state.StartedAt)
	}
	if got := state.Label(); got != "llama3 (ollama)" {
		t.Fatalf("expected label, got %q", got)
	}

	state = Reduce(state, Event{Kind: EventInvocationEnd, ID: "inv-1", Outcome: "ok"})
	if !state.Done || state.Outcome != "ok" {
		t.Fatalf("expected done with ok outcome, got %+v", state)
	}
}

// TestReduceIgnoresForeignEnd verifies an end event for another id is dropped.
func TestReduceIgnoresForeignEnd(t *testing.T) {
	state := Reduce(State{}, Event{Kind: EventInvocationStart, ID: "inv-1", EmittedAt: time.Now()})
	state = Reduce(state, Event{Kind: EventInvocationEnd, ID: "inv-2", Outcome: "timeout"})
	if state.Done {
		t.Fatalf("expected end event for another invocation to be ignored")
	}
}

// TestLabelFallsBackToBinary verifies custom runners without a model.
func TestLabelFallsBackToBinary(t *testing.T) {
	state := State{Preset: "custom", Binary: "/opt/bin/llm"}
	if got := state.Label(); got != "/opt/bin/llm (custom)" {
		t.Fatalf("expected binary label, got %q", got)
	}
	if got := (State{}).Label(); got != "runner" {
		t.Fatalf("expected generic label, got %q", got)
	}
}

// TestRenderWaiting verifies the waiting line and its disappearance.
func TestRenderWaiting(t *testing.T) {
	clock := testutil.NewFakeClock(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	state := State{Preset: "ollama", Model: "llama3", StartedAt: clock.Now()}
	clock.Advance(1230 * time.Millisecond)

	line := renderWaiting(state, "*", clock.Now(), true)
	if line != "* Waiting for llama3 (ollama) 1.2s" {
		t.Fatalf("unexpected waiting line %q", line)
	}

	state.Done = true
	if line := renderWaiting(state, "*", clock.Now(), true); line != "" {
		t.Fatalf("expected empty view once done, got %q", line)
	}
	if line := renderWaiting(State{}, "*", clock.Now(), true); line != "" {
		t.Fatalf("expected empty view before start, got %q", line)
	}
}

// TestModelQuitsWhenInvocationEnds verifies the model stops after the end event.
func TestModelQuitsWhenInvocationEnds(t *testing.T) {
	model := NewModel(nil, Options{NoColor: true})
	next, _ := model.Update(EventMsg{Event: Event{Kind: EventInvocationStart, ID: "inv-1", Model: "llama3", EmittedAt: time.Now()}})
	model = next.(Model)
	if !strings.Contains(model.View(), "Waiting for llama3") {
		t.Fatalf("expected waiting view, got %q", model.View())
	}

	next, cmd := model.Update(EventMsg{Event: Event{Kind: EventInvocationEnd, ID: "inv-1", Outcome: "ok"}})
	model = next.(Model)
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
	if model.View() != "" {
		t.Fatalf("expected empty view, got %q", model.View())
	}
}

// TestControllerLifecycle verifies Start, events, Close and Wait return.
func TestControllerLifecycle(t *testing.T) {
	ctx := testutil.Context(t, 5*time.Second)
	var out bytes.Buffer
	controller := Start(&out, Options{NoColor: true, TickInterval: 10 * time.Millisecond})
	controller.OnInvocationStart("inv-1", "ollama", "llama3", "ollama")
	controller.OnInvocationEnd("inv-1", "ok")
	controller.Close()

	done := make(chan struct{})
	go func() {
		controller.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("controller did not exit")
	}
}

// TestNilControllerIsSafe verifies the plain path can call through a nil controller.
func TestNilControllerIsSafe(t *testing.T) {
	var controller *Controller
	controller.OnInvocationStart("inv-1", "ollama", "llama3", "ollama")
	controller.OnInvocationEnd("inv-1", "ok")
	controller.Close()
	controller.Wait()
}

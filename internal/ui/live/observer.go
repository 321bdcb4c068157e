package live

import (
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Controller runs the live UI for one invocation.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches a live UI controller that writes to w, normally stderr.
// Keyboard input is not read so the prompt stream is left alone.
func Start(w io.Writer, opts Options) *Controller {
	if w == nil {
		w = os.Stderr
	}
	events := make(chan Event, 8)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(w), tea.WithInput(nil), tea.WithoutSignalHandler())
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnInvocationStart forwards the launch of the child process to the UI.
func (c *Controller) OnInvocationStart(id, preset, model, binary string) {
	c.send(Event{Kind: EventInvocationStart, ID: id, Preset: preset, Model: model, Binary: binary, EmittedAt: time.Now()})
}

// OnInvocationEnd forwards the classified outcome to the UI.
func (c *Controller) OnInvocationEnd(id, outcome string) {
	c.send(Event{Kind: EventInvocationEnd, ID: id, Outcome: outcome, EmittedAt: time.Now()})
}

// send pushes an event without blocking. Call before Close.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}

package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a runner invocation when none is configured.
const DefaultTimeout = 30 * time.Second

// DefaultWaitDelay bounds waiting on output pipes after the runner is killed
// or exits while a descendant still holds them open.
const DefaultWaitDelay = 2 * time.Second

// Invoker runs a model runner once and maps the outcome to response text.
type Invoker struct {
	Timeout   time.Duration
	WaitDelay time.Duration
	Messages  Messages
	Observer  Observer
	clock     func() time.Time
	newID     func() string
}

// NewInvoker constructs an Invoker with the given timeout and messages.
func NewInvoker(timeout time.Duration, messages Messages) *Invoker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Invoker{
		Timeout:   timeout,
		WaitDelay: DefaultWaitDelay,
		Messages:  messages.withDefaults(),
		clock:     time.Now,
		newID:     uuid.NewString,
	}
}

// Invoke executes argv, waits up to the timeout and returns the outcome.
// It never returns an error; failures are classified in Result.Kind.
func (inv *Invoker) Invoke(ctx context.Context, argv []string) Result {
	clock := inv.clock
	if clock == nil {
		clock = time.Now
	}
	newID := inv.newID
	if newID == nil {
		newID = uuid.NewString
	}
	messages := inv.Messages.withDefaults()
	result := Result{
		ID:        newID(),
		Argv:      append([]string(nil), argv...),
		StartedAt: clock(),
		ExitCode:  -1,
	}
	observer := inv.Observer
	if observer == nil {
		observer = NoopObserver{}
	}
	observer.OnInvocationStart(result.ID, result.Argv)
	finish := func() Result {
		result.FinishedAt = clock()
		result.Duration = result.FinishedAt.Sub(result.StartedAt)
		observer.OnInvocationEnd(result)
		return result
	}

	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		result.Kind = KindError
		result.Err = errors.New("empty command")
		result.Text = messages.ErrorPrefix + result.Err.Error()
		return finish()
	}

	timeout := inv.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = inv.WaitDelay
	configureProcessGroup(cmd)

	err := cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}
	result.Err = err
	result.Kind = classify(err, runCtx, cmd.ProcessState)
	if result.Kind == KindOK {
		result.Err = nil
	}
	if result.Kind == KindError && errors.Is(runCtx.Err(), context.Canceled) {
		result.Err = runCtx.Err()
	}
	result.Text = responseText(result, messages)
	return finish()
}

// classify maps a cmd.Run error to a Kind. A runner that exited zero but left
// a descendant holding its output open is still a success; stdout holds what
// was written before the pipes were closed. Otherwise the deadline is checked
// before the exit status so a runner killed on timeout is not reported as an
// exit failure.
func classify(err error, runCtx context.Context, state *os.ProcessState) Kind {
	if err == nil {
		return KindOK
	}
	if errors.Is(err, exec.ErrWaitDelay) && state != nil && state.Success() {
		return KindOK
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return KindTimeout
	}
	if runCtx.Err() != nil {
		return KindError
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return KindNotInstalled
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return KindExitError
	}
	return KindError
}

// responseText renders the printable response for a classified result.
func responseText(result Result, messages Messages) string {
	switch result.Kind {
	case KindOK:
		return strings.TrimSpace(result.Stdout)
	case KindExitError:
		return ExitErrorPrefix + strings.TrimSpace(result.Stderr)
	case KindTimeout:
		return messages.Timeout
	case KindNotInstalled:
		return messages.NotInstalled
	default:
		return messages.ErrorPrefix + errorString(result.Err)
	}
}

// errorString formats errors for response text.
func errorString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return fmt.Sprint(err)
}

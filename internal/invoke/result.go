package invoke

import "time"

// Kind classifies how an invocation ended.
type Kind int

const (
	// KindOK means the runner exited zero.
	KindOK Kind = iota
	// KindExitError means the runner exited non-zero.
	KindExitError
	// KindTimeout means the runner did not finish before the deadline.
	KindTimeout
	// KindNotInstalled means the runner executable could not be found.
	KindNotInstalled
	// KindError covers every other failure.
	KindError
)

// String returns the stable name used in logs.
func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindExitError:
		return "exit_error"
	case KindTimeout:
		return "timeout"
	case KindNotInstalled:
		return "not_installed"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Failed reports whether the invocation did not produce a model response.
func (k Kind) Failed() bool {
	return k != KindOK
}

// ExitErrorPrefix precedes captured stderr when the runner exits non-zero.
const ExitErrorPrefix = "Error: "

// Default response strings.
const (
	DefaultTimeoutMessage      = "Sorry, the AI is taking too long to respond. Please try again."
	DefaultNotInstalledMessage = "Llama 3 is not properly installed. Please check your installation."
	DefaultErrorPrefix         = "Error calling Llama 3: "
)

// Messages holds the human-readable strings an invocation can resolve to.
type Messages struct {
	Timeout      string
	NotInstalled string
	ErrorPrefix  string
}

// DefaultMessages returns the built-in response strings.
func DefaultMessages() Messages {
	return Messages{
		Timeout:      DefaultTimeoutMessage,
		NotInstalled: DefaultNotInstalledMessage,
		ErrorPrefix:  DefaultErrorPrefix,
	}
}

// withDefaults fills empty fields from DefaultMessages.
func (m Messages) withDefaults() Messages {
	defaults := DefaultMessages()
	if m.Timeout == "" {
		m.Timeout = defaults.Timeout
	}
	if m.NotInstalled == "" {
		m.NotInstalled = defaults.NotInstalled
	}
	if m.ErrorPrefix == "" {
		m.ErrorPrefix = defaults.ErrorPrefix
	}
	return m
}

// Result captures a single runner invocation.
type Result struct {
	ID         string
	Argv       []string
	Kind       Kind
	Text       string
	Stdout     string
	Stderr     string
	ExitCode   int
	StartedAt  time.Time
	FinishedAt time.Time
	Duration   time.Duration
	Err        error
}

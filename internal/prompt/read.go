package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// DefaultEmptyMessage is printed when stdin carries no prompt.
const DefaultEmptyMessage = "No prompt provided"

// HintText is shown before reading from an interactive terminal.
const HintText = "Enter a prompt, then press Ctrl-D to send."

// ErrEmptyPrompt signals that the input was empty or whitespace only.
var ErrEmptyPrompt = errors.New("no prompt provided")

// isTerminal reports whether a reader is an interactive terminal.
var isTerminal = defaultIsTerminal

// Read consumes r until EOF and returns the trimmed prompt.
func Read(r io.Reader) (string, error) {
	if r == nil {
		return "", ErrEmptyPrompt
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read prompt: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", ErrEmptyPrompt
	}
	return text, nil
}

// Hint writes HintText to w when in is a terminal. Piped input gets nothing.
func Hint(w io.Writer, in io.Reader) {
	if w == nil || !isTerminal(in) {
		return
	}
	fmt.Fprintln(w, HintText)
}

// defaultIsTerminal inspects a reader for TTY support.
func defaultIsTerminal(in io.Reader) bool {
	if in == nil {
		return false
	}
	if file, ok := in.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := in.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

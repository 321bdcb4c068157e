package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const verbosePrefix = "[verbose]"

// maxVerbosePrompt bounds how much of the prompt shows up in argv dumps.
const maxVerbosePrompt = 40

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	styleCommand
	styleSuccess
	styleError
)

// verboseLogger writes [verbose] diagnostics to stderr.
type verboseLogger struct {
	enabled bool
	writer  io.Writer
	palette verbosePalette
}

func newVerboseLogger(enabled bool, writer io.Writer, noColor bool) verboseLogger {
	return verboseLogger{enabled: enabled, writer: writer, palette: paletteFor(writer, noColor)}
}

func (v verboseLogger) logf(style verboseStyle, format string, args ...any) {
	if !v.enabled || v.writer == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(v.writer, "%s %s\n", v.palette.prefix(verbosePrefix), v.palette.apply(style, line))
}

type verbosePalette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) verbosePalette {
	if noColor {
		return verbosePalette{enabled: false}
	}
	return verbosePalette{enabled: shouldUseStyling(writer)}
}

func shouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	return isTerminal(writer)
}

func (p verbosePalette) prefix(text string) string {
	if !p.enabled {
		return text
	}
	return lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("244")).Render(text)
}

func (p verbosePalette) apply(style verboseStyle, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case styleCommand:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render(text)
	case styleSuccess:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Render(text)
	case styleError:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render(text)
	default:
		return text
	}
}

// formatArgv renders argv for display, shortening the prompt argument.
func formatArgv(argv []string, prompt string) string {
	parts := make([]string, 0, len(argv))
	for _, arg := range argv {
		if prompt != "" && strings.Contains(arg, prompt) {
			arg = strings.Replace(arg, prompt, truncate(prompt, maxVerbosePrompt), 1)
		}
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg == "" || strings.ContainsAny(arg, " \t\n\"'") {
		return fmt.Sprintf("%q", arg)
	}
	return arg
}

// truncate shortens text to limit runes, collapsing newlines.
func truncate(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderWaiting renders the single waiting line.
func renderWaiting(state State, spinnerView string, now time.Time, noColor bool) string {
	if state.Done || state.StartedAt.IsZero() {
		return ""
	}
	label := stylize("Waiting for "+state.Label(), noColor, lipgloss.Color("33"))
	elapsed := stylize(state.Elapsed(now).String(), noColor, lipgloss.Color("242"))
	return spinnerView + " " + label + " " + elapsed
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

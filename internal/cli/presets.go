package cli

import (
	"fmt"
	"io"
	"strings"

	"llamachat/internal/invoke"
)

// runPresets builds the handler for the presets command.
func runPresets(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		if len(args) > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(args, " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		for _, preset := range invoke.Presets() {
			fmt.Fprintf(stdout, "  %-9s %s\n", preset.Name, preset.Summary)
		}
		return ExitOK
	}
}

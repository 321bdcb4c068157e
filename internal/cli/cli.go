package cli

import (
	"fmt"
	"io"
	"strings"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
	// ExitTimeout matches timeout(1) and is only used in strict mode.
	ExitTimeout = 124
	// ExitNotInstalled matches the shell's command-not-found status and is
	// only used in strict mode.
	ExitNotInstalled = 127
)

// defaultCommand runs when no command name is given.
const defaultCommand = "chat"

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || isFlagArg(args[0]) && !isHelpArg(args[0]) {
		return findCommand(defaultCommand).Run(args, stdout, stderr)
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func isFlagArg(arg string) bool {
	return strings.HasPrefix(arg, "-") && arg != "-"
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  llamachat [chat options] < prompt.txt")
	fmt.Fprintln(w, "  llamachat <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"llamachat <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("chat", "Send a prompt from stdin to the local model runner (default)", []string{
		"llamachat chat [--config <path>] [--env-file <path>] [--preset <name>] [--model <name>]",
		"               [--binary <path>] [--timeout <duration>] [--strict] [--verbose]",
		"               [--no-color] [--log <path>] [--ui auto|live|plain]",
		"echo \"Why is the sky blue?\" | llamachat",
	}, runChat),
	command("init", "Scaffold .llamachat/config.yml", []string{
		"llamachat init [--config <path>]",
	}, runInit),
	command("validate", "Validate .llamachat/config.yml", []string{
		"llamachat validate [--config <path>]",
	}, runValidate),
	command("presets", "List runner presets", []string{
		"llamachat presets",
	}, runPresets),
}

package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"llamachat/internal/config"
	"llamachat/internal/invoke"
	"llamachat/internal/spec"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: ./.llamachat/config.yml)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		in := initInput
		if in == nil {
			in = os.Stdin
		}
		reader := bufio.NewReader(in)

		var targetPath string
		if value := strings.TrimSpace(*configPath); value == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			targetPath = config.ConfigPath(wd)
		} else {
			abs, err := filepath.Abs(value)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			targetPath = abs
		}
		configDir := filepath.Dir(targetPath)

		if info, err := os.Stat(configDir); err == nil && !info.IsDir() {
			fmt.Fprintf(stderr, "Init failed: config directory %q is not a directory\n", configDir)
			return ExitError
		}
		if info, err := os.Stat(targetPath); err == nil {
			if info.IsDir() {
				fmt.Fprintf(stderr, "Init failed: config path %q is a directory\n", targetPath)
				return ExitError
			}
			fmt.Fprintf(stderr, "Init failed: config file already exists at %q\n", targetPath)
			return ExitError
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Init failed: stat config file: %v\n", err)
			return ExitError
		}

		confirm, err := promptYesNo(reader, stdout, fmt.Sprintf("Initialize llamachat config in %s?", configDir), true)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if !confirm {
			fmt.Fprintln(stderr, "Init cancelled.")
			return ExitError
		}

		runner, err := promptRunner(reader, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		if err := config.Scaffold(targetPath, runner); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", targetPath)
		return ExitOK
	}
}

// promptRunner asks for the preset and the fields that preset needs.
func promptRunner(reader *bufio.Reader, out io.Writer) (spec.RunnerConfig, error) {
	name, err := promptChoice(reader, out, "Runner preset", invoke.PresetNames(), config.DefaultPreset)
	if err != nil {
		return spec.RunnerConfig{}, err
	}
	preset, _ := invoke.LookupPreset(name)

	runner := spec.RunnerConfig{Preset: preset.Name}
	switch preset.Name {
	case invoke.PresetCustom:
		if runner.Binary, err = promptString(reader, out, "Runner executable", ""); err != nil {
			return spec.RunnerConfig{}, err
		}
	case invoke.PresetScript:
		if runner.Script, err = promptString(reader, out, "Script path", ""); err != nil {
			return spec.RunnerConfig{}, err
		}
	}
	if preset.Name == invoke.PresetOllama || preset.Name == invoke.PresetLlamaCPP {
		if runner.Model, err = promptString(reader, out, "Model", preset.DefaultModel); err != nil {
			return spec.RunnerConfig{}, err
		}
	}
	return runner, nil
}

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

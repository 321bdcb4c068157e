package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"llamachat/internal/config"
	"llamachat/internal/invoke"
	"llamachat/internal/logging"
	"llamachat/internal/prompt"
	"llamachat/internal/ui/live"
)

// chatInput allows tests to override stdin for the prompt.
var chatInput io.Reader = os.Stdin

// runChat builds the handler for the chat command.
func runChat(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .llamachat/config.yml)")
		envFile := fs.String("env-file", config.DotEnvFileName, "Path to a .env file; a missing file is ignored")
		preset := fs.String("preset", "", "Runner preset ("+strings.Join(invoke.PresetNames(), "|")+")")
		binary := fs.String("binary", "", "Runner executable override")
		model := fs.String("model", "", "Model name override")
		script := fs.String("script", "", "Script path for the script preset")
		timeout := fs.Duration("timeout", 0, "Runner timeout, e.g. 45s (default: timeout_seconds from config)")
		strict := fs.Bool("strict", false, "Exit non-zero when the runner fails")
		verbose := fs.Bool("verbose", false, "Print invocation details to stderr")
		noColor := fs.Bool("no-color", false, "Disable ANSI colors")
		logPath := fs.String("log", "", "Append JSON invocation logs to this file")
		uiMode := fs.String("ui", "auto", "Live UI mode (auto|live|plain)")
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		decision, err := resolveUIMode(*uiMode, *verbose, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid --ui: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		in := chatInput
		prompt.Hint(stderr, in)
		text, readErr := prompt.Read(in)
		if readErr != nil && !errors.Is(readErr, prompt.ErrEmptyPrompt) {
			fmt.Fprintf(stderr, "Failed to read prompt: %v\n", readErr)
			return ExitError
		}

		emptyPrompt := errors.Is(readErr, prompt.ErrEmptyPrompt)
		// A broken env file or config must not hide the empty-prompt message.
		lookup, err := config.EnvLookup(*envFile)
		if err != nil {
			if emptyPrompt {
				fmt.Fprintln(stdout, prompt.DefaultEmptyMessage)
				return ExitError
			}
			fmt.Fprintf(stderr, "Failed to load env file: %v\n", err)
			return ExitError
		}
		settings, err := config.Resolve(config.ResolveOptions{
			Path:   *configPath,
			Lookup: lookup,
			Overrides: config.Overrides{
				Preset:  *preset,
				Binary:  *binary,
				Model:   *model,
				Script:  *script,
				Timeout: *timeout,
				Strict:  *strict,
			},
		})
		if emptyPrompt {
			message := prompt.DefaultEmptyMessage
			if err == nil {
				message = settings.Config.Messages.EmptyPrompt
			}
			fmt.Fprintln(stdout, message)
			return ExitError
		}
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}

		vlog := newVerboseLogger(*verbose, stderr, *noColor)
		if settings.Source == "" {
			vlog.logf(styleDefault, "config: built-in defaults")
		} else {
			vlog.logf(styleDefault, "config: %s", settings.Source)
		}

		argv, err := invoke.BuildCommand(settings.Config.Runner, text)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to build runner command: %v\n", err)
			return ExitError
		}

		logger, err := logging.Open(*logPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open log: %v\n", err)
			return ExitError
		}
		defer logger.Close()

		var ui *live.Controller
		if decision.useLive {
			ui = live.Start(stderr, live.Options{NoColor: !paletteFor(stderr, *noColor).enabled})
		}

		invoker := invoke.NewInvoker(settings.Timeout, settings.Messages())
		invoker.Observer = &chatObserver{
			preset:  settings.Config.Runner.Preset,
			model:   settings.Config.Runner.Model,
			timeout: settings.Timeout.String(),
			prompt:  text,
			verbose: vlog,
			logger:  logger,
			ui:      ui,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		result := invoker.Invoke(ctx, argv)
		ui.Close()
		ui.Wait()

		fmt.Fprintln(stdout, result.Text)
		return exitCodeFor(result.Kind, settings.Config.Strict)
	}
}

// exitCodeFor maps an outcome to the process exit status. Outside strict
// mode every outcome exits 0, since the response text carries the failure.
func exitCodeFor(kind invoke.Kind, strict bool) int {
	if !strict {
		return ExitOK
	}
	switch kind {
	case invoke.KindOK:
		return ExitOK
	case invoke.KindTimeout:
		return ExitTimeout
	case invoke.KindNotInstalled:
		return ExitNotInstalled
	default:
		return ExitError
	}
}

// chatObserver forwards invocation events to verbose output, the log file
// and the live UI.
type chatObserver struct {
	preset  string
	model   string
	timeout string
	prompt  string
	verbose verboseLogger
	logger  *logging.Logger
	ui      *live.Controller
}

func (o *chatObserver) OnInvocationStart(id string, argv []string) {
	binary := ""
	if len(argv) > 0 {
		binary = argv[0]
	}
	o.verbose.logf(styleDefault, "invocation %s preset=%s model=%s timeout=%s", id, o.preset, o.model, o.timeout)
	o.verbose.logf(styleCommand, "exec: %s", formatArgv(argv, o.prompt))
	o.logger.InvocationStarted(id, o.preset, argv, len(o.prompt))
	o.ui.OnInvocationStart(id, o.preset, o.model, binary)
}

func (o *chatObserver) OnInvocationEnd(result invoke.Result) {
	style := styleSuccess
	if result.Kind.Failed() {
		style = styleError
	}
	o.verbose.logf(style, "outcome: %s exit=%d duration=%s", result.Kind, result.ExitCode, result.Duration.Round(time.Millisecond))
	if result.Kind.Failed() {
		if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
			o.verbose.logf(styleError, "stderr: %s", truncate(stderr, 200))
		}
		if result.Err != nil {
			o.verbose.logf(styleError, "error: %v", result.Err)
		}
	}
	o.logger.InvocationFinished(result)
	o.ui.OnInvocationEnd(result.ID, result.Kind.String())
}

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"llamachat/internal/invoke"
)

func TestChatEmptyPrompt(t *testing.T) {
	for _, input := range []string{"", "   \n\t  \n"} {
		useChatInput(t, input)
		code, stdout, _ := runCLI(t, "chat")
		if code != ExitError {
			t.Fatalf("input %q: expected exit %d, got %d", input, ExitError, code)
		}
		if stdout != "No prompt provided\n" {
			t.Fatalf("input %q: expected empty prompt message, got %q", input, stdout)
		}
	}
}

func TestChatEmptyPromptWinsOverBadSettings(t *testing.T) {
	useChatInput(t, "   \n")
	t.Setenv("LLAMACHAT_TIMEOUT_SECONDS", "abc")
	code, stdout, stderr := runCLI(t, "chat")
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if stdout != "No prompt provided\n" {
		t.Fatalf("expected empty prompt message, got %q", stdout)
	}
	if strings.Contains(stderr, "Failed to load config") {
		t.Fatalf("expected no config error, got %q", stderr)
	}

	useChatInput(t, "")
	code, stdout, _ = runCLI(t, "chat", "--env-file", t.TempDir())
	if code != ExitError || stdout != "No prompt provided\n" {
		t.Fatalf("expected empty prompt message with unreadable env file, got %d %q", code, stdout)
	}

	useChatInput(t, "hi")
	t.Setenv("LLAMACHAT_TIMEOUT_SECONDS", "abc")
	code, stdout, stderr = runCLI(t, "chat")
	if code != ExitError || stdout != "" {
		t.Fatalf("expected config failure, got %d %q", code, stdout)
	}
	if !strings.Contains(stderr, "Failed to load config") || !strings.Contains(stderr, "LLAMACHAT_TIMEOUT_SECONDS") {
		t.Fatalf("expected timeout env error, got %q", stderr)
	}
}

func TestChatPrintsRunnerOutput(t *testing.T) {
	stub := writeRunner(t, "echo '  hello  '")
	useChatInput(t, "Say hello\n")

	code, stdout, stderr := runCLI(t, "chat", "--preset", "custom", "--binary", stub)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if stdout != "hello\n" {
		t.Fatalf("expected trimmed output, got %q", stdout)
	}
	if stderr != "" {
		t.Fatalf("expected no stderr output, got %q", stderr)
	}
}

func TestChatDefaultPresetBuildsOllamaCommand(t *testing.T) {
	stub := writeRunner(t, `printf '%s|' "$@"`)
	useChatInput(t, "  Why is the sky blue?  ")

	code, stdout, stderr := runCLI(t, "--binary", stub)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if stdout != "run|llama3|Why is the sky blue?|\n" {
		t.Fatalf("expected ollama argv, got %q", stdout)
	}
}

func TestChatExitErrorKeepsZeroExit(t *testing.T) {
	stub := writeRunner(t, "echo boom >&2\nexit 3")
	useChatInput(t, "hi")

	code, stdout, _ := runCLI(t, "--preset", "custom", "--binary", stub)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if stdout != "Error: boom\n" {
		t.Fatalf("expected error text, got %q", stdout)
	}

	useChatInput(t, "hi")
	code, stdout, _ = runCLI(t, "--preset", "custom", "--binary", stub, "--strict")
	if code != ExitError {
		t.Fatalf("expected strict exit %d, got %d", ExitError, code)
	}
	if stdout != "Error: boom\n" {
		t.Fatalf("expected error text in strict mode, got %q", stdout)
	}
}

func TestChatTimeout(t *testing.T) {
	stub := writeRunner(t, "exec sleep 5")
	useChatInput(t, "hi")

	code, stdout, _ := runCLI(t, "--preset", "custom", "--binary", stub, "--timeout", "200ms", "--strict")
	if code != ExitTimeout {
		t.Fatalf("expected exit %d, got %d", ExitTimeout, code)
	}
	if stdout != invoke.DefaultTimeoutMessage+"\n" {
		t.Fatalf("expected timeout message, got %q", stdout)
	}
}

func TestChatMissingRunner(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-runner")
	useChatInput(t, "hi")

	code, stdout, _ := runCLI(t, "--binary", missing)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if stdout != invoke.DefaultNotInstalledMessage+"\n" {
		t.Fatalf("expected not installed message, got %q", stdout)
	}

	useChatInput(t, "hi")
	if code, _, _ := runCLI(t, "--binary", missing, "--strict"); code != ExitNotInstalled {
		t.Fatalf("expected strict exit %d, got %d", ExitNotInstalled, code)
	}
}

func TestChatUsesConfigFile(t *testing.T) {
	stub := writeRunner(t, `printf '%s ' "$@"`)
	dir := t.TempDir()
	path := writeConfig(t, dir, `version: 1
strict: true
runner:
  preset: custom
  binary: `+stub+`
  model: tiny
  args: ["--model", "{{model}}", "--ask", "{{prompt}}"]
messages:
  empty_prompt: "Type something first"
`)

	useChatInput(t, "hi")
	code, stdout, stderr := runCLI(t, "--config", path)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if stdout != "--model tiny --ask hi\n" {
		t.Fatalf("expected substituted args, got %q", stdout)
	}

	useChatInput(t, "")
	code, stdout, _ = runCLI(t, "--config", path)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if stdout != "Type something first\n" {
		t.Fatalf("expected configured empty prompt message, got %q", stdout)
	}
}

func TestChatDiscoversConfigFromWorkingDir(t *testing.T) {
	stub := writeRunner(t, "echo from-config")
	dir := t.TempDir()
	writeConfig(t, dir, "version: 1\nrunner:\n  preset: custom\n  binary: "+stub+"\n")
	nested := filepath.Join(dir, "nested")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("create nested dir: %v", err)
	}
	chdir(t, nested)

	useChatInput(t, "hi")
	code, stdout, stderr := runCLI(t)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if stdout != "from-config\n" {
		t.Fatalf("expected discovered config to be used, got %q", stdout)
	}
}

func TestChatEnvFileAndEnvironment(t *testing.T) {
	stub := writeRunner(t, `printf '%s|' "$@"`)
	envFile := filepath.Join(t.TempDir(), "chat.env")
	body := "LLAMACHAT_BINARY=" + stub + "\nLLAMACHAT_MODEL=phi3\n"
	if err := os.WriteFile(envFile, []byte(body), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	useChatInput(t, "hi")
	code, stdout, stderr := runCLI(t, "--env-file", envFile)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if stdout != "run|phi3|hi|\n" {
		t.Fatalf("expected env file model, got %q", stdout)
	}

	useChatInput(t, "hi")
	t.Setenv("LLAMACHAT_MODEL", "mistral")
	_, stdout, _ = runCLI(t, "--env-file", envFile)
	if stdout != "run|mistral|hi|\n" {
		t.Fatalf("expected process env to win, got %q", stdout)
	}

	useChatInput(t, "hi")
	_, stdout, _ = runCLI(t, "--env-file", envFile, "--model", "gemma")
	if stdout != "run|gemma|hi|\n" {
		t.Fatalf("expected flag to win, got %q", stdout)
	}
}

func TestChatVerboseWritesToStderr(t *testing.T) {
	stub := writeRunner(t, "echo hello")
	useChatInput(t, "a fairly long prompt that should be shortened in verbose output")

	code, stdout, stderr := runCLI(t, "--preset", "custom", "--binary", stub, "--verbose", "--no-color")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if stdout != "hello\n" {
		t.Fatalf("expected clean stdout, got %q", stdout)
	}
	for _, want := range []string{
		"[verbose] config: built-in defaults",
		"[verbose] invocation ",
		"[verbose] exec: " + stub,
		"...",
		"[verbose] outcome: ok exit=0",
	} {
		if !strings.Contains(stderr, want) {
			t.Fatalf("expected %q in verbose output, got %q", want, stderr)
		}
	}
	if strings.Contains(stderr, "\x1b[") {
		t.Fatalf("expected no ANSI codes, got %q", stderr)
	}
}

func TestChatWritesLogFile(t *testing.T) {
	stub := writeRunner(t, "echo nope >&2\nexit 1")
	logPath := filepath.Join(t.TempDir(), "logs", "chat.jsonl")
	useChatInput(t, "secret question")

	code, _, stderr := runCLI(t, "--preset", "custom", "--binary", stub, "--log", logPath)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	log := string(data)
	if !strings.Contains(log, `"message":"invocation started"`) || !strings.Contains(log, `"message":"invocation failed"`) {
		t.Fatalf("expected lifecycle entries, got %q", log)
	}
	if !strings.Contains(log, `"stderr":"nope"`) {
		t.Fatalf("expected stderr in log, got %q", log)
	}
	if strings.Contains(log, "secret question") {
		t.Fatalf("prompt text must not be logged, got %q", log)
	}
}

func TestChatRejectsBadInvocation(t *testing.T) {
	useChatInput(t, "hi")
	if code, _, stderr := runCLI(t, "chat", "extra"); code != ExitUsage || !strings.Contains(stderr, "unexpected arguments") {
		t.Fatalf("expected usage error for positional args, got %d %q", code, stderr)
	}
	if code, _, stderr := runCLI(t, "--ui", "fancy"); code != ExitUsage || !strings.Contains(stderr, "invalid ui mode") {
		t.Fatalf("expected usage error for ui mode, got %d %q", code, stderr)
	}
	if code, _, _ := runCLI(t, "--timeout", "soon"); code != ExitUsage {
		t.Fatalf("expected usage error for bad duration, got %d", code)
	}
}

func TestChatConfigErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "version: 2\nrunner:\n  preset: custom\n")

	useChatInput(t, "hi")
	code, stdout, stderr := runCLI(t, "--config", path)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if stdout != "" {
		t.Fatalf("expected no stdout output, got %q", stdout)
	}
	if !strings.Contains(stderr, "Failed to load config") || !strings.Contains(stderr, "runner.binary") {
		t.Fatalf("expected validation issues, got %q", stderr)
	}

	useChatInput(t, "hi")
	if code, _, stderr := runCLI(t, "--preset", "script"); code != ExitError || !strings.Contains(stderr, "script") {
		t.Fatalf("expected missing script error, got %d %q", code, stderr)
	}
}

func TestChatLiveWarningOnNonTTY(t *testing.T) {
	stub := writeRunner(t, "echo hello")
	useChatInput(t, "hi")

	code, stdout, stderr := runCLI(t, "--preset", "custom", "--binary", stub, "--ui", "live")
	if code != ExitOK || stdout != "hello\n" {
		t.Fatalf("expected plain run, got %d %q", code, stdout)
	}
	if !strings.Contains(stderr, "falling back to plain output") {
		t.Fatalf("expected fallback warning, got %q", stderr)
	}
}

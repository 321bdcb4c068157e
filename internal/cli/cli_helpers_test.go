package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"llamachat/internal/config"
	"llamachat/internal/testutil"
)

// useChatInput feeds input to the chat command and forces non-TTY streams.
func useChatInput(t *testing.T, input string) {
	t.Helper()
	for _, key := range []string{
		config.EnvPreset, config.EnvBinary, config.EnvModel,
		config.EnvScript, config.EnvTimeoutSeconds, config.EnvStrict,
	} {
		t.Setenv(key, "")
	}
	origInput := chatInput
	origTerminal := isTerminal
	chatInput = strings.NewReader(input)
	isTerminal = func(io.Writer) bool { return false }
	t.Cleanup(func() {
		chatInput = origInput
		isTerminal = origTerminal
	})
}

// runCLI runs chat (explicitly or by default) with an isolated env file and
// returns its streams.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	hasEnvFile := false
	for _, arg := range args {
		if arg == "--env-file" {
			hasEnvFile = true
		}
	}
	if !hasEnvFile {
		args = append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	}
	var out, err bytes.Buffer
	code := Run(args, &out, &err)
	return code, out.String(), err.String()
}

// writeRunner writes an executable stub runner script.
func writeRunner(t *testing.T, body string) string {
	t.Helper()
	return testutil.WriteStub(t, t.TempDir(), "runner", body)
}

// writeConfig writes a config file under dir/.llamachat and returns its path.
func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ".llamachat", "config.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// chdir switches the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

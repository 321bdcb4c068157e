package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"llamachat/internal/spec"
)

const scaffoldHeader = `# llamachat configuration.
# Presets: ollama | llamacpp | script | custom.
# custom args may use {{model}} and {{prompt}}; without {{prompt}} the prompt is appended.
`

// RenderScaffold renders a normalized config for runner as YAML.
func RenderScaffold(runner spec.RunnerConfig) (string, error) {
	cfg := spec.Config{Version: DefaultVersion, Runner: runner}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	buf.WriteString(scaffoldHeader)
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return "", fmt.Errorf("render config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("render config: %w", err)
	}
	return buf.String(), nil
}

// Scaffold writes a starter config to specPath. It refuses to overwrite.
func Scaffold(specPath string, runner spec.RunnerConfig) error {
	if specPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(specPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", specPath)
		}
		return fmt.Errorf("config file already exists at %q", specPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	body, err := RenderScaffold(runner)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(specPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(specPath, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

package config

import (
	"llamachat/internal/invoke"
	"llamachat/internal/spec"
)

// Defaults applied when neither the config file nor the environment set a value.
const (
	DefaultVersion        = 1
	DefaultPreset         = invoke.PresetOllama
	DefaultTimeoutSeconds = 30
	// MaxTimeoutSeconds caps runner.timeout_seconds at one day.
	MaxTimeoutSeconds = 24 * 60 * 60
)

// Default returns the built-in config: ollama run llama3 with a 30s timeout.
func Default() spec.Config {
	cfg := spec.Config{Version: DefaultVersion}
	Normalize(&cfg)
	return cfg
}

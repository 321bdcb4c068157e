package config

import (
	"strings"

	"llamachat/internal/invoke"
	"llamachat/internal/prompt"
	"llamachat/internal/spec"
)

// Normalize fills defaults in place. It never removes user-provided values.
func Normalize(cfg *spec.Config) {
	runner := &cfg.Runner
	runner.Preset = strings.ToLower(strings.TrimSpace(runner.Preset))
	if runner.Preset == "" {
		runner.Preset = DefaultPreset
	}
	runner.Binary = strings.TrimSpace(runner.Binary)
	runner.Model = strings.TrimSpace(runner.Model)
	if preset, ok := invoke.LookupPreset(runner.Preset); ok {
		if runner.Model == "" {
			runner.Model = preset.DefaultModel
		}
		if runner.Preset == invoke.PresetLlamaCPP && runner.MaxTokens == 0 {
			runner.MaxTokens = invoke.DefaultMaxTokens
		}
	}
	if runner.TimeoutSeconds == 0 {
		runner.TimeoutSeconds = DefaultTimeoutSeconds
	}

	messages := &cfg.Messages
	if messages.EmptyPrompt == "" {
		messages.EmptyPrompt = prompt.DefaultEmptyMessage
	}
	if messages.Timeout == "" {
		messages.Timeout = invoke.DefaultTimeoutMessage
	}
	if messages.NotInstalled == "" {
		messages.NotInstalled = invoke.DefaultNotInstalledMessage
	}
	if messages.ErrorPrefix == "" {
		messages.ErrorPrefix = invoke.DefaultErrorPrefix
	}
}

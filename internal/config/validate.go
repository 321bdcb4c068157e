package config

import (
	"fmt"
	"strings"

	"llamachat/internal/invoke"
	"llamachat/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a normalized config for correctness.
func Validate(cfg *spec.Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != DefaultVersion {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	runner := cfg.Runner
	switch runner.Preset {
	case invoke.PresetOllama:
		if runner.Model == "" {
			add("runner.model", "is required")
		}
	case invoke.PresetLlamaCPP:
		if runner.Model == "" {
			add("runner.model", "is required for preset llamacpp (path to the model file)")
		}
	case invoke.PresetScript:
		if strings.TrimSpace(runner.Script) == "" {
			add("runner.script", "is required for preset script")
		}
	case invoke.PresetCustom:
		if runner.Binary == "" {
			add("runner.binary", "is required for preset custom")
		}
	case "":
		add("runner.preset", "is required")
	default:
		add("runner.preset", fmt.Sprintf("unsupported preset %q (expected %s)", runner.Preset, strings.Join(invoke.PresetNames(), "|")))
	}

	if runner.TimeoutSeconds <= 0 {
		add("runner.timeout_seconds", "must be > 0")
	} else if runner.TimeoutSeconds > MaxTimeoutSeconds {
		add("runner.timeout_seconds", fmt.Sprintf("must be <= %d", MaxTimeoutSeconds))
	}
	if runner.MaxTokens < 0 {
		add("runner.max_tokens", "must be >= 0")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

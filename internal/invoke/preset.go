package invoke

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"llamachat/internal/spec"
)

// Preset names accepted in runner.preset.
const (
	PresetOllama   = "ollama"
	PresetLlamaCPP = "llamacpp"
	PresetScript   = "script"
	PresetCustom   = "custom"
)

// Placeholders substituted in custom preset args.
const (
	PromptPlaceholder = "{{prompt}}"
	ModelPlaceholder  = "{{model}}"
)

// DefaultMaxTokens is the llama.cpp --n-predict value when max_tokens is unset.
const DefaultMaxTokens = 200

// Preset describes one way of invoking a model runner.
type Preset struct {
	Name          string
	Summary       string
	DefaultBinary string
	DefaultModel  string
	build         func(cfg spec.RunnerConfig, prompt string) []string
}

var presets = map[string]Preset{
	PresetOllama: {
		Name:          PresetOllama,
		Summary:       "ollama run <model> <prompt>",
		DefaultBinary: "ollama",
		DefaultModel:  "llama3",
		build: func(cfg spec.RunnerConfig, prompt string) []string {
			args := []string{"run", cfg.Model}
			args = append(args, cfg.Args...)
			return append(args, prompt)
		},
	},
	PresetLlamaCPP: {
		Name:          PresetLlamaCPP,
		Summary:       "llama-cli --model <model> --prompt <prompt> --n-predict <max_tokens>",
		DefaultBinary: "llama-cli",
		build: func(cfg spec.RunnerConfig, prompt string) []string {
			maxTokens := cfg.MaxTokens
			if maxTokens <= 0 {
				maxTokens = DefaultMaxTokens
			}
			args := []string{"--model", cfg.Model}
			args = append(args, cfg.Args...)
			return append(args, "--prompt", prompt, "--n-predict", strconv.Itoa(maxTokens))
		},
	},
	PresetScript: {
		Name:          PresetScript,
		Summary:       "python <script> <prompt>",
		DefaultBinary: "python",
		build: func(cfg spec.RunnerConfig, prompt string) []string {
			args := []string{cfg.Script}
			args = append(args, cfg.Args...)
			return append(args, prompt)
		},
	},
	PresetCustom: {
		Name:    PresetCustom,
		Summary: "<binary> <args...> with {{model}} and {{prompt}} substituted",
		build: func(cfg spec.RunnerConfig, prompt string) []string {
			args := make([]string, 0, len(cfg.Args)+1)
			substituted := false
			for _, arg := range cfg.Args {
				if strings.Contains(arg, PromptPlaceholder) {
					substituted = true
				}
				arg = strings.ReplaceAll(arg, ModelPlaceholder, cfg.Model)
				arg = strings.ReplaceAll(arg, PromptPlaceholder, prompt)
				args = append(args, arg)
			}
			if !substituted {
				args = append(args, prompt)
			}
			return args
		},
	},
}

// LookupPreset returns the preset registered under name.
func LookupPreset(name string) (Preset, bool) {
	preset, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return preset, ok
}

// Presets lists all presets sorted by name.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, preset := range presets {
		out = append(out, preset)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// PresetNames returns the sorted preset names.
func PresetNames() []string {
	list := Presets()
	names := make([]string, 0, len(list))
	for _, preset := range list {
		names = append(names, preset.Name)
	}
	return names
}

// BuildCommand returns the argv for cfg with prompt placed per the preset.
// The executable is always argv[0].
func BuildCommand(cfg spec.RunnerConfig, prompt string) ([]string, error) {
	preset, ok := LookupPreset(cfg.Preset)
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (expected %s)", cfg.Preset, strings.Join(PresetNames(), "|"))
	}
	binary := strings.TrimSpace(cfg.Binary)
	if binary == "" {
		binary = preset.DefaultBinary
	}
	if binary == "" {
		return nil, fmt.Errorf("preset %s requires runner.binary", preset.Name)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = preset.DefaultModel
	}
	switch preset.Name {
	case PresetLlamaCPP:
		if strings.TrimSpace(cfg.Model) == "" {
			return nil, fmt.Errorf("preset %s requires runner.model", preset.Name)
		}
	case PresetScript:
		if strings.TrimSpace(cfg.Script) == "" {
			return nil, fmt.Errorf("preset %s requires runner.script", preset.Name)
		}
	}
	argv := []string{binary}
	return append(argv, preset.build(cfg, prompt)...), nil
}

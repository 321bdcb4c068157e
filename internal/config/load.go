package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"llamachat/internal/invoke"
	"llamachat/internal/spec"
)

// Load reads, parses, normalizes, and validates a config file.
func Load(path string) (spec.Config, error) {
	cfg, err := read(path)
	if err != nil {
		return spec.Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return spec.Config{}, err
	}
	return cfg, nil
}

func read(path string) (spec.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return spec.Config{}, fmt.Errorf("read config: %w", err)
	}
	return spec.ParseConfig(data)
}

// Overrides are command-line values layered above file and environment.
type Overrides struct {
	Preset  string
	Binary  string
	Model   string
	Script  string
	Timeout time.Duration
	Strict  bool
}

// apply copies non-empty overrides onto cfg.
func (o Overrides) apply(cfg *spec.Config) {
	if value := strings.TrimSpace(o.Preset); value != "" {
		cfg.Runner.Preset = value
	}
	if value := strings.TrimSpace(o.Binary); value != "" {
		cfg.Runner.Binary = value
	}
	if value := strings.TrimSpace(o.Model); value != "" {
		cfg.Runner.Model = value
	}
	if value := strings.TrimSpace(o.Script); value != "" {
		cfg.Runner.Script = value
	}
	if o.Strict {
		cfg.Strict = true
	}
}

// ResolveOptions configures Resolve.
type ResolveOptions struct {
	// Path is an explicit config file. Empty means search upward from StartDir.
	Path      string
	StartDir  string
	Lookup    LookupFunc
	Overrides Overrides
}

// Settings is the fully layered runtime configuration.
type Settings struct {
	Config  spec.Config
	Timeout time.Duration
	// Source is the config file used, empty when running on defaults.
	Source string
}

// Messages converts configured response strings for the invoker.
func (s Settings) Messages() invoke.Messages {
	return invoke.Messages{
		Timeout:      s.Config.Messages.Timeout,
		NotInstalled: s.Config.Messages.NotInstalled,
		ErrorPrefix:  s.Config.Messages.ErrorPrefix,
	}
}

// Resolve layers defaults, config file, environment and overrides, then
// normalizes and validates the result.
func Resolve(opts ResolveOptions) (Settings, error) {
	cfg := spec.Config{Version: DefaultVersion}
	source := ""

	path := strings.TrimSpace(opts.Path)
	if path == "" {
		found, err := FindConfigPath(opts.StartDir)
		switch {
		case err == nil:
			path = found
		case errors.Is(err, ErrConfigNotFound):
		default:
			return Settings{}, err
		}
	}
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return Settings{}, fmt.Errorf("resolve config path: %w", err)
		}
		loaded, err := read(abs)
		if err != nil {
			return Settings{}, err
		}
		cfg = loaded
		source = abs
	}

	if err := ApplyEnv(&cfg, opts.Lookup); err != nil {
		return Settings{}, err
	}
	opts.Overrides.apply(&cfg)
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Settings{}, err
	}
	if opts.Overrides.Timeout < 0 {
		return Settings{}, fmt.Errorf("timeout must be > 0, got %s", opts.Overrides.Timeout)
	}

	timeout := time.Duration(cfg.Runner.TimeoutSeconds) * time.Second
	if opts.Overrides.Timeout > 0 {
		timeout = opts.Overrides.Timeout
	}
	return Settings{Config: cfg, Timeout: timeout, Source: source}, nil
}

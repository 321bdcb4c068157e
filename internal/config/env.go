package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"llamachat/internal/spec"
)

// Environment variables that override config file values.
const (
	EnvPreset         = "LLAMACHAT_PRESET"
	EnvBinary         = "LLAMACHAT_BINARY"
	EnvModel          = "LLAMACHAT_MODEL"
	EnvScript         = "LLAMACHAT_SCRIPT"
	EnvTimeoutSeconds = "LLAMACHAT_TIMEOUT_SECONDS"
	EnvStrict         = "LLAMACHAT_STRICT"
)

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvLookup layers a dotenv file under the process environment.
// A missing dotenv file is not an error.
func EnvLookup(dotenvPath string) (LookupFunc, error) {
	return EnvLookupWith(dotenvPath, os.LookupEnv)
}

// EnvLookupWith layers a dotenv file under base. Non-blank values from base win.
func EnvLookupWith(dotenvPath string, base LookupFunc) (LookupFunc, error) {
	values := map[string]string{}
	if strings.TrimSpace(dotenvPath) != "" {
		read, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read env file %s: %w", dotenvPath, err)
		}
		if read != nil {
			values = read
		}
	}
	return func(key string) (string, bool) {
		if base != nil {
			if value, ok := base(key); ok && strings.TrimSpace(value) != "" {
				return value, true
			}
		}
		value, ok := values[key]
		return value, ok
	}, nil
}

// ApplyEnv overlays LLAMACHAT_* variables onto cfg.
func ApplyEnv(cfg *spec.Config, lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}
	get := func(key string) (string, bool) {
		value, ok := lookup(key)
		if !ok {
			return "", false
		}
		value = strings.TrimSpace(value)
		return value, value != ""
	}

	if value, ok := get(EnvPreset); ok {
		cfg.Runner.Preset = value
	}
	if value, ok := get(EnvBinary); ok {
		cfg.Runner.Binary = value
	}
	if value, ok := get(EnvModel); ok {
		cfg.Runner.Model = value
	}
	if value, ok := get(EnvScript); ok {
		cfg.Runner.Script = value
	}
	if value, ok := get(EnvTimeoutSeconds); ok {
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvTimeoutSeconds, value)
		}
		cfg.Runner.TimeoutSeconds = seconds
	}
	if value, ok := get(EnvStrict); ok {
		strict, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvStrict, value)
		}
		cfg.Strict = strict
	}
	return nil
}

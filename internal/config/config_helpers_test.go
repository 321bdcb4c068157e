package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeConfigFile writes body to <root>/.llamachat/config.yml and returns the path.
func writeConfigFile(t *testing.T, root, body string) string {
	t.Helper()
	path := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// mapLookup adapts a map to LookupFunc.
func mapLookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

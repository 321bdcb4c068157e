package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// WriteStub writes an executable POSIX shell script named name into dir and
// returns its path. Tests are skipped on platforms without /bin/sh.
func WriteStub(t testing.TB, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", path, err)
	}
	return path
}

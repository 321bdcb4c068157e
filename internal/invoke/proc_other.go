//go:build windows

package invoke

import "os/exec"

// configureProcessGroup keeps the default kill-on-cancel behavior.
func configureProcessGroup(cmd *exec.Cmd) {}

//go:build windows

// Package osutil holds small platform-specific process helpers
package osutil

import (
	"os"
	"os/exec"
)

// KillGroupOnCancel makes context cancellation kill cmd. Windows has no
// Unix-style process groups, so only the direct child is terminated.
func KillGroupOnCancel(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Kill)
	}
}

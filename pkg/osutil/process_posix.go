//go:build unix

// Package osutil holds small platform-specific process helpers
package osutil

import (
	"os/exec"
	"syscall"
)

// KillGroupOnCancel runs cmd in its own process group and makes context
// cancellation kill the whole group, so helpers spawned by cmd (for
// example git remote helpers) do not outlive it. Must be called before
// cmd.Start.
func KillGroupOnCancel(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}

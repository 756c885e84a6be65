//go:build !windows

package executable

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// configureProcessGroup makes cancellation kill the child's whole process
// group instead of the child alone. newGroup is false when the launcher
// already starts a new session.
func configureProcessGroup(cmd *exec.Cmd, newGroup bool) {
	if newGroup {
		if cmd.SysProcAttr == nil {
			cmd.SysProcAttr = &syscall.SysProcAttr{}
		}
		cmd.SysProcAttr.Setpgid = true
	}
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
}

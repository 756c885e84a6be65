//go:build windows

package executable

import "os/exec"

// configureProcessGroup keeps the default cancellation, which kills the
// child; descendants are released when the output stream is closed.
func configureProcessGroup(cmd *exec.Cmd, newGroup bool) {}

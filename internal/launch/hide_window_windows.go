//go:build windows

package launch

import (
	"os/exec"
	"syscall"
)

// hideWindow suppresses the console window flash when launching
// console-subsystem children. Preserves SysProcAttr fields already set.
func hideWindow(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.HideWindow = true
}

//go:build !windows

package launch

import "os/exec"

func hideWindow(cmd *exec.Cmd) {}

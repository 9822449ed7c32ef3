// Package launch starts applications and scripts configured on panel
// buttons. Children are detached: started, never waited on.
package launch

import (
	"fmt"
	"os/exec"
)

// Launcher spawns detached child processes.
type Launcher struct{}

// New returns a Launcher.
func New() *Launcher {
	return &Launcher{}
}

// OpenApplication launches target, optionally in workingDir.
func (l *Launcher) OpenApplication(target, workingDir string) error {
	cmd := exec.Command(target)
	cmd.Dir = workingDir
	return l.start(cmd)
}

// RunScript runs target with args.
func (l *Launcher) RunScript(target string, args ...string) error {
	return l.start(exec.Command(target, args...))
}

func (l *Launcher) start(cmd *exec.Cmd) error {
	hideWindow(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	// Reap the child in the background so it never zombies; its exit
	// status is not this program's concern.
	go cmd.Wait()
	return nil
}

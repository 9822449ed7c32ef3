// Package dispatch routes slider and button bindings to the native
// automation layer. All failures are converted to log lines here; a
// failed volume change or keystroke must never take the process down.
package dispatch

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/perhorst1234/dashboard-app/internal/keyseq"
)

// Action types a binding can carry.
const (
	ActionNoop         = "noop"
	ActionSystemVolume = "system_volume"
	ActionAppVolume    = "app_volume"
	ActionOpenApp      = "open_app"
	ActionRunScript    = "run_script"
	ActionKeystroke    = "send_keystroke"
)

// VolumeController is the audio capability the dispatcher drives.
type VolumeController interface {
	SetMasterVolume(percent int) error
	SetApplicationVolume(processHint string, percent int) (bool, error)
}

// KeyInjector sends a validated key sequence to the OS input queue.
type KeyInjector interface {
	SendSequence(tokens []string) error
}

// Launcher starts applications and scripts.
type Launcher interface {
	OpenApplication(target, workingDir string) error
	RunScript(target string, args ...string) error
}

// Dispatcher executes exactly one core operation per binding.
type Dispatcher struct {
	Audio    VolumeController
	Keys     KeyInjector
	Launcher Launcher
}

// PerformSlider executes a slider binding with the given percentage.
func (d *Dispatcher) PerformSlider(actionType, target string, percent int) {
	log := d.log(actionType, target)

	switch actionType {
	case ActionSystemVolume:
		if err := d.Audio.SetMasterVolume(percent); err != nil {
			log.Warn("[dispatch] master volume change failed", "percent", percent, "error", err)
		}
	case ActionAppVolume:
		matched, err := d.Audio.SetApplicationVolume(target, percent)
		if err != nil {
			log.Warn("[dispatch] app volume change failed", "percent", percent, "error", err)
			return
		}
		if !matched {
			// Not a failure: the app just is not playing audio now.
			log.Info("[dispatch] no active audio session for target")
		}
	default:
		log.Warn("[dispatch] unknown slider action")
	}
}

// PerformButton executes a button binding.
func (d *Dispatcher) PerformButton(actionType, target string, arguments []string) {
	log := d.log(actionType, target)

	switch actionType {
	case ActionNoop, "":
	case ActionOpenApp:
		if target == "" {
			return
		}
		if err := d.Launcher.OpenApplication(target, ""); err != nil {
			log.Warn("[dispatch] open application failed", "error", err)
		}
	case ActionRunScript:
		if target == "" {
			return
		}
		if err := d.Launcher.RunScript(target, arguments...); err != nil {
			log.Warn("[dispatch] run script failed", "error", err)
		}
	case ActionKeystroke:
		if target == "" {
			return
		}
		if err := d.Keys.SendSequence(keyseq.Split(target)); err != nil {
			log.Warn("[dispatch] keystroke failed", "error", err)
		}
	default:
		log.Warn("[dispatch] unknown button action")
	}
}

// log returns a logger carrying a short correlation id so the lines of
// one dispatch can be grouped in interleaved output.
func (d *Dispatcher) log(actionType, target string) *slog.Logger {
	return slog.With("dispatch", uuid.NewString()[:8], "action", actionType, "target", target)
}

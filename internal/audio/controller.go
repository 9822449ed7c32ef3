package audio

import (
	"errors"
	"fmt"
)

// The audio subsystem is modeled as one typed interface per platform
// capability. Each acquired value must be released exactly once, in
// reverse acquisition order, on every exit path; the Controller methods
// below own that discipline so the platform bindings stay thin.

// platform opens one scoped connection to the OS audio subsystem.
// Exactly one implementation exists per build target; tests install a
// fake with fault injection.
type platform interface {
	connect() (audioSystem, error)
}

// audioSystem is one initialized audio subsystem connection.
type audioSystem interface {
	defaultRenderEndpoint() (device, error)
	close()
}

// device is the default render endpoint.
type device interface {
	endpointVolume() (endpointVolume, error)
	sessionManager() (sessionManager, error)
	release()
}

// endpointVolume controls the endpoint's master volume.
type endpointVolume interface {
	setMasterVolumeScalar(level float32) error
	release()
}

// sessionManager hands out the session enumerator for a device.
type sessionManager interface {
	sessionEnumerator() (sessionEnumerator, error)
	release()
}

// sessionEnumerator walks the device's audio sessions.
type sessionEnumerator interface {
	count() (int, error)
	session(index int) (sessionControl, error)
	release()
}

// sessionControl is a single per-process audio session. processName
// returns ok=false when the owning process cannot be resolved (it may
// have exited mid-enumeration, or be the system sounds session).
type sessionControl interface {
	processName() (name string, ok bool)
	setVolume(level float32) error
	release()
}

// Controller mediates between percentage-based volume requests and the
// platform's per-endpoint and per-session volume controls. Stateless
// between calls and safe to reuse; it holds no OS resources while idle.
type Controller struct {
	platform platform
}

// NewController returns a Controller backed by the native audio
// subsystem of the current build target.
func NewController() *Controller {
	return &Controller{platform: newPlatform()}
}

// SetMasterVolume clamps percent to [0, 100] and sets the default
// render endpoint's scalar volume. Returns ErrBackendUnavailable,
// ErrNoEndpoint, or an *OperationError.
func (c *Controller) SetMasterVolume(percent int) error {
	level := levelFromPercent(percent)

	sys, err := c.platform.connect()
	if err != nil {
		return err
	}
	defer sys.close()

	dev, err := sys.defaultRenderEndpoint()
	if err != nil {
		return err
	}
	defer dev.release()

	vol, err := dev.endpointVolume()
	if err != nil {
		return err
	}
	defer vol.release()

	return vol.setMasterVolumeScalar(level)
}

// SetApplicationVolume sets the volume of every audio session whose
// owning process matches processHint (see MatchProcess). Returns true
// iff at least one session matched; a false result is not an error and
// callers should treat it as informational.
func (c *Controller) SetApplicationVolume(processHint string, percent int) (bool, error) {
	level := levelFromPercent(percent)
	matched := false

	err := c.forEachSession(func(sess sessionControl) error {
		name, ok := sess.processName()
		if !ok || !MatchProcess(processHint, name) {
			return nil
		}
		if err := sess.setVolume(level); err != nil {
			return fmt.Errorf("set volume for %s: %w", name, err)
		}
		matched = true
		return nil
	})
	if err != nil {
		return matched, err
	}
	return matched, nil
}

// ListSessions returns the distinct process names currently holding
// audio sessions, de-duplicated and sorted case-insensitively. On build
// targets without an audio backend the result is empty, not an error.
func (c *Controller) ListSessions() ([]string, error) {
	var names []string
	err := c.forEachSession(func(sess sessionControl) error {
		if name, ok := sess.processName(); ok {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBackendUnavailable) {
			return nil, nil
		}
		return nil, err
	}
	return dedupSortedNames(names), nil
}

// forEachSession performs the full acquire chain down to individual
// sessions, invoking visit for each one. Each session is released
// before the next is fetched; outer resources unwind via defer.
func (c *Controller) forEachSession(visit func(sessionControl) error) error {
	sys, err := c.platform.connect()
	if err != nil {
		return err
	}
	defer sys.close()

	dev, err := sys.defaultRenderEndpoint()
	if err != nil {
		return err
	}
	defer dev.release()

	mgr, err := dev.sessionManager()
	if err != nil {
		return err
	}
	defer mgr.release()

	enum, err := mgr.sessionEnumerator()
	if err != nil {
		return err
	}
	defer enum.release()

	n, err := enum.count()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		sess, err := enum.session(i)
		if err != nil {
			return err
		}
		visitErr := visit(sess)
		sess.release()
		if visitErr != nil {
			return visitErr
		}
	}
	return nil
}

//go:build !windows

package singleinstance

import "errors"

// ErrAlreadyRunning is returned by Acquire when another panel process
// holds the mutex.
var ErrAlreadyRunning = errors.New("another panel instance is already running")

// Lock is a no-op on platforms without named mutexes; the serial port
// open acts as the effective exclusivity check there.
type Lock struct{}

// Acquire always succeeds on non-Windows targets.
func Acquire(name string) (*Lock, error) {
	if name == "" {
		return nil, errors.New("mutex name is required")
	}
	return &Lock{}, nil
}

// Release is a no-op. Idempotent and nil-safe.
func (l *Lock) Release() error {
	return nil
}

//go:build windows

package singleinstance

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

// ErrAlreadyRunning is returned by Acquire when another panel process
// holds the mutex.
var ErrAlreadyRunning = errors.New("another panel instance is already running")

// Lock holds a Windows named mutex. The kernel releases it when the
// owning process exits, so a crashed panel never blocks the next start.
type Lock struct {
	handle windows.Handle
}

// Acquire takes the system-wide named mutex for this application.
// A second instance would contend for the serial port and the control
// pipe name, so it must refuse to start.
func Acquire(name string) (*Lock, error) {
	if name == "" {
		return nil, errors.New("mutex name is required")
	}
	nameUTF16, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("invalid mutex name %q: %w", name, err)
	}

	handle, err := windows.CreateMutex(nil, true, nameUTF16)
	if err == windows.ERROR_ALREADY_EXISTS {
		if handle != 0 {
			windows.CloseHandle(handle)
		}
		return nil, ErrAlreadyRunning
	}
	if err != nil {
		if handle != 0 {
			windows.CloseHandle(handle)
		}
		return nil, fmt.Errorf("CreateMutex %q: %w", name, err)
	}
	return &Lock{handle: handle}, nil
}

// Release closes the mutex handle. Idempotent and nil-safe.
func (l *Lock) Release() error {
	if l == nil || l.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(l.handle)
	l.handle = 0
	return err
}

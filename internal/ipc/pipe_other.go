//go:build !windows

package ipc

import (
	"errors"
	"net"
)

// ErrUnsupported: the control pipe is a Windows named-pipe surface.
var ErrUnsupported = errors.New("control pipe is only available on Windows")

func listenPipe(pipeName string) (net.Listener, error) {
	return nil, ErrUnsupported
}

// Dial connects to a running panel's control pipe.
func Dial(pipeName string) (net.Conn, error) {
	return nil, ErrUnsupported
}

//go:build windows

package ipc

import (
	"net"

	"github.com/Microsoft/go-winio"
)

func listenPipe(pipeName string) (net.Listener, error) {
	// Default pipe security grants access to the creating user only,
	// which is exactly the scope a per-user control surface needs.
	return winio.ListenPipe(pipeName, &winio.PipeConfig{
		MessageMode:      false,
		InputBufferSize:  maxRequestBytes,
		OutputBufferSize: maxRequestBytes,
	})
}

// Dial connects to a running panel's control pipe.
func Dial(pipeName string) (net.Conn, error) {
	if pipeName == "" {
		pipeName = DefaultPipeName()
	}
	return winio.DialPipe(pipeName, nil)
}

package hardware

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"go.bug.st/serial"
)

// readBuffer bounds how many parsed frames may queue before the oldest
// are dropped; a stalled consumer must not wedge the serial goroutine.
const readBuffer = 64

// openPort is a seam so tests can substitute an in-memory port.
var openPort = func(portName string, baudrate int) (io.ReadCloser, error) {
	return serial.Open(portName, &serial.Mode{BaudRate: baudrate})
}

// Reader streams parsed panel frames from a serial port.
type Reader struct {
	port     io.ReadCloser
	messages chan Message

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// Open connects to the panel and starts the background read loop.
func Open(portName string, baudrate int) (*Reader, error) {
	port, err := openPort(portName, baudrate)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}

	r := &Reader{
		port:     port,
		messages: make(chan Message, readBuffer),
		done:     make(chan struct{}),
	}
	go r.run(portName)
	return r, nil
}

// Messages delivers parsed frames. The channel is closed when the
// reader stops, whether via Stop or a port error.
func (r *Reader) Messages() <-chan Message {
	return r.messages
}

// Stop closes the port, which unblocks the read loop, and waits for it
// to exit. Safe to call more than once.
func (r *Reader) Stop() {
	r.mu.Lock()
	alreadyClosed := r.closed
	r.closed = true
	r.mu.Unlock()

	if !alreadyClosed {
		if err := r.port.Close(); err != nil {
			slog.Warn("[hardware] serial port close failed", "error", err)
		}
	}
	<-r.done
}

func (r *Reader) run(portName string) {
	defer close(r.done)
	defer close(r.messages)

	scanner := bufio.NewScanner(r.port)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		msg, err := parseFrame(line)
		if err != nil {
			slog.Debug("[hardware] dropping malformed frame", "line", line, "error", err)
			continue
		}
		select {
		case r.messages <- msg:
		default:
			// Consumer is behind; drop the oldest frame so the
			// freshest slider positions win.
			select {
			case <-r.messages:
			default:
			}
			select {
			case r.messages <- msg:
			default:
			}
		}
	}

	if err := scanner.Err(); err != nil && !r.stopping() && !errors.Is(err, io.EOF) {
		slog.Warn("[hardware] serial read loop ended", "port", portName, "error", err)
	}
}

func (r *Reader) stopping() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

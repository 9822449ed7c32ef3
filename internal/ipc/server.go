package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"
)

const (
	// maxRequestBytes bounds one request line; control commands are
	// tiny and anything larger is garbage or abuse.
	maxRequestBytes = 64 * 1024

	connDeadline = 30 * time.Second
)

// Server accepts control connections on a named pipe: one JSON request
// per connection, one JSON response back.
type Server struct {
	pipeName string
	executor Executor

	mu       sync.Mutex
	listener net.Listener
	started  bool
	wg       sync.WaitGroup
}

// NewServer constructs a Server; an empty pipeName selects the
// per-user default.
func NewServer(pipeName string, executor Executor) *Server {
	if pipeName == "" {
		pipeName = DefaultPipeName()
	}
	return &Server{pipeName: pipeName, executor: executor}
}

// PipeName returns the listen pipe path.
func (s *Server) PipeName() string {
	return s.pipeName
}

// Start begins listening and serving in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return errors.New("control server already started")
	}
	if s.executor == nil {
		return errors.New("control server requires an executor")
	}

	listener, err := listenPipe(s.pipeName)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.pipeName, err)
	}

	s.listener = listener
	s.started = true
	s.wg.Add(1)
	go s.acceptLoop(listener)
	return nil
}

// Stop closes the listener and waits for in-flight connections.
func (s *Server) Stop() {
	s.mu.Lock()
	listener := s.listener
	s.listener = nil
	s.started = false
	s.mu.Unlock()

	if listener != nil {
		listener.Close()
	}
	s.wg.Wait()
}

func (s *Server) acceptLoop(listener net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := listener.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				slog.Warn("[ipc] accept failed", "error", err)
			}
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(connDeadline))

	reader := bufio.NewReaderSize(io.LimitReader(conn, maxRequestBytes), 4096)
	line, err := reader.ReadBytes('\n')
	if err != nil && (len(line) == 0 || !errors.Is(err, io.EOF)) {
		slog.Warn("[ipc] request read failed", "error", err)
		return
	}

	resp := s.respond(line)
	raw, err := encodeResponse(resp)
	if err != nil {
		slog.Warn("[ipc] response encode failed", "error", err)
		return
	}
	if _, err := conn.Write(raw); err != nil {
		slog.Warn("[ipc] response write failed", "error", err)
	}
}

func (s *Server) respond(line []byte) Response {
	req, err := decodeRequest(line)
	if err != nil {
		return Response{Error: err.Error()}
	}
	return s.executor.Execute(req)
}

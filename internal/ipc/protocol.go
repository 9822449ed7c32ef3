// Package ipc exposes the panel over a per-user named pipe so external
// tools (and the excluded configuration UI) can trigger actions and
// inspect audio sessions without linking against this process.
package ipc

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"strings"
)

const defaultPipePrefix = `\\.\pipe\dashboard-app-`

// Request is one control command. Action mirrors the binding record the
// dispatcher consumes: system_volume and app_volume carry Value (and a
// Target hint for app_volume); send_keystroke carries Target as a
// "+"-separated sequence; open_app and run_script carry Target and
// Arguments; list_sessions takes nothing.
type Request struct {
	Action    string   `json:"action"`
	Target    string   `json:"target,omitempty"`
	Value     int      `json:"value,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
}

// Response reports the outcome of a Request.
type Response struct {
	OK       bool     `json:"ok"`
	Error    string   `json:"error,omitempty"`
	Sessions []string `json:"sessions,omitempty"`
}

// Executor handles one control request.
type Executor interface {
	Execute(req Request) Response
}

// DefaultPipeName builds the per-user pipe path.
func DefaultPipeName() string {
	username := strings.TrimSpace(os.Getenv("USERNAME"))
	if username == "" {
		if current, err := user.Current(); err == nil {
			username = current.Username
		}
	}
	return defaultPipePrefix + sanitizeUsername(username)
}

// sanitizeUsername keeps the pipe-name-safe subset of a username;
// DOMAIN\user becomes domain-user.
func sanitizeUsername(username string) string {
	if username == "" {
		return "default"
	}
	var b strings.Builder
	for _, r := range strings.ToLower(username) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

func encodeResponse(resp Response) ([]byte, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return append(raw, '\n'), nil
}

func decodeRequest(raw []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	if strings.TrimSpace(req.Action) == "" {
		return Request{}, fmt.Errorf("request has no action")
	}
	return req, nil
}

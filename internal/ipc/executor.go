package ipc

import (
	"fmt"

	"github.com/perhorst1234/dashboard-app/internal/dispatch"
)

// SessionLister is the one audio capability the control surface reads
// rather than writes.
type SessionLister interface {
	ListSessions() ([]string, error)
}

// ActionExecutor routes control requests through the dispatcher, the
// same path hardware input takes.
type ActionExecutor struct {
	Dispatcher *dispatch.Dispatcher
	Sessions   SessionLister
}

// Execute handles one request. Dispatch-backed actions report OK once
// routed; their platform-level failures surface in the log, matching
// button and slider behavior.
func (e *ActionExecutor) Execute(req Request) Response {
	switch req.Action {
	case dispatch.ActionSystemVolume, dispatch.ActionAppVolume:
		e.Dispatcher.PerformSlider(req.Action, req.Target, req.Value)
		return Response{OK: true}

	case dispatch.ActionKeystroke, dispatch.ActionOpenApp, dispatch.ActionRunScript:
		if req.Target == "" {
			return Response{Error: "action requires a target"}
		}
		e.Dispatcher.PerformButton(req.Action, req.Target, req.Arguments)
		return Response{OK: true}

	case "list_sessions":
		names, err := e.Sessions.ListSessions()
		if err != nil {
			return Response{Error: err.Error()}
		}
		return Response{OK: true, Sessions: names}

	default:
		return Response{Error: fmt.Sprintf("unknown action %q", req.Action)}
	}
}

package ipc

import (
	"bufio"
	"encoding/json"
	"net"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/perhorst1234/dashboard-app/internal/dispatch"
)

type fakeAudio struct {
	masterCalls []int
	appHints    []string
}

func (f *fakeAudio) SetMasterVolume(percent int) error {
	f.masterCalls = append(f.masterCalls, percent)
	return nil
}

func (f *fakeAudio) SetApplicationVolume(hint string, percent int) (bool, error) {
	f.appHints = append(f.appHints, hint)
	return true, nil
}

type fakeKeys struct {
	sequences [][]string
}

func (f *fakeKeys) SendSequence(tokens []string) error {
	f.sequences = append(f.sequences, tokens)
	return nil
}

type fakeLauncher struct {
	opened []string
}

func (f *fakeLauncher) OpenApplication(target, workingDir string) error {
	f.opened = append(f.opened, target)
	return nil
}

func (f *fakeLauncher) RunScript(target string, args ...string) error {
	return nil
}

type fakeSessions struct {
	names []string
	err   error
}

func (f *fakeSessions) ListSessions() ([]string, error) {
	return f.names, f.err
}

func newTestExecutor() (*ActionExecutor, *fakeAudio, *fakeKeys, *fakeLauncher, *fakeSessions) {
	audio := &fakeAudio{}
	keys := &fakeKeys{}
	launcher := &fakeLauncher{}
	sessions := &fakeSessions{names: []string{"chrome.exe", "Spotify.exe"}}
	ex := &ActionExecutor{
		Dispatcher: &dispatch.Dispatcher{Audio: audio, Keys: keys, Launcher: launcher},
		Sessions:   sessions,
	}
	return ex, audio, keys, launcher, sessions
}

func TestExecutorSystemVolume(t *testing.T) {
	ex, audio, _, _, _ := newTestExecutor()
	resp := ex.Execute(Request{Action: "system_volume", Value: 55})
	if !resp.OK {
		t.Fatalf("resp = %+v", resp)
	}
	if !slices.Equal(audio.masterCalls, []int{55}) {
		t.Fatalf("master calls = %v", audio.masterCalls)
	}
}

func TestExecutorAppVolume(t *testing.T) {
	ex, audio, _, _, _ := newTestExecutor()
	resp := ex.Execute(Request{Action: "app_volume", Target: "spotify", Value: 20})
	if !resp.OK {
		t.Fatalf("resp = %+v", resp)
	}
	if !slices.Equal(audio.appHints, []string{"spotify"}) {
		t.Fatalf("app hints = %v", audio.appHints)
	}
}

func TestExecutorKeystroke(t *testing.T) {
	ex, _, keys, _, _ := newTestExecutor()
	resp := ex.Execute(Request{Action: "send_keystroke", Target: "ctrl+shift+a"})
	if !resp.OK {
		t.Fatalf("resp = %+v", resp)
	}
	if len(keys.sequences) != 1 || !slices.Equal(keys.sequences[0], []string{"ctrl", "shift", "a"}) {
		t.Fatalf("sequences = %v", keys.sequences)
	}
}

func TestExecutorOpenAppRequiresTarget(t *testing.T) {
	ex, _, _, launcher, _ := newTestExecutor()
	resp := ex.Execute(Request{Action: "open_app"})
	if resp.OK || resp.Error == "" {
		t.Fatalf("resp = %+v, want target error", resp)
	}
	if len(launcher.opened) != 0 {
		t.Fatalf("opened = %v, want none", launcher.opened)
	}
}

func TestExecutorListSessions(t *testing.T) {
	ex, _, _, _, _ := newTestExecutor()
	resp := ex.Execute(Request{Action: "list_sessions"})
	if !resp.OK {
		t.Fatalf("resp = %+v", resp)
	}
	if !slices.Equal(resp.Sessions, []string{"chrome.exe", "Spotify.exe"}) {
		t.Fatalf("sessions = %v", resp.Sessions)
	}
}

func TestExecutorUnknownAction(t *testing.T) {
	ex, _, _, _, _ := newTestExecutor()
	resp := ex.Execute(Request{Action: "reboot"})
	if resp.OK || !strings.Contains(resp.Error, "unknown action") {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestHandleConnRoundTrip(t *testing.T) {
	ex, audio, _, _, _ := newTestExecutor()
	s := NewServer("", ex)

	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		s.handleConn(server)
		close(done)
	}()

	if _, err := client.Write([]byte(`{"action":"system_volume","value":70}` + "\n")); err != nil {
		t.Fatal(err)
	}

	var resp Response
	if err := json.NewDecoder(bufio.NewReader(client)).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK {
		t.Fatalf("resp = %+v", resp)
	}
	client.Close()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handleConn did not finish")
	}
	if !slices.Equal(audio.masterCalls, []int{70}) {
		t.Fatalf("master calls = %v", audio.masterCalls)
	}
}

func TestHandleConnMalformedRequest(t *testing.T) {
	ex, _, _, _, _ := newTestExecutor()
	s := NewServer("", ex)

	client, server := net.Pipe()
	go s.handleConn(server)

	if _, err := client.Write([]byte("not json\n")); err != nil {
		t.Fatal(err)
	}

	var resp Response
	if err := json.NewDecoder(bufio.NewReader(client)).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OK || resp.Error == "" {
		t.Fatalf("resp = %+v, want decode error", resp)
	}
	client.Close()
}

func TestDefaultPipeNameIsSanitized(t *testing.T) {
	t.Setenv("USERNAME", `CORP\Some User!`)
	name := DefaultPipeName()
	if !strings.HasPrefix(name, defaultPipePrefix) {
		t.Fatalf("name = %q", name)
	}
	suffix := strings.TrimPrefix(name, defaultPipePrefix)
	if suffix != "corp-some-user-" {
		t.Fatalf("sanitized suffix = %q", suffix)
	}
}

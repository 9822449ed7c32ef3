package audio

import (
	"errors"
	"slices"
	"testing"
)

// fakePlatform implements every capability interface with acquire and
// release counters plus per-step fault injection, so tests can verify
// both operation semantics and the release-parity invariant.
type fakePlatform struct {
	sessions []*fakeSession

	failConnect     bool
	failEndpoint    error
	failVolume      bool
	failSetMaster   bool
	failManager     bool
	failEnumerator  bool
	failCount       bool
	failSessionAt   int // 1-based index of session fetch to fail; 0 = never
	masterSetLevels []float32

	acquired map[string]int
	released map[string]int
}

func newFakePlatform(sessions ...*fakeSession) *fakePlatform {
	return &fakePlatform{
		sessions: sessions,
		acquired: map[string]int{},
		released: map[string]int{},
	}
}

// verifyBalanced asserts every acquired resource was released.
func (p *fakePlatform) verifyBalanced(t *testing.T) {
	t.Helper()
	for resource, n := range p.acquired {
		if p.released[resource] != n {
			t.Fatalf("resource %s: acquired %d, released %d", resource, n, p.released[resource])
		}
	}
	for resource, n := range p.released {
		if p.acquired[resource] != n {
			t.Fatalf("resource %s: released %d but acquired %d", resource, n, p.acquired[resource])
		}
	}
}

func (p *fakePlatform) connect() (audioSystem, error) {
	if p.failConnect {
		return nil, ErrBackendUnavailable
	}
	p.acquired["system"]++
	return &fakeSystem{p: p}, nil
}

type fakeSystem struct {
	p *fakePlatform
}

func (s *fakeSystem) defaultRenderEndpoint() (device, error) {
	if s.p.failEndpoint != nil {
		return nil, s.p.failEndpoint
	}
	s.p.acquired["device"]++
	return &fakeDevice{p: s.p}, nil
}

func (s *fakeSystem) close() { s.p.released["system"]++ }

type fakeDevice struct {
	p *fakePlatform
}

func (d *fakeDevice) endpointVolume() (endpointVolume, error) {
	if d.p.failVolume {
		return nil, &OperationError{Op: "IMMDevice::Activate", Code: 0x80004005}
	}
	d.p.acquired["endpointVolume"]++
	return &fakeEndpointVolume{p: d.p}, nil
}

func (d *fakeDevice) sessionManager() (sessionManager, error) {
	if d.p.failManager {
		return nil, &OperationError{Op: "IMMDevice::Activate", Code: 0x80004005}
	}
	d.p.acquired["sessionManager"]++
	return &fakeSessionManager{p: d.p}, nil
}

func (d *fakeDevice) release() { d.p.released["device"]++ }

type fakeEndpointVolume struct {
	p *fakePlatform
}

func (v *fakeEndpointVolume) setMasterVolumeScalar(level float32) error {
	if v.p.failSetMaster {
		return &OperationError{Op: "SetMasterVolumeLevelScalar", Code: 0x80070005}
	}
	v.p.masterSetLevels = append(v.p.masterSetLevels, level)
	return nil
}

func (v *fakeEndpointVolume) release() { v.p.released["endpointVolume"]++ }

type fakeSessionManager struct {
	p *fakePlatform
}

func (m *fakeSessionManager) sessionEnumerator() (sessionEnumerator, error) {
	if m.p.failEnumerator {
		return nil, &OperationError{Op: "GetSessionEnumerator", Code: 0x80004005}
	}
	m.p.acquired["sessionEnumerator"]++
	return &fakeSessionEnumerator{p: m.p}, nil
}

func (m *fakeSessionManager) release() { m.p.released["sessionManager"]++ }

type fakeSessionEnumerator struct {
	p *fakePlatform
}

func (e *fakeSessionEnumerator) count() (int, error) {
	if e.p.failCount {
		return 0, &OperationError{Op: "GetCount", Code: 0x80004005}
	}
	return len(e.p.sessions), nil
}

func (e *fakeSessionEnumerator) session(index int) (sessionControl, error) {
	if e.p.failSessionAt == index+1 {
		return nil, &OperationError{Op: "GetSession", Code: 0x80004005}
	}
	e.p.acquired["session"]++
	sess := e.p.sessions[index]
	sess.p = e.p
	return sess, nil
}

func (e *fakeSessionEnumerator) release() { e.p.released["sessionEnumerator"]++ }

type fakeSession struct {
	p *fakePlatform

	name          string
	nameResolves  bool
	failSetVolume bool
	setLevels     []float32
}

func session(name string) *fakeSession {
	return &fakeSession{name: name, nameResolves: true}
}

func orphanSession() *fakeSession {
	return &fakeSession{nameResolves: false}
}

func (s *fakeSession) processName() (string, bool) {
	if !s.nameResolves {
		return "", false
	}
	return s.name, true
}

func (s *fakeSession) setVolume(level float32) error {
	if s.failSetVolume {
		return &OperationError{Op: "SetMasterVolume", Code: 0x80070005}
	}
	s.setLevels = append(s.setLevels, level)
	return nil
}

func (s *fakeSession) release() { s.p.released["session"]++ }

func controllerWith(p *fakePlatform) *Controller {
	return &Controller{platform: p}
}

func TestClampPercent(t *testing.T) {
	tests := []struct {
		name    string
		percent int
		want    int
	}{
		{name: "above range", percent: 150, want: 100},
		{name: "below range", percent: -20, want: 0},
		{name: "in range", percent: 47, want: 47},
		{name: "lower bound", percent: 0, want: 0},
		{name: "upper bound", percent: 100, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampPercent(tt.percent); got != tt.want {
				t.Fatalf("ClampPercent(%d) = %d, want %d", tt.percent, got, tt.want)
			}
		})
	}
}

func TestLevelFromPercent(t *testing.T) {
	tests := []struct {
		percent int
		want    float32
	}{
		{percent: 150, want: 1.0},
		{percent: -20, want: 0.0},
		{percent: 47, want: 0.47},
		{percent: 100, want: 1.0},
	}
	for _, tt := range tests {
		if got := levelFromPercent(tt.percent); got != tt.want {
			t.Fatalf("levelFromPercent(%d) = %v, want %v", tt.percent, got, tt.want)
		}
	}
}

func TestMatchProcess(t *testing.T) {
	tests := []struct {
		name string
		hint string
		proc string
		want bool
	}{
		{name: "hint without extension", hint: "chrome", proc: "chrome.exe", want: true},
		{name: "hint with extension", hint: "chrome.exe", proc: "chrome", want: true},
		{name: "case insensitive", hint: "spotify", proc: "Spotify.exe", want: true},
		{name: "substring", hint: "cod", proc: "discord.exe", want: true},
		{name: "no match", hint: "firefox", proc: "chrome.exe", want: false},
		{name: "exact", hint: "chrome.exe", proc: "chrome.exe", want: true},
		{name: "empty process name", hint: "chrome", proc: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchProcess(tt.hint, tt.proc); got != tt.want {
				t.Fatalf("MatchProcess(%q, %q) = %v, want %v", tt.hint, tt.proc, got, tt.want)
			}
		})
	}
}

func TestSetMasterVolume(t *testing.T) {
	p := newFakePlatform()
	c := controllerWith(p)

	if err := c.SetMasterVolume(150); err != nil {
		t.Fatalf("SetMasterVolume = %v", err)
	}
	if !slices.Equal(p.masterSetLevels, []float32{1.0}) {
		t.Fatalf("set levels = %v, want [1.0]", p.masterSetLevels)
	}
	p.verifyBalanced(t)
}

func TestSetMasterVolumeBackendUnavailable(t *testing.T) {
	p := newFakePlatform()
	p.failConnect = true
	c := controllerWith(p)

	if err := c.SetMasterVolume(50); !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("SetMasterVolume = %v, want ErrBackendUnavailable", err)
	}
	p.verifyBalanced(t)
}

func TestSetMasterVolumeNoEndpoint(t *testing.T) {
	p := newFakePlatform()
	p.failEndpoint = ErrNoEndpoint
	c := controllerWith(p)

	if err := c.SetMasterVolume(50); !errors.Is(err, ErrNoEndpoint) {
		t.Fatalf("SetMasterVolume = %v, want ErrNoEndpoint", err)
	}
	p.verifyBalanced(t)
}

func TestSetMasterVolumeOperationFailure(t *testing.T) {
	p := newFakePlatform()
	p.failSetMaster = true
	c := controllerWith(p)

	err := c.SetMasterVolume(50)
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("SetMasterVolume = %v, want *OperationError", err)
	}
	if opErr.Code != 0x80070005 {
		t.Fatalf("code = 0x%08X, want 0x80070005", opErr.Code)
	}
	p.verifyBalanced(t)
}

func TestSetApplicationVolumeMatchesAllSessions(t *testing.T) {
	chrome1 := session("chrome.exe")
	chrome2 := session("chrome.exe")
	spotify := session("Spotify.exe")
	p := newFakePlatform(chrome1, chrome2, spotify)
	c := controllerWith(p)

	matched, err := c.SetApplicationVolume("chrome", 40)
	if err != nil {
		t.Fatalf("SetApplicationVolume = %v", err)
	}
	if !matched {
		t.Fatal("matched = false, want true")
	}
	for _, sess := range []*fakeSession{chrome1, chrome2} {
		if !slices.Equal(sess.setLevels, []float32{0.4}) {
			t.Fatalf("%s levels = %v, want [0.4]", sess.name, sess.setLevels)
		}
	}
	if len(spotify.setLevels) != 0 {
		t.Fatalf("spotify levels = %v, want none", spotify.setLevels)
	}
	p.verifyBalanced(t)
}

func TestSetApplicationVolumeNoMatchIsNotAnError(t *testing.T) {
	p := newFakePlatform(session("chrome.exe"))
	c := controllerWith(p)

	matched, err := c.SetApplicationVolume("firefox", 40)
	if err != nil {
		t.Fatalf("SetApplicationVolume = %v, want nil", err)
	}
	if matched {
		t.Fatal("matched = true, want false")
	}
	p.verifyBalanced(t)
}

func TestSetApplicationVolumeSkipsUnresolvableProcesses(t *testing.T) {
	// A session whose process exited mid-enumeration is skipped, not
	// an error.
	p := newFakePlatform(orphanSession(), session("chrome.exe"))
	c := controllerWith(p)

	matched, err := c.SetApplicationVolume("chrome", 40)
	if err != nil || !matched {
		t.Fatalf("SetApplicationVolume = (%v, %v), want (true, nil)", matched, err)
	}
	p.verifyBalanced(t)
}

func TestSetApplicationVolumeSessionVolumeFailure(t *testing.T) {
	bad := session("chrome.exe")
	bad.failSetVolume = true
	p := newFakePlatform(bad)
	c := controllerWith(p)

	_, err := c.SetApplicationVolume("chrome", 40)
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("SetApplicationVolume = %v, want *OperationError", err)
	}
	p.verifyBalanced(t)
}

func TestListSessionsDedupAndSort(t *testing.T) {
	p := newFakePlatform(
		session("Spotify.exe"),
		session("chrome.exe"),
		session("CHROME.EXE"), // two tabs, differing case
		orphanSession(),
		session("Discord.exe"),
	)
	c := controllerWith(p)

	names, err := c.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions = %v", err)
	}
	want := []string{"chrome.exe", "Discord.exe", "Spotify.exe"}
	if !slices.Equal(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	p.verifyBalanced(t)
}

func TestListSessionsBackendUnavailableIsEmpty(t *testing.T) {
	p := newFakePlatform()
	p.failConnect = true
	c := controllerWith(p)

	names, err := c.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions = %v, want nil error on unsupported platform", err)
	}
	if len(names) != 0 {
		t.Fatalf("names = %v, want empty", names)
	}
}

func TestReleaseParityUnderInjectedFailures(t *testing.T) {
	// Every failure point partway through the acquire chain must still
	// leave acquire/release counts balanced for each resource type.
	mutations := []struct {
		name   string
		mutate func(*fakePlatform)
	}{
		{name: "endpoint resolution fails", mutate: func(p *fakePlatform) { p.failEndpoint = ErrNoEndpoint }},
		{name: "endpoint volume activation fails", mutate: func(p *fakePlatform) { p.failVolume = true }},
		{name: "master volume set fails", mutate: func(p *fakePlatform) { p.failSetMaster = true }},
		{name: "session manager activation fails", mutate: func(p *fakePlatform) { p.failManager = true }},
		{name: "session enumerator fails", mutate: func(p *fakePlatform) { p.failEnumerator = true }},
		{name: "session count fails", mutate: func(p *fakePlatform) { p.failCount = true }},
		{name: "second session fetch fails", mutate: func(p *fakePlatform) { p.failSessionAt = 2 }},
		{name: "session volume set fails", mutate: func(p *fakePlatform) { p.sessions[0].failSetVolume = true }},
	}

	operations := []struct {
		name string
		run  func(*Controller)
	}{
		{name: "SetMasterVolume", run: func(c *Controller) { _ = c.SetMasterVolume(30) }},
		{name: "SetApplicationVolume", run: func(c *Controller) { _, _ = c.SetApplicationVolume("chrome", 30) }},
		{name: "ListSessions", run: func(c *Controller) { _, _ = c.ListSessions() }},
	}

	for _, op := range operations {
		for _, mut := range mutations {
			t.Run(op.name+"/"+mut.name, func(t *testing.T) {
				p := newFakePlatform(session("chrome.exe"), session("Spotify.exe"))
				mut.mutate(p)
				op.run(controllerWith(p))
				p.verifyBalanced(t)
			})
		}
	}
}

func TestDedupSortedNames(t *testing.T) {
	got := dedupSortedNames([]string{"b.exe", "A.exe", "a.exe", "B.EXE"})
	want := []string{"A.exe", "b.exe"}
	if !slices.Equal(got, want) {
		t.Fatalf("dedupSortedNames = %v, want %v", got, want)
	}
}

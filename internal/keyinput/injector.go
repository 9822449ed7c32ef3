// Package keyinput turns human-readable key tokens into synthetic
// keyboard events and submits them to the OS input queue.
package keyinput

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/perhorst1234/dashboard-app/internal/keyseq"
)

// ErrBackendUnavailable is returned when the platform has no input
// injection facility (any non-Windows build).
var ErrBackendUnavailable = errors.New("key injection backend is unavailable on this platform")

// UnsupportedKeyError reports a token that cannot be resolved to a
// virtual-key code. No events are sent when any token is unsupported.
type UnsupportedKeyError struct {
	Token string
}

func (e *UnsupportedKeyError) Error() string {
	return fmt.Sprintf("unsupported key token %q", e.Token)
}

// sender submits a single key event to the OS. keyUp false means
// key-down. One implementation exists per platform; tests install a
// recording fake.
type sender interface {
	send(vk uint16, keyUp bool) error
}

// Injector sends validated key sequences as down/up event pairs.
// Stateless between calls; safe to reuse.
type Injector struct {
	sender sender
}

// New returns an Injector backed by the platform input facility.
func New() *Injector {
	return &Injector{sender: newSender()}
}

// SendSequence resolves tokens to virtual keys and emits the
// conventional hotkey shape: modifiers down in canonical order, main
// keys down in sequence order, main keys up in reverse, modifiers up in
// reverse. An empty sequence is a no-op. If any token is unresolvable
// the whole sequence is aborted before any event is sent.
//
// Individual send failures are logged and the remaining events are
// still attempted; aborting midway would guarantee a stuck modifier,
// continuing at least gives the release events a chance to land.
func (in *Injector) SendSequence(tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	ordered := keyseq.Order(normalize(tokens))

	var modifiers, mainKeys []uint16
	for _, token := range ordered {
		vk, ok := virtualKey(token)
		if !ok {
			return &UnsupportedKeyError{Token: token}
		}
		if keyseq.IsModifier(token) {
			modifiers = append(modifiers, vk)
		} else {
			mainKeys = append(mainKeys, vk)
		}
	}

	for _, vk := range modifiers {
		in.sendEvent(vk, false)
	}

	if len(mainKeys) == 0 {
		// Modifier-only sequence: tap and release.
		for i := len(modifiers) - 1; i >= 0; i-- {
			in.sendEvent(modifiers[i], true)
		}
		return nil
	}

	for _, vk := range mainKeys {
		in.sendEvent(vk, false)
	}
	for i := len(mainKeys) - 1; i >= 0; i-- {
		in.sendEvent(mainKeys[i], true)
	}
	for i := len(modifiers) - 1; i >= 0; i-- {
		in.sendEvent(modifiers[i], true)
	}
	return nil
}

func (in *Injector) sendEvent(vk uint16, keyUp bool) {
	if err := in.sender.send(vk, keyUp); err != nil {
		slog.Warn("[keyinput] key event send failed", "vk", fmt.Sprintf("0x%02X", vk), "keyUp", keyUp, "error", err)
	}
}

func normalize(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if normalized := keyseq.NormalizeToken(token); normalized != "" {
			out = append(out, normalized)
		}
	}
	return out
}

// Package audio controls master and per-application playback volume
// through the platform's audio session APIs. Every operation resolves
// the default render endpoint fresh and releases everything it acquired
// before returning; nothing is cached across calls, because the system
// default endpoint can change between them.
package audio

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrBackendUnavailable is returned when the platform audio subsystem
// cannot be initialized or does not exist on this build target.
var ErrBackendUnavailable = errors.New("audio backend is unavailable")

// ErrNoEndpoint is returned when no default render device exists
// (no speakers or headphones attached).
var ErrNoEndpoint = errors.New("no default audio render endpoint")

// OperationError reports a specific platform call failure together with
// the underlying status code.
type OperationError struct {
	Op   string
	Code uint32
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed (hresult 0x%08X)", e.Op, e.Code)
}

// ClampPercent restricts a volume percentage to [0, 100].
func ClampPercent(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// levelFromPercent converts a percentage to the normalized [0.0, 1.0]
// scalar the endpoint and session volume interfaces expect.
func levelFromPercent(percent int) float32 {
	return float32(ClampPercent(percent)) / 100
}

// MatchProcess reports whether an audio session owned by processName
// should be controlled for the user-supplied hint. Matching is
// deliberately lenient: users identify applications by display name or
// executable name with inconsistent casing and extension. Succeeds on a
// case-insensitive exact match, a match with a trailing ".exe" removed
// from either side, or when the hint is a substring of the process
// name. The substring rule can match unintended processes ("cod" hits
// "discord.exe"); tightening it is a product decision.
func MatchProcess(hint, processName string) bool {
	if processName == "" {
		return false
	}
	hint = strings.ToLower(hint)
	name := strings.ToLower(processName)
	if hint == name {
		return true
	}
	if strings.TrimSuffix(name, ".exe") == hint {
		return true
	}
	if strings.TrimSuffix(hint, ".exe") == name {
		return true
	}
	return strings.Contains(name, hint)
}

// dedupSortedNames de-duplicates process names case-insensitively
// (first spelling wins) and sorts them case-insensitively.
func dedupSortedNames(names []string) []string {
	spellingByLower := map[string]string{}
	for _, name := range names {
		lower := strings.ToLower(name)
		if _, seen := spellingByLower[lower]; !seen {
			spellingByLower[lower] = name
		}
	}
	out := make([]string, 0, len(spellingByLower))
	for _, name := range spellingByLower {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

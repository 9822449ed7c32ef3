//go:build !windows

package audio

// This build target has no audio session backend. Operations degrade
// to ErrBackendUnavailable so callers can treat volume control as a
// disabled feature instead of crashing.

type unavailablePlatform struct{}

func newPlatform() platform {
	return unavailablePlatform{}
}

func (unavailablePlatform) connect() (audioSystem, error) {
	return nil, ErrBackendUnavailable
}

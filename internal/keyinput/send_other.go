//go:build !windows

package keyinput

type unavailableSender struct{}

func newSender() sender {
	return unavailableSender{}
}

// send always fails: there is no input injection facility on this
// platform. The injector logs the failure per event and carries on,
// which keeps sequence validation usable everywhere.
func (unavailableSender) send(vk uint16, keyUp bool) error {
	return ErrBackendUnavailable
}

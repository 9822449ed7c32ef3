//go:build windows

package audio

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-ole/go-ole"
)

// sFalse: CoInitializeEx reports S_FALSE when COM is already
// initialized on the calling thread. Still a success; the matching
// CoUninitialize is owed either way.
const sFalse = uintptr(0x0001)

type wasapiPlatform struct{}

func newPlatform() platform {
	return wasapiPlatform{}
}

// connect initializes COM on the calling thread and creates the device
// enumerator. The returned system owns both; close releases the
// enumerator and uninitializes COM, in that order.
func (wasapiPlatform) connect() (audioSystem, error) {
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			return nil, fmt.Errorf("%w: CoInitializeEx: %v", ErrBackendUnavailable, err)
		}
	}

	unknown, err := ole.CreateInstance(clsidMMDeviceEnumerator, iidIMMDeviceEnumerator)
	if err != nil {
		ole.CoUninitialize()
		return nil, fmt.Errorf("%w: create MMDeviceEnumerator: %v", ErrBackendUnavailable, err)
	}

	return &wasapiSystem{
		enumerator: (*immDeviceEnumerator)(unsafe.Pointer(unknown)),
	}, nil
}

type wasapiSystem struct {
	enumerator *immDeviceEnumerator
}

func (s *wasapiSystem) defaultRenderEndpoint() (device, error) {
	dev, err := s.enumerator.getDefaultAudioEndpoint()
	if err != nil {
		return nil, err
	}
	return &wasapiDevice{device: dev}, nil
}

func (s *wasapiSystem) close() {
	s.enumerator.Release()
	ole.CoUninitialize()
}

type wasapiDevice struct {
	device *immDevice
}

func (d *wasapiDevice) endpointVolume() (endpointVolume, error) {
	unknown, err := d.device.activate(iidIAudioEndpointVolume)
	if err != nil {
		return nil, err
	}
	return &wasapiEndpointVolume{
		volume: (*audioEndpointVolume)(unsafe.Pointer(unknown)),
	}, nil
}

func (d *wasapiDevice) sessionManager() (sessionManager, error) {
	unknown, err := d.device.activate(iidIAudioSessionManager2)
	if err != nil {
		return nil, err
	}
	return &wasapiSessionManager{
		manager: (*audioSessionManager2)(unsafe.Pointer(unknown)),
	}, nil
}

func (d *wasapiDevice) release() {
	d.device.Release()
}

type wasapiEndpointVolume struct {
	volume *audioEndpointVolume
}

func (v *wasapiEndpointVolume) setMasterVolumeScalar(level float32) error {
	return v.volume.setMasterVolumeLevelScalar(level)
}

func (v *wasapiEndpointVolume) release() {
	v.volume.Release()
}

type wasapiSessionManager struct {
	manager *audioSessionManager2
}

func (m *wasapiSessionManager) sessionEnumerator() (sessionEnumerator, error) {
	enum, err := m.manager.getSessionEnumerator()
	if err != nil {
		return nil, err
	}
	return &wasapiSessionEnumerator{enum: enum}, nil
}

func (m *wasapiSessionManager) release() {
	m.manager.Release()
}

type wasapiSessionEnumerator struct {
	enum *audioSessionEnumerator
}

func (e *wasapiSessionEnumerator) count() (int, error) {
	return e.enum.getCount()
}

func (e *wasapiSessionEnumerator) session(index int) (sessionControl, error) {
	control, err := e.enum.getSession(index)
	if err != nil {
		return nil, err
	}
	return &wasapiSession{control: control}, nil
}

func (e *wasapiSessionEnumerator) release() {
	e.enum.Release()
}

// wasapiSession wraps a base IAudioSessionControl. The extended
// control (for the process id) and the simple volume are queried per
// call and released before returning.
type wasapiSession struct {
	control *ole.IUnknown
}

func (s *wasapiSession) processName() (string, bool) {
	unknown, err := queryInterface(s.control, iidIAudioSessionControl2)
	if err != nil {
		return "", false
	}
	control2 := (*audioSessionControl2)(unsafe.Pointer(unknown))
	defer control2.Release()

	pid, err := control2.getProcessID()
	if err != nil {
		return "", false
	}
	return processNameFromPID(pid)
}

func (s *wasapiSession) setVolume(level float32) error {
	unknown, err := queryInterface(s.control, iidISimpleAudioVolume)
	if err != nil {
		return err
	}
	volume := (*simpleAudioVolume)(unsafe.Pointer(unknown))
	defer volume.Release()

	return volume.setMasterVolume(level)
}

func (s *wasapiSession) release() {
	s.control.Release()
}

//go:build windows

package audio

// Hand-laid vtables for the small WASAPI surface this package touches.
// Layouts mirror mmdeviceapi.h / endpointvolume.h / audiopolicy.h and
// must not be reordered. go-ole supplies the COM lifecycle, GUID
// parsing, and the IUnknown base; methods go-ole does not wrap are
// dispatched through their vtable slots directly.

import (
	"math"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
)

var (
	clsidMMDeviceEnumerator = ole.NewGUID("{BCDE0395-E52F-467C-8E3D-C4579291692E}")
	iidIMMDeviceEnumerator  = ole.NewGUID("{A95664D2-9614-4F35-A746-DE8DB63617E6}")

	iidIAudioEndpointVolume  = ole.NewGUID("{5CDF2C82-841E-4546-9722-0CF74078229A}")
	iidIAudioSessionManager2 = ole.NewGUID("{77AA99A0-1BD6-484F-8BC7-2C654C9A9B6F}")
	iidIAudioSessionControl2 = ole.NewGUID("{BFB7FF88-7239-4FC9-8FA2-07C950BE9C6D}")
	iidISimpleAudioVolume    = ole.NewGUID("{87CE5498-68D6-44E5-9215-6DA47EF883D8}")
)

const (
	clsctxAll = 0x17

	// EDataFlow / ERole values for GetDefaultAudioEndpoint.
	eRender     = 0
	eMultimedia = 1

	// HRESULT_FROM_WIN32(ERROR_NOT_FOUND): no default endpoint exists.
	hrNotFound = 0x80070490
)

// hrCheck converts a raw HRESULT into an *OperationError.
func hrCheck(op string, hr uintptr) error {
	if hr == 0 {
		return nil
	}
	return &OperationError{Op: op, Code: uint32(hr)}
}

// queryInterface dispatches the IUnknown QueryInterface slot for
// interfaces go-ole has no typed wrapper for.
func queryInterface(unknown *ole.IUnknown, iid *ole.GUID) (*ole.IUnknown, error) {
	var out *ole.IUnknown
	hr, _, _ := syscall.SyscallN(
		unknown.VTable().QueryInterface,
		uintptr(unsafe.Pointer(unknown)),
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(&out)),
	)
	if err := hrCheck("QueryInterface", hr); err != nil {
		return nil, err
	}
	return out, nil
}

// IMMDeviceEnumerator

type immDeviceEnumerator struct {
	ole.IUnknown
}

type immDeviceEnumeratorVtbl struct {
	ole.IUnknownVtbl
	EnumAudioEndpoints                     uintptr
	GetDefaultAudioEndpoint                uintptr
	GetDevice                              uintptr
	RegisterEndpointNotificationCallback   uintptr
	UnregisterEndpointNotificationCallback uintptr
}

func (v *immDeviceEnumerator) vtbl() *immDeviceEnumeratorVtbl {
	return (*immDeviceEnumeratorVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *immDeviceEnumerator) getDefaultAudioEndpoint() (*immDevice, error) {
	var dev *immDevice
	hr, _, _ := syscall.SyscallN(
		v.vtbl().GetDefaultAudioEndpoint,
		uintptr(unsafe.Pointer(v)),
		uintptr(eRender),
		uintptr(eMultimedia),
		uintptr(unsafe.Pointer(&dev)),
	)
	if hr == hrNotFound {
		return nil, ErrNoEndpoint
	}
	if err := hrCheck("GetDefaultAudioEndpoint", hr); err != nil {
		return nil, err
	}
	return dev, nil
}

// IMMDevice

type immDevice struct {
	ole.IUnknown
}

type immDeviceVtbl struct {
	ole.IUnknownVtbl
	Activate          uintptr
	OpenPropertyStore uintptr
	GetId             uintptr
	GetState          uintptr
}

func (v *immDevice) vtbl() *immDeviceVtbl {
	return (*immDeviceVtbl)(unsafe.Pointer(v.RawVTable))
}

// activate resolves a per-device service interface (endpoint volume or
// session manager) in-process.
func (v *immDevice) activate(iid *ole.GUID) (*ole.IUnknown, error) {
	var out *ole.IUnknown
	hr, _, _ := syscall.SyscallN(
		v.vtbl().Activate,
		uintptr(unsafe.Pointer(v)),
		uintptr(unsafe.Pointer(iid)),
		uintptr(clsctxAll),
		0,
		uintptr(unsafe.Pointer(&out)),
	)
	if err := hrCheck("IMMDevice::Activate", hr); err != nil {
		return nil, err
	}
	return out, nil
}

// IAudioEndpointVolume

type audioEndpointVolume struct {
	ole.IUnknown
}

type audioEndpointVolumeVtbl struct {
	ole.IUnknownVtbl
	RegisterControlChangeNotify   uintptr
	UnregisterControlChangeNotify uintptr
	GetChannelCount               uintptr
	SetMasterVolumeLevel          uintptr
	SetMasterVolumeLevelScalar    uintptr
	GetMasterVolumeLevel          uintptr
	GetMasterVolumeLevelScalar    uintptr
	SetChannelVolumeLevel         uintptr
	SetChannelVolumeLevelScalar   uintptr
	GetChannelVolumeLevel         uintptr
	GetChannelVolumeLevelScalar   uintptr
	SetMute                       uintptr
	GetMute                       uintptr
	GetVolumeStepInfo             uintptr
	VolumeStepUp                  uintptr
	VolumeStepDown                uintptr
	QueryHardwareSupport          uintptr
	GetVolumeRange                uintptr
}

func (v *audioEndpointVolume) vtbl() *audioEndpointVolumeVtbl {
	return (*audioEndpointVolumeVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *audioEndpointVolume) setMasterVolumeLevelScalar(level float32) error {
	hr, _, _ := syscall.SyscallN(
		v.vtbl().SetMasterVolumeLevelScalar,
		uintptr(unsafe.Pointer(v)),
		uintptr(math.Float32bits(level)),
		0, // event context GUID
	)
	return hrCheck("SetMasterVolumeLevelScalar", hr)
}

// IAudioSessionManager2 (extends IAudioSessionManager)

type audioSessionManager2 struct {
	ole.IUnknown
}

type audioSessionManager2Vtbl struct {
	ole.IUnknownVtbl
	GetAudioSessionControl        uintptr
	GetSimpleAudioVolume          uintptr
	GetSessionEnumerator          uintptr
	RegisterSessionNotification   uintptr
	UnregisterSessionNotification uintptr
	RegisterDuckNotification      uintptr
	UnregisterDuckNotification    uintptr
}

func (v *audioSessionManager2) vtbl() *audioSessionManager2Vtbl {
	return (*audioSessionManager2Vtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *audioSessionManager2) getSessionEnumerator() (*audioSessionEnumerator, error) {
	var enum *audioSessionEnumerator
	hr, _, _ := syscall.SyscallN(
		v.vtbl().GetSessionEnumerator,
		uintptr(unsafe.Pointer(v)),
		uintptr(unsafe.Pointer(&enum)),
	)
	if err := hrCheck("GetSessionEnumerator", hr); err != nil {
		return nil, err
	}
	return enum, nil
}

// IAudioSessionEnumerator

type audioSessionEnumerator struct {
	ole.IUnknown
}

type audioSessionEnumeratorVtbl struct {
	ole.IUnknownVtbl
	GetCount   uintptr
	GetSession uintptr
}

func (v *audioSessionEnumerator) vtbl() *audioSessionEnumeratorVtbl {
	return (*audioSessionEnumeratorVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *audioSessionEnumerator) getCount() (int, error) {
	var n int32
	hr, _, _ := syscall.SyscallN(
		v.vtbl().GetCount,
		uintptr(unsafe.Pointer(v)),
		uintptr(unsafe.Pointer(&n)),
	)
	if err := hrCheck("IAudioSessionEnumerator::GetCount", hr); err != nil {
		return 0, err
	}
	return int(n), nil
}

// getSession fetches session index as its base IAudioSessionControl.
func (v *audioSessionEnumerator) getSession(index int) (*ole.IUnknown, error) {
	var control *ole.IUnknown
	hr, _, _ := syscall.SyscallN(
		v.vtbl().GetSession,
		uintptr(unsafe.Pointer(v)),
		uintptr(int32(index)),
		uintptr(unsafe.Pointer(&control)),
	)
	if err := hrCheck("IAudioSessionEnumerator::GetSession", hr); err != nil {
		return nil, err
	}
	return control, nil
}

// IAudioSessionControl2 (extends IAudioSessionControl)

type audioSessionControl2 struct {
	ole.IUnknown
}

type audioSessionControl2Vtbl struct {
	ole.IUnknownVtbl
	GetState                           uintptr
	GetDisplayName                     uintptr
	SetDisplayName                     uintptr
	GetIconPath                        uintptr
	SetIconPath                        uintptr
	GetGroupingParam                   uintptr
	SetGroupingParam                   uintptr
	RegisterAudioSessionNotification   uintptr
	UnregisterAudioSessionNotification uintptr
	GetSessionIdentifier               uintptr
	GetSessionInstanceIdentifier       uintptr
	GetProcessId                       uintptr
	IsSystemSoundsSession              uintptr
	SetDuckingPreference               uintptr
}

func (v *audioSessionControl2) vtbl() *audioSessionControl2Vtbl {
	return (*audioSessionControl2Vtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *audioSessionControl2) getProcessID() (uint32, error) {
	var pid uint32
	hr, _, _ := syscall.SyscallN(
		v.vtbl().GetProcessId,
		uintptr(unsafe.Pointer(v)),
		uintptr(unsafe.Pointer(&pid)),
	)
	if err := hrCheck("IAudioSessionControl2::GetProcessId", hr); err != nil {
		return 0, err
	}
	return pid, nil
}

// ISimpleAudioVolume

type simpleAudioVolume struct {
	ole.IUnknown
}

type simpleAudioVolumeVtbl struct {
	ole.IUnknownVtbl
	SetMasterVolume uintptr
	GetMasterVolume uintptr
	SetMute         uintptr
	GetMute         uintptr
}

func (v *simpleAudioVolume) vtbl() *simpleAudioVolumeVtbl {
	return (*simpleAudioVolumeVtbl)(unsafe.Pointer(v.RawVTable))
}

func (v *simpleAudioVolume) setMasterVolume(level float32) error {
	hr, _, _ := syscall.SyscallN(
		v.vtbl().SetMasterVolume,
		uintptr(unsafe.Pointer(v)),
		uintptr(math.Float32bits(level)),
		0, // event context GUID
	)
	return hrCheck("ISimpleAudioVolume::SetMasterVolume", hr)
}

//go:build windows

package keyinput

import (
	"errors"
	"syscall"
	"unsafe"
)

var (
	user32DLL     = syscall.NewLazyDLL("user32.dll")
	procSendInput = user32DLL.NewProc("SendInput")
)

const (
	inputKeyboard  = 1
	keyEventFKeyUp = 0x0002
)

// keybdInput mirrors the Win32 KEYBDINPUT struct (winuser.h).
type keybdInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// keyInput mirrors the Win32 INPUT struct for keyboard events. The
// trailing padding widens the struct to the size of the full INPUT
// union (MOUSEINPUT is the largest member); SendInput rejects calls
// whose cbSize does not match.
type keyInput struct {
	inputType uint32
	ki        keybdInput
	padding   uint64
}

type inputSender struct{}

func newSender() sender {
	return inputSender{}
}

func (inputSender) send(vk uint16, keyUp bool) error {
	var flags uint32
	if keyUp {
		flags = keyEventFKeyUp
	}
	event := keyInput{
		inputType: inputKeyboard,
		ki:        keybdInput{wVk: vk, dwFlags: flags},
	}
	ret, _, err := procSendInput.Call(
		1,
		uintptr(unsafe.Pointer(&event)),
		unsafe.Sizeof(event),
	)
	if ret != 0 {
		return nil
	}
	if err == syscall.Errno(0) {
		return errors.New("SendInput inserted no events")
	}
	return err
}

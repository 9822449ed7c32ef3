//go:build windows

package audio

import (
	"path/filepath"

	"golang.org/x/sys/windows"
)

// processNameFromPID resolves a pid to its executable base name, e.g.
// "chrome.exe". Returns ok=false when the process cannot be opened or
// queried: pid 0 (the system sounds session), a process that exited
// mid-enumeration, or one this process lacks rights to.
func processNameFromPID(pid uint32) (string, bool) {
	if pid == 0 {
		return "", false
	}

	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", false
	}
	defer windows.CloseHandle(handle)

	var buf [windows.MAX_PATH]uint16
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(handle, 0, &buf[0], &size); err != nil {
		return "", false
	}

	name := filepath.Base(windows.UTF16ToString(buf[:size]))
	if name == "." || name == string(filepath.Separator) {
		return "", false
	}
	return name, true
}

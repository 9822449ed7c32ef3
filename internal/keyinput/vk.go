package keyinput

import "strconv"

// Win32 virtual-key codes for named tokens. Codes are plain numbers on
// every platform so that sequence validation and ordering stay testable
// off Windows; only the sender is platform specific.
const (
	vkCtrl  uint16 = 0x11
	vkShift uint16 = 0x10
	vkAlt   uint16 = 0x12
	vkWin   uint16 = 0x5B
	vkF1    uint16 = 0x70
)

var virtualKeyByToken = map[string]uint16{
	"ctrl":        vkCtrl,
	"shift":       vkShift,
	"alt":         vkAlt,
	"win":         vkWin,
	"enter":       0x0D,
	"tab":         0x09,
	"escape":      0x1B,
	"backspace":   0x08,
	"delete":      0x2E,
	"insert":      0x2D,
	"home":        0x24,
	"end":         0x23,
	"pageup":      0x21,
	"pagedown":    0x22,
	"left":        0x25,
	"right":       0x27,
	"up":          0x26,
	"down":        0x28,
	"space":       0x20,
	"printscreen": 0x2C,
	"pause":       0x13,
	"capslock":    0x14,
	"numlock":     0x90,
	"scrolllock":  0x91,
	"volumemute":  0xAD,
	"volumedown":  0xAE,
	"volumeup":    0xAF,
}

// virtualKey resolves a normalized token to its virtual-key code.
// Supported: the named-key table, function keys f1-f35, and single
// alphanumeric characters via their character code.
func virtualKey(token string) (uint16, bool) {
	if vk, ok := virtualKeyByToken[token]; ok {
		return vk, true
	}
	if len(token) >= 2 && token[0] == 'f' {
		if n, err := strconv.Atoi(token[1:]); err == nil && n >= 1 && n <= 35 {
			return vkF1 + uint16(n-1), true
		}
	}
	if len(token) == 1 {
		ch := token[0]
		if ch >= '0' && ch <= '9' {
			return uint16(ch), true
		}
		if ch >= 'a' && ch <= 'z' {
			return uint16(ch - 'a' + 'A'), true
		}
	}
	return 0, false
}

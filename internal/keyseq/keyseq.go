// Package keyseq normalizes human-readable key sequences like
// "ctrl+shift+a" into canonical token lists. Tokens are lowercase;
// modifiers always precede main keys in the fixed order ctrl, shift,
// alt, win.
package keyseq

import (
	"strings"
)

// ModifierOrder is the canonical ordering of modifier tokens.
var ModifierOrder = [4]string{"ctrl", "shift", "alt", "win"}

var aliasByToken = map[string]string{
	"control":  "ctrl",
	"ctl":      "ctrl",
	"option":   "alt",
	"menu":     "alt",
	"altgr":    "alt",
	"meta":     "win",
	"windows":  "win",
	"super":    "win",
	"cmd":      "win",
	"command":  "win",
	"return":   "enter",
	"esc":      "escape",
	"del":      "delete",
	"spacebar": "space",
}

var displayNameByToken = map[string]string{
	"ctrl":        "Ctrl",
	"shift":       "Shift",
	"alt":         "Alt",
	"win":         "Win",
	"escape":      "Esc",
	"enter":       "Enter",
	"tab":         "Tab",
	"space":       "Space",
	"backspace":   "Backspace",
	"delete":      "Delete",
	"insert":      "Insert",
	"home":        "Home",
	"end":         "End",
	"pageup":      "Page Up",
	"pagedown":    "Page Down",
	"left":        "Left",
	"right":       "Right",
	"up":          "Up",
	"down":        "Down",
	"printscreen": "Print Screen",
	"volumeup":    "Volume Up",
	"volumedown":  "Volume Down",
	"volumemute":  "Mute",
}

// IsModifier reports whether token is one of the four modifier tokens.
// The token must already be normalized.
func IsModifier(token string) bool {
	for _, mod := range ModifierOrder {
		if token == mod {
			return true
		}
	}
	return false
}

// NormalizeToken lowercases and trims token and resolves aliases
// (control -> ctrl, esc -> escape, cmd -> win, ...). Returns "" for
// blank input.
func NormalizeToken(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return ""
	}
	if canonical, ok := aliasByToken[token]; ok {
		return canonical
	}
	return token
}

// Split parses a "+"-separated sequence like "Ctrl+Shift+A" into
// normalized, canonically ordered tokens. Blank segments are dropped.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(strings.ReplaceAll(text, " ", ""), "+") {
		if token := NormalizeToken(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return Order(tokens)
}

// Order de-duplicates tokens (first occurrence wins) and reorders them
// so modifiers come first in ModifierOrder, with the remaining tokens
// keeping their original relative order.
func Order(tokens []string) []string {
	var unique []string
	seen := map[string]struct{}{}
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		unique = append(unique, token)
	}

	var ordered []string
	for _, mod := range ModifierOrder {
		if _, ok := seen[mod]; ok {
			ordered = append(ordered, mod)
		}
	}
	for _, token := range unique {
		if !IsModifier(token) {
			ordered = append(ordered, token)
		}
	}
	return ordered
}

// Join renders tokens in canonical order as a "+"-separated string.
func Join(tokens []string) string {
	return strings.Join(Order(tokens), "+")
}

// Format renders tokens as a display string like "Ctrl + Shift + A".
func Format(tokens []string) string {
	ordered := Order(tokens)
	if len(ordered) == 0 {
		return ""
	}
	formatted := make([]string, 0, len(ordered))
	for _, token := range ordered {
		switch {
		case isFunctionKey(token):
			formatted = append(formatted, strings.ToUpper(token))
		case len(token) == 1 && token[0] >= 'a' && token[0] <= 'z':
			formatted = append(formatted, strings.ToUpper(token))
		default:
			if name, ok := displayNameByToken[token]; ok {
				formatted = append(formatted, name)
			} else {
				formatted = append(formatted, capitalize(token))
			}
		}
	}
	return strings.Join(formatted, " + ")
}

func isFunctionKey(token string) bool {
	if len(token) < 2 || token[0] != 'f' {
		return false
	}
	for i := 1; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}
	return true
}

func capitalize(token string) string {
	if token == "" {
		return ""
	}
	return strings.ToUpper(token[:1]) + token[1:]
}

package singleinstance

import (
	"os"
	"strings"
)

const mutexPrefix = "dashboard-app-"

// DefaultName builds a per-user mutex name so different users on one
// machine can each run a panel.
func DefaultName() string {
	username := strings.TrimSpace(os.Getenv("USERNAME"))
	if username == "" {
		username = strings.TrimSpace(os.Getenv("USER"))
	}
	if username == "" {
		username = "default"
	}
	var b strings.Builder
	for _, r := range strings.ToLower(username) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return mutexPrefix + b.String()
}

package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	// maxFileBytes caps how much of a settings file is read; a
	// document this size is corrupt, not configuration.
	maxFileBytes = 1 << 20

	// Windows file locks from antivirus/indexing settle quickly;
	// rename retries use a short linear backoff.
	maxRenameRetry       = 10
	renameRetryBaseDelay = 10 * time.Millisecond
)

const defaultFileName = "dashboard-settings.yaml"

// DefaultPath returns the per-user settings file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "dashboard-app", defaultFileName), nil
}

// Load reads the settings document at path. A missing file yields
// Default() without error; a malformed or oversized file is an error.
func Load(path string) (*Settings, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat settings file: %w", err)
	}
	if info.Size() > maxFileBytes {
		return nil, fmt.Errorf("settings file %s exceeds %d bytes", path, maxFileBytes)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	loaded := &Settings{}
	if err := yaml.Unmarshal(raw, loaded); err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	applyMissingDefaults(loaded)
	return loaded, nil
}

// applyMissingDefaults fills in fields an older or hand-edited document
// omits, so the rest of the program never sees zero-value bindings.
func applyMissingDefaults(s *Settings) {
	if s.Serial.Port == "" {
		s.Serial.Port = "COM3"
	}
	if s.Serial.Baudrate <= 0 {
		s.Serial.Baudrate = 9600
	}
	if s.Layout.BoardWidthMM <= 0 {
		s.Layout.BoardWidthMM = BoardWidthMM
	}
	if s.Layout.BoardHeightMM <= 0 {
		s.Layout.BoardHeightMM = BoardHeightMM
	}
	for i := range s.Sliders {
		if s.Sliders[i].ActionType == "" {
			s.Sliders[i].ActionType = "system_volume"
		}
	}
	for i := range s.Buttons {
		if s.Buttons[i].ActionType == "" {
			s.Buttons[i].ActionType = "noop"
		}
	}
}

// Save writes the document atomically: marshal to a sibling temp file,
// then rename over the target with retries for transient Windows
// sharing violations.
func Save(path string, s *Settings) error {
	raw, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, defaultFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp settings file: %w", err)
	}

	if err := renameWithRetry(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func renameWithRetry(from, to string) error {
	var lastErr error
	for attempt := 1; attempt <= maxRenameRetry; attempt++ {
		lastErr = os.Rename(from, to)
		if lastErr == nil {
			return nil
		}
		if runtime.GOOS != "windows" {
			break
		}
		time.Sleep(renameRetryBaseDelay * time.Duration(attempt))
	}
	return fmt.Errorf("rename settings file into place: %w", lastErr)
}

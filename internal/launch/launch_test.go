package launch

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestOpenApplicationMissingTarget(t *testing.T) {
	l := New()
	err := l.OpenApplication(filepath.Join(t.TempDir(), "does-not-exist"), "")
	if err == nil {
		t.Fatal("OpenApplication on missing target succeeded, want error")
	}
}

func TestRunScriptStartsDetached(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test script uses /bin/sh")
	}
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	script := filepath.Join(dir, "script.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\ntouch \""+marker+"\"\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	l := New()
	if err := l.RunScript(script); err != nil {
		t.Fatalf("RunScript = %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(marker); err == nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("script never ran")
}

func TestRunScriptPassesArguments(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test script uses /bin/sh")
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	script := filepath.Join(dir, "script.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho \"$1\" > \""+out+"\"\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	l := New()
	if err := l.RunScript(script, "hello"); err != nil {
		t.Fatalf("RunScript = %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		raw, err := os.ReadFile(out)
		if err == nil && string(raw) == "hello\n" {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("argument never reached the script")
}

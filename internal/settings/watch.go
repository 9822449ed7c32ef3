package settings

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of fsnotify events an atomic save
// produces (create temp, write, rename) into one reload.
const watchDebounce = 250 * time.Millisecond

// Watcher reloads the settings file when it changes on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch observes path and invokes onChange (on the watcher goroutine)
// after the file settles. The parent directory is watched rather than
// the file itself so atomic rename saves keep the watch alive.
func Watch(path string, onChange func()) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback is required")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watch settings dir: %w", err)
	}

	w := &Watcher{watcher: fsWatcher, done: make(chan struct{})}
	go w.run(filepath.Base(path), onChange)
	return w, nil
}

func (w *Watcher) run(fileName string, onChange func()) {
	defer close(w.done)
	debounced := debounce.New(watchDebounce)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != fileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounced(onChange)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("[settings] watcher error", "error", err)
		}
	}
}

// Close stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

package tui

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/hush/internal/constants"
	"github.com/julianstephens/hush/internal/logger"
)

// Watcher reports writes to a SQLite database file and its -wal / -journal
// companions. Bursts of events collapse into one notification.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changes chan struct{}
	settle  time.Duration
}

// WatchFile watches the directory holding path, since SQLite replaces and
// creates sibling files rather than writing only to path itself.
func WatchFile(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		changes: make(chan struct{}, 1),
		settle:  constants.WatchReloadDebounce,
	}
	go w.run(filepath.Base(path))
	return w, nil
}

// Changes is closed when the watcher stops.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) run(base string) {
	defer close(w.changes)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// let the writer finish before signalling
			time.Sleep(w.settle)
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Settings watcher error", "error", err)
		}
	}
}

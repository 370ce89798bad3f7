// Package watch notifies the application when the notes file changes on
// disk outside this process, so an external edit shows up without a
// restart.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"quicknotes/internal/logs"
)

const debounceInterval = 200 * time.Millisecond

// Watcher watches a single file and invokes onChange after writes settle.
// onChange runs on the watcher goroutine; callers needing primary-context
// delivery wrap it themselves.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	done     chan struct{}
}

// New starts watching path. The parent directory is watched rather than the
// file itself, because atomic saves replace the file (rename drops the
// watch on some platforms).
func New(path string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		path:     filepath.Clean(path),
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Debounce: editors and atomic saves emit event bursts.
			if timer == nil {
				timer = time.NewTimer(debounceInterval)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceInterval)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			w.onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logs.Logger.Warnw("file watch error", "err", err)
		}
	}
}

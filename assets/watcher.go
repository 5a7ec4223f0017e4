// Package assets provides change notification for on-disk resources so the
// engine can hot-reload shaders and textures during development.
package assets

import (
	"errors"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"render-core/core"
)

// Watcher reports modified asset files on a channel. The render loop drains
// Changed with a non-blocking receive each frame and reloads what it owns.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	changed  chan string
	done     chan struct{}
	closed   bool
}

func NewWatcher() (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsnotify: fsWatch,
		changed:  make(chan string, 16),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Watch starts watching a file. fsnotify tracks directories more reliably
// than single files across editors that write via rename, so the parent
// directory is registered and events are filtered per file in run.
func (w *Watcher) Watch(path string) error {
	if w.closed {
		return errors.New("watcher already closed")
	}
	return w.fsnotify.Add(filepath.Dir(path))
}

// Changed delivers absolute-as-given paths of modified files.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename) {
				select {
				case w.changed <- event.Name:
				default:
					// Render loop is behind; dropping is fine, the next
					// write will renotify.
				}
			}
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogWarn("asset watcher: %v", err)
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher. Safe to call once.
func (w *Watcher) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	close(w.done)
	return w.fsnotify.Close()
}

// Package watch re-runs a callback whenever one of a set of files changes.
// It backs "taxstud validate --watch": the data file and its schema file
// are watched together so edits to either trigger revalidation.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"taxstud/internal/logging"
)

// debounceWindow coalesces the bursts of write events editors emit for a
// single save.
const debounceWindow = 200 * time.Millisecond

// Watcher invokes a callback when a watched file is written or recreated.
type Watcher struct {
	fsw      *fsnotify.Watcher
	watched  map[string]bool
	onChange func(path string)
	done     chan struct{}
	stopped  chan struct{}
}

// New starts watching the given files. onChange is called from the watch
// goroutine with the path that changed; callers needing serialization must
// provide it themselves.
func New(paths []string, onChange func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	watched := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		watched[abs] = true
		// Watch the directory, not the file: editors that save via
		// rename replace the inode and a file watch would go stale.
		if err := fsw.Add(filepath.Dir(abs)); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
		}
	}

	w := &Watcher{
		fsw:      fsw,
		watched:  watched,
		onChange: onChange,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.stopped)

	var (
		pending string
		timer   = time.NewTimer(debounceWindow)
	)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.watched[abs] {
				continue
			}
			logging.Watch("Change detected: %s (%s)", abs, event.Op)
			pending = abs
			timer.Reset(debounceWindow)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryWatch).Error("watch error: %v", err)
		case <-timer.C:
			if pending != "" {
				w.onChange(pending)
				pending = ""
			}
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	<-w.stopped
	return err
}

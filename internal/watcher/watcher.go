// Package watcher reports changes to individual files, such as waveform dumps
// or tool inputs, so a run can be repeated when they change.
package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a path must stay quiet before an event fires.
const DefaultDebounce = 100 * time.Millisecond

// Event represents a debounced change to a watched file.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher watches a set of files. Their parent directories are watched so
// that atomic replacements (write tmp, rename onto target) are seen.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once
	delay      time.Duration

	mu    sync.RWMutex
	files map[string]struct{}
	dirs  map[string]struct{}

	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a new file watcher. A zero delay uses DefaultDebounce.
func New(delay time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}

	return &Watcher{
		fsWatcher:  fsWatcher,
		eventsChan: make(chan Event, 100),
		done:       make(chan struct{}),
		delay:      delay,
		files:      make(map[string]struct{}),
		dirs:       make(map[string]struct{}),
		debounce:   make(map[string]*time.Timer),
	}, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Add starts watching path. The file itself need not exist yet, but its
// directory must.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[abs]; ok {
		return nil
	}
	dir := filepath.Dir(abs)
	if _, ok := w.dirs[dir]; !ok {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = struct{}{}
	}
	w.files[abs] = struct{}{}

	log.Printf("[watcher] Watching %s", abs)
	return nil
}

// Start starts processing file system events.
func (w *Watcher) Start() {
	go w.processEvents()
}

// Stop stops the watcher. Pending debounced events are dropped.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for path, timer := range w.debounce {
			timer.Stop()
			delete(w.debounce, path)
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Rename covers editors that save by renaming a temp file onto the target.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	path := filepath.Clean(event.Name)
	w.mu.RLock()
	_, watched := w.files[path]
	w.mu.RUnlock()
	if !watched {
		return
	}

	w.debounceEvent(path, func() {
		w.emit(Event{Path: path, Op: event.Op})
	})
}

// debounceEvent debounces events for the same path.
func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(w.delay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}

func (w *Watcher) emit(ev Event) {
	log.Printf("[watcher] debounce fired: %s (op=%s)", ev.Path, ev.Op)
	select {
	case w.eventsChan <- ev:
	case <-w.done:
	}
}

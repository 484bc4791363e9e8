package config

import (
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchErrorBackoff throttles the watch loop after a watcher error instead
// of busy-looping on a broken notification stream.
const watchErrorBackoff = time.Second

// Watcher watches the config file and hot-swaps the shared Store on every
// successful reload. A reload that fails to parse leaves the previous
// snapshot active, so a malformed edit never blanks a working configuration.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	store    *Store
	mu       sync.Mutex
	handlers []func(*Config)
	done     chan struct{}
}

// NewWatcher loads the initial config from path and prepares the watcher.
// The initial load failing is fatal to the caller: there is nothing to fall
// back to yet.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cfg, err := Load(path)
	if err != nil {
		w.Close()
		return nil, err
	}

	cw := &Watcher{
		path:    path,
		watcher: w,
		store:   NewStore(cfg),
		done:    make(chan struct{}),
	}

	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}

	return cw, nil
}

// Store returns the shared config slot read by the classifier.
func (w *Watcher) Store() *Store {
	return w.store
}

// Start starts watching for config file changes.
func (w *Watcher) Start() {
	go w.watch()
}

// Stop stops the config watcher.
func (w *Watcher) Stop() {
	close(w.done)
	w.watcher.Close()
}

// OnReload registers a handler called after each successful reload.
func (w *Watcher) OnReload(handler func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Reload on write or create (some editors do atomic saves via rename)
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Config watcher error: %v", err)
			select {
			case <-w.done:
				return
			case <-time.After(watchErrorBackoff):
			}
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		log.Printf("Failed to reload config, keeping previous: %v", err)
		return
	}

	w.store.Replace(cfg)

	w.mu.Lock()
	handlers := make([]func(*Config), len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	log.Printf("Config reloaded from %s", w.path)

	for _, handler := range handlers {
		handler(cfg)
	}
}

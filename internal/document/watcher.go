// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package document models project files as in-memory line buffers with a
// stable path identity and explicit load/save.
package document

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// DISK WATCHER
// =============================================================================

// Watcher reloads open documents when their files change on disk, so a
// long chat session does not apply line edits against stale content.
// Events are debounced because editors and build tools often emit several
// writes in quick succession.
type Watcher struct {
	store    *Store
	fw       *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	watched map[string]bool
	pending map[string]time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// DefaultDebounce is the settle time before a changed file is reloaded.
const DefaultDebounce = 300 * time.Millisecond

// Watch starts a disk watcher for the store's open documents. Documents
// opened later are picked up automatically. Close the store's watcher via
// (*Watcher).Close when shutting down.
func (s *Store) Watch() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		store:    s,
		fw:       fw,
		debounce: DefaultDebounce,
		watched:  make(map[string]bool),
		pending:  make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}

	s.mu.Lock()
	s.watcher = w
	for path := range s.docs {
		w.add(filepath.Dir(s.abs(path)))
	}
	s.mu.Unlock()

	go w.processEvents()
	go w.processPending()
	return w, nil
}

// add registers a directory with fsnotify. Duplicate adds are ignored.
func (w *Watcher) add(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watched[dir] {
		return
	}
	if err := w.fw.Add(dir); err != nil {
		return
	}
	w.watched[dir] = true
}

// processEvents records write events for open documents; reloading
// happens after the debounce window in processPending.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if path, ok := w.openPathFor(ev.Name); ok {
				w.mu.Lock()
				w.pending[path] = time.Now()
				w.mu.Unlock()
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		}
	}
}

// processPending reloads changed documents once their events settle.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			var ready []string
			w.mu.Lock()
			for path, at := range w.pending {
				if now.Sub(at) >= w.debounce {
					ready = append(ready, path)
					delete(w.pending, path)
				}
			}
			w.mu.Unlock()
			for _, path := range ready {
				w.store.reload(path)
			}
		}
	}
}

// openPathFor maps an absolute event path back to an open document path.
func (w *Watcher) openPathFor(name string) (string, bool) {
	w.store.mu.Lock()
	defer w.store.mu.Unlock()
	for path := range w.store.docs {
		if w.store.abs(path) == filepath.Clean(name) {
			return path, true
		}
	}
	return "", false
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.fw.Close()
}

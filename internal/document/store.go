// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package document models project files as in-memory line buffers with a
// stable path identity and explicit load/save.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kestrelworks/redraft/internal/util"
)

// =============================================================================
// STORE
// =============================================================================

// Store holds the open documents for one project root. Documents are
// identified by the path the directive used; relative paths resolve
// against the root.
//
// The store serializes its own bookkeeping so the disk watcher can reload
// documents from a goroutine, but a batch of edits against one document
// is expected to run single-threaded.
type Store struct {
	root   string
	backup bool

	mu      sync.Mutex
	docs    map[string]*Document
	watcher *Watcher
}

// NewStore creates a store rooted at dir. An empty dir means the current
// working directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{
		root: dir,
		docs: make(map[string]*Document),
	}
}

// Root returns the directory relative paths resolve against.
func (s *Store) Root() string {
	return s.root
}

// SetBackup controls whether Save keeps a .bak copy of the previous file
// content before overwriting it.
func (s *Store) SetBackup(enabled bool) {
	s.backup = enabled
}

// abs resolves a document path to its on-disk location.
func (s *Store) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.root, path)
}

// Exists reports whether a document is already open or its file exists on
// disk.
func (s *Store) Exists(path string) bool {
	s.mu.Lock()
	_, open := s.docs[path]
	s.mu.Unlock()
	if open {
		return true
	}
	info, err := os.Stat(s.abs(path))
	return err == nil && !info.IsDir()
}

// Load returns the open document for path, reading the file from disk on
// first access. It fails when the file is missing or unreadable.
func (s *Store) Load(path string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.docs[path]; ok {
		return doc, nil
	}
	data, err := os.ReadFile(s.abs(path))
	if err != nil {
		return nil, err
	}
	doc := &Document{path: path, lines: SplitLines(string(data))}
	s.docs[path] = doc
	s.watchPath(path)
	return doc, nil
}

// Create opens a new empty document at path, creating parent directories
// so a later save cannot fail on a missing directory. This is how a
// directive brings a brand-new file into existence.
func (s *Store) Create(path string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.docs[path]; ok {
		return doc, nil
	}
	target := s.abs(path)
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return nil, err
	}
	doc := &Document{path: path}
	s.docs[path] = doc
	s.watchPath(path)
	return doc, nil
}

// Resolve returns the document for path, loading it from disk when the
// file exists and creating it otherwise.
func (s *Store) Resolve(path string) (*Document, error) {
	if s.Exists(path) {
		return s.Load(path)
	}
	return s.Create(path)
}

// Get returns an already-open document, or nil.
func (s *Store) Get(path string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[path]
}

// Save writes the document to disk atomically and clears its dirty flag.
// Failure leaves the in-memory content intact; the caller reports it and
// moves on.
func (s *Store) Save(doc *Document) error {
	target := s.abs(doc.Path())
	if s.backup {
		if prev, err := os.ReadFile(target); err == nil {
			if err := util.AtomicWriteFile(target+".bak", prev, 0644); err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}
		}
	}
	if err := util.AtomicWriteFile(target, []byte(doc.Content()), 0644); err != nil {
		return err
	}
	doc.dirty = false
	return nil
}

// reload replaces a document's content from disk, used by the watcher
// when the file changes underneath us. Dirty documents are left alone;
// unsaved edits win over external changes.
func (s *Store) reload(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[path]
	if !ok || doc.dirty {
		return
	}
	data, err := os.ReadFile(s.abs(path))
	if err != nil {
		return
	}
	doc.lines = SplitLines(string(data))
}

// watchPath registers a document's directory with the disk watcher, when
// one is running. Caller holds s.mu.
func (s *Store) watchPath(path string) {
	if s.watcher != nil {
		s.watcher.add(filepath.Dir(s.abs(path)))
	}
}

// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package document models project files as in-memory line buffers with a
// stable path identity and explicit load/save.
//
// A Store holds the documents one session has opened, keyed by the path
// the edit directive used. Documents come into the store by loading an
// existing file or by creating a new empty one (parent directories
// included); they leave memory only when the process exits. Saves are
// atomic writes, and an optional fsnotify watcher reloads documents whose
// files change on disk while they carry no unsaved edits.
package document

// Copyright (c) 2025 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreLoadAndCache(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("one\ntwo\n"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewStore(root)

	doc, err := store.Load("a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if doc.LineCount() != 2 {
		t.Errorf("LineCount = %d, want 2", doc.LineCount())
	}

	again, err := store.Load("a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if doc != again {
		t.Error("second Load should return the cached document")
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Load("missing.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStoreCreateWithParents(t *testing.T) {
	store := NewStore(t.TempDir())

	doc, err := store.Create("deep/nested/file.txt")
	if err != nil {
		t.Fatal(err)
	}
	if doc.LineCount() != 0 {
		t.Errorf("new document should be empty, got %d lines", doc.LineCount())
	}
	if _, err := os.Stat(filepath.Join(store.Root(), "deep", "nested")); err != nil {
		t.Errorf("parent directories not created: %v", err)
	}
}

func TestStoreCreateRejectsDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	store := NewStore(root)
	if _, err := store.Create("sub"); err == nil {
		t.Error("expected error creating a document over a directory")
	}
}

func TestStoreResolve(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "exists.txt"), []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewStore(root)

	existing, err := store.Resolve("exists.txt")
	if err != nil {
		t.Fatal(err)
	}
	if existing.LineCount() != 1 {
		t.Errorf("existing file should load content, got %d lines", existing.LineCount())
	}

	fresh, err := store.Resolve("fresh.txt")
	if err != nil {
		t.Fatal(err)
	}
	if fresh.LineCount() != 0 {
		t.Errorf("fresh document should be empty, got %d lines", fresh.LineCount())
	}
}

func TestStoreSaveClearsDirty(t *testing.T) {
	store := NewStore(t.TempDir())
	doc, err := store.Create("out.txt")
	if err != nil {
		t.Fatal(err)
	}
	doc.SetLines(1, 0, []string{"hello"})
	doc.MarkDirty()

	if err := store.Save(doc); err != nil {
		t.Fatal(err)
	}
	if doc.Dirty() {
		t.Error("Save should clear the dirty flag")
	}
	raw, err := os.ReadFile(filepath.Join(store.Root(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "hello\n" {
		t.Errorf("file content = %q", string(raw))
	}
}

func TestStoreReloadSkipsDirty(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "r.txt")
	if err := os.WriteFile(path, []byte("original\n"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewStore(root)
	doc, err := store.Load("r.txt")
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("changed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	store.reload("r.txt")
	if doc.Lines(1, 1)[0] != "changed" {
		t.Error("clean document should reload from disk")
	}

	if err := os.WriteFile(path, []byte("changed again\n"), 0644); err != nil {
		t.Fatal(err)
	}
	doc.MarkDirty()
	store.reload("r.txt")
	if doc.Lines(1, 1)[0] != "changed" {
		t.Error("dirty document must not be clobbered by reload")
	}
}

func TestWatcherReloadsOnExternalWrite(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "w.txt")
	if err := os.WriteFile(path, []byte("before\n"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(root)
	doc, err := store.Load("w.txt")
	if err != nil {
		t.Fatal(err)
	}
	watcher, err := store.Watch()
	if err != nil {
		t.Skipf("watcher unavailable: %v", err)
	}
	defer watcher.Close()

	if err := os.WriteFile(path, []byte("after\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if doc.Lines(1, 1)[0] == "after" {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Error("watcher did not reload the document")
}

func TestStoreSaveBackup(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewStore(root)
	store.SetBackup(true)

	doc, err := store.Load("a.txt")
	if err != nil {
		t.Fatal(err)
	}
	doc.SetLines(1, 1, []string{"new"})
	if err := store.Save(doc); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(filepath.Join(root, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "new\n" {
		t.Errorf("file content = %q", string(raw))
	}
	bak, err := os.ReadFile(filepath.Join(root, "a.txt.bak"))
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if string(bak) != "old\n" {
		t.Errorf("backup content = %q", string(bak))
	}
}

func TestStoreSaveBackupSkipsNewFile(t *testing.T) {
	store := NewStore(t.TempDir())
	store.SetBackup(true)

	doc, err := store.Create("fresh.txt")
	if err != nil {
		t.Fatal(err)
	}
	doc.SetLines(1, 0, []string{"hello"})
	if err := store.Save(doc); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(store.Root(), "fresh.txt.bak")); !os.IsNotExist(err) {
		t.Errorf("no backup expected for a brand-new file, stat err = %v", err)
	}
}

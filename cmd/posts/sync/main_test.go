package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunSyncAgainstTempCorpus(t *testing.T) {
	contentDir := t.TempDir()

	source := `---
title: Synced article
publish: true
---

Body of the synced article.
`
	if err := os.WriteFile(filepath.Join(contentDir, "synced-article.md"), []byte(source), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	err := runSync([]string{
		"-content-dir", contentDir,
		"-delete-orphans",
	})
	if err != nil {
		t.Fatalf("runSync: %v", err)
	}
}

func TestRunSyncRejectsUnknownFlag(t *testing.T) {
	if err := runSync([]string{"-bogus"}); err == nil {
		t.Fatal("expected flag parse error")
	}
}

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunBuildGeneratesSite(t *testing.T) {
	contentDir := t.TempDir()
	outputDir := t.TempDir()

	source := `---
title: Build target
slug: build-target
publish: true
created_at: 2024-02-01
---

Body of the build target article.
`
	if err := os.WriteFile(filepath.Join(contentDir, "build-target.md"), []byte(source), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	err := runBuild([]string{
		"-content-dir", contentDir,
		"-output-dir", outputDir,
	})
	if err != nil {
		t.Fatalf("runBuild: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outputDir, "build-target", "index.html")); err != nil {
		t.Fatalf("expected built article page: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "index.html")); err != nil {
		t.Fatalf("expected site index: %v", err)
	}
}

func TestRunBuildDryRunWritesNothing(t *testing.T) {
	contentDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "site")

	source := `---
title: Dry run target
publish: true
---

Body.
`
	if err := os.WriteFile(filepath.Join(contentDir, "dry-run-target.md"), []byte(source), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	err := runBuild([]string{
		"-content-dir", contentDir,
		"-output-dir", outputDir,
		"-dry-run",
	})
	if err != nil {
		t.Fatalf("runBuild dry-run: %v", err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dry run wrote %d entries", len(entries))
	}
}

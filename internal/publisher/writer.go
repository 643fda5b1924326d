package publisher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SiteWriter abstracts where rendered artifacts land so tests and alternative
// storage backends can swap the implementation.
type SiteWriter interface {
	EnsureDir(ctx context.Context, dir string) error
	WriteFile(ctx context.Context, path string, content []byte) error
	Clean(ctx context.Context) error
}

// NewDirWriter returns a SiteWriter rooted at the provided directory.
func NewDirWriter(root string) (SiteWriter, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("publisher: output directory is required")
	}
	return &dirWriter{root: filepath.Clean(root)}, nil
}

type dirWriter struct {
	root string
}

func (w *dirWriter) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := filepath.Join(w.root, filepath.FromSlash(dir))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("publisher: ensure dir %s: %w", dir, err)
	}
	return nil
}

func (w *dirWriter) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := filepath.Join(w.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("publisher: ensure parent of %s: %w", path, err)
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return fmt.Errorf("publisher: write %s: %w", path, err)
	}
	return nil
}

func (w *dirWriter) Clean(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("publisher: read output dir: %w", err)
	}
	// Remove contents rather than the directory itself so a mounted or
	// symlinked output root survives clean builds.
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(w.root, entry.Name())); err != nil {
			return fmt.Errorf("publisher: clean %s: %w", entry.Name(), err)
		}
	}
	return nil
}

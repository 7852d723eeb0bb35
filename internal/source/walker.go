package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/andyballingall/fmtree/internal/fsh"
)

// VisitFunc is called for every eligible file found by a Walker.
// Returning an error stops the walk.
type VisitFunc func(ctx context.Context, path string) error

// Walker recursively enumerates eligible files.
type Walker struct {
	classifier *Classifier
}

// NewWalker creates a Walker that visits files accepted by c.
func NewWalker(c *Classifier) *Walker {
	return &Walker{classifier: c}
}

// CheckRoots returns an error for the first root that is missing or not a directory.
func CheckRoots(roots []string) error {
	for _, root := range roots {
		ok, err := fsh.IsDir(root)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return &RootNotFoundError{Path: root}
			}
			return err
		}
		if !ok {
			return &NotADirectoryError{Path: root}
		}
	}
	return nil
}

// Walk lists dir in name order. Subdirectories are descended into as soon as they
// are met, eligible files are passed to fn, and everything else is skipped.
// Symlinks to directories are followed, but a directory already being walked higher
// up the same branch is not entered again. Any error aborts the walk.
func (w *Walker) Walk(ctx context.Context, dir string, fn VisitFunc) error {
	return w.walk(ctx, dir, fn, map[string]bool{})
}

func (w *Walker) walk(ctx context.Context, dir string, fn VisitFunc, ancestors map[string]bool) error {
	canonical, err := fsh.CanonicalPath(dir)
	if err != nil {
		return err
	}
	if ancestors[canonical] {
		// A symlink cycle.
		return nil
	}
	ancestors[canonical] = true
	defer delete(ancestors, canonical)

	entries, err := fsh.SortedEntries(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err = ctx.Err(); err != nil {
			return err
		}

		p := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			// A dangling link is treated as a file.
			if ok, sErr := fsh.IsDir(p); sErr == nil {
				isDir = ok
			}
		}

		if isDir {
			if err = w.walk(ctx, p, fn, ancestors); err != nil {
				return err
			}
			continue
		}
		if w.classifier.IsSource(p) {
			if err = fn(ctx, p); err != nil {
				return err
			}
		}
	}
	return nil
}

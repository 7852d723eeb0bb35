// Package formatter runs an external formatter over one file at a time and detects
// whether the file's content changed.
package formatter

import (
	"context"
	"log/slog"
	"os"

	"github.com/andyballingall/fmtree/internal/fsh"
)

// Status is the outcome of formatting one file.
type Status string

const (
	// StatusPass means the formatter output matched the file.
	StatusPass Status = "pass"
	// StatusChanged means the formatter output differed from the file.
	StatusChanged Status = "changed"
)

// Result describes the outcome of formatting one file.
type Result struct {
	Path   string
	Status Status
	// Digest is the digest of the formatted content.
	Digest string
	// Written is true if the file was rewritten. It is false in check mode.
	Written bool
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithTempDir sets where scratch files are created. The default is os.TempDir().
func WithTempDir(dir string) Option {
	return func(f *Formatter) {
		f.tempDir = dir
	}
}

// WithCheckOnly stops the Formatter writing changes back.
func WithCheckOnly(checkOnly bool) Option {
	return func(f *Formatter) {
		f.checkOnly = checkOnly
	}
}

// Formatter formats files in place using a Runner.
type Formatter struct {
	runner    Runner
	logger    *slog.Logger
	tempDir   string
	checkOnly bool
}

// New creates a Formatter.
func New(runner Runner, logger *slog.Logger, opts ...Option) *Formatter {
	f := &Formatter{
		runner: runner,
		logger: logger.With("component", "formatter"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FormatFile runs the formatter on path into a scratch file and compares digests.
// If they differ the scratch content is copied over path, unless the Formatter is
// check-only. The scratch file is always removed. On error path is not modified.
func (f *Formatter) FormatFile(ctx context.Context, path string) (Result, error) {
	before, err := fsh.Digest(path)
	if err != nil {
		return Result{}, err
	}

	scratch, err := os.CreateTemp(f.tempDir, f.runner.Name()+"-*")
	if err != nil {
		return Result{}, err
	}
	scratchPath := scratch.Name()
	defer func() {
		if rErr := os.Remove(scratchPath); rErr != nil {
			f.logger.Warn("failed to remove scratch file", "path", scratchPath, "error", rErr)
		}
	}()

	runErr := f.runner.Run(ctx, path, scratch)
	if cErr := scratch.Close(); cErr != nil && runErr == nil {
		runErr = cErr
	}
	if runErr != nil {
		return Result{}, runErr
	}

	after, err := fsh.Digest(scratchPath)
	if err != nil {
		return Result{}, err
	}

	f.logger.Debug("formatted", "path", path, "before", before, "after", after)

	if before == after {
		return Result{Path: path, Status: StatusPass, Digest: after}, nil
	}

	res := Result{Path: path, Status: StatusChanged, Digest: after}
	if f.checkOnly {
		return res, nil
	}
	if err = fsh.Overwrite(path, scratchPath); err != nil {
		return Result{}, err
	}
	res.Written = true
	return res, nil
}

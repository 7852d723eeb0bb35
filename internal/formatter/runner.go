package formatter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
)

// Runner runs the external formatting program for a single file.
type Runner interface {
	// Name is a short name for the formatter, used to name scratch files.
	Name() string
	// Run formats the file at path, writing the formatted content to stdout.
	Run(ctx context.Context, path string, stdout io.Writer) error
}

// ExecRunner runs a formatter executable found on the PATH.
// The file path is passed as the final argument.
type ExecRunner struct {
	command string
	args    []string
}

// NewExecRunner creates an ExecRunner for the given command and leading arguments.
func NewExecRunner(command string, args ...string) *ExecRunner {
	return &ExecRunner{command: command, args: slices.Clone(args)}
}

// Name returns the base name of the formatter executable.
func (r *ExecRunner) Name() string {
	return filepath.Base(r.command)
}

// LookPath returns the resolved path of the formatter executable.
func (r *ExecRunner) LookPath() (string, error) {
	p, err := exec.LookPath(r.command)
	if err != nil {
		return "", &NotFoundError{Command: r.command, Wrapped: err}
	}
	return p, nil
}

// Run executes the formatter and waits for it to finish.
func (r *ExecRunner) Run(ctx context.Context, path string, stdout io.Writer) error {
	args := append(slices.Clone(r.args), path)

	//nolint:gosec // the command comes from the user's own configuration
	cmd := exec.CommandContext(ctx, r.command, args...)
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return &NotFoundError{Command: r.command, Wrapped: err}
		}
		return &FailedError{
			Command: r.command,
			Path:    path,
			Stderr:  strings.TrimSpace(stderr.String()),
			Wrapped: err,
		}
	}
	return nil
}

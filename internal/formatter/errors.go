package formatter

import (
	"fmt"
)

// NotFoundError is returned when the formatter executable cannot be found.
type NotFoundError struct {
	Command string
	Wrapped error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("formatter '%s' not found: %v", e.Command, e.Wrapped)
}

func (e *NotFoundError) Unwrap() error { return e.Wrapped }

// FailedError is returned when the formatter could not be started or exited
// unsuccessfully. The file being formatted is left untouched.
type FailedError struct {
	Command string
	Path    string
	Stderr  string
	Wrapped error
}

func (e *FailedError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("formatter '%s' failed on %s: %v", e.Command, e.Path, e.Wrapped)
	}
	return fmt.Sprintf("formatter '%s' failed on %s: %v: %s", e.Command, e.Path, e.Wrapped, e.Stderr)
}

func (e *FailedError) Unwrap() error { return e.Wrapped }

package source

import (
	"fmt"
)

// RootNotFoundError is returned when a root directory to format does not exist.
type RootNotFoundError struct {
	Path string
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("directory not found: %s", e.Path)
}

// NotADirectoryError is returned when a root exists but is not a directory.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("not a directory: %s", e.Path)
}

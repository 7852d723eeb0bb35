package app

import (
	"fmt"
)

// UnformattedFilesError is returned in check mode when files need formatting.
type UnformattedFilesError struct {
	Count int
}

func (e *UnformattedFilesError) Error() string {
	if e.Count == 1 {
		return "1 file needs formatting"
	}
	return fmt.Sprintf("%d files need formatting", e.Count)
}

// UnsupportedOutputError is returned when a command cannot produce the requested
// output format.
type UnsupportedOutputError struct {
	Command string
	Output  string
}

func (e *UnsupportedOutputError) Error() string {
	return fmt.Sprintf("%s does not support '%s' output", e.Command, e.Output)
}

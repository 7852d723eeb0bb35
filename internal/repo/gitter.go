// Package repo queries the git repository fmtree runs in.
package repo

import (
	"context"
	"fmt"
)

// DefaultRevision is compared against when no revision is given.
const DefaultRevision Revision = "HEAD"

// Revision represents a specific git point-in-time (tag, branch or hash).
type Revision string

func (r Revision) String() string { return string(r) }

// Gitter defines the interface for git repository operations.
type Gitter interface {
	// ChangedFiles lists files under dirs that differ from rev in the working tree,
	// including untracked files. Deleted files are not listed. Paths are relative to
	// the repository working directory and sorted.
	ChangedFiles(ctx context.Context, rev Revision, dirs []string) ([]string, error)
}

// UnknownRevisionError is returned when a revision does not name a commit.
type UnknownRevisionError struct {
	Revision Revision
	Output   string
}

func (e *UnknownRevisionError) Error() string {
	return fmt.Sprintf("unknown git revision '%s': %s", e.Revision, e.Output)
}

package repo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
)

// CLIGitter is the concrete implementation of Gitter using the git CLI.
type CLIGitter struct {
	dir string
}

// NewCLIGitter creates a new CLIGitter running git in dir. An empty dir means the
// current working directory.
func NewCLIGitter(dir string) *CLIGitter {
	return &CLIGitter{dir: dir}
}

func (g *CLIGitter) git(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, fmt.Errorf("git %s failed: %w (output: %s)",
			args[0], err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// ChangedFiles lists files under dirs that differ from rev, plus untracked files.
func (g *CLIGitter) ChangedFiles(ctx context.Context, rev Revision, dirs []string) ([]string, error) {
	//nolint:gosec // CMD arguments are internal
	verify := exec.CommandContext(ctx, "git", "rev-parse", "--verify", "--quiet", rev.String()+"^{commit}")
	verify.Dir = g.dir
	if out, err := verify.CombinedOutput(); err != nil {
		return nil, &UnknownRevisionError{Revision: rev, Output: strings.TrimSpace(string(out))}
	}

	diffArgs := append([]string{"diff", "--name-only", "--relative", "--diff-filter=ACMR", rev.String(), "--"}, dirs...)
	diffOut, err := g.git(ctx, diffArgs...)
	if err != nil {
		return nil, err
	}

	lsArgs := append([]string{"ls-files", "--others", "--exclude-standard", "--"}, dirs...)
	lsOut, err := g.git(ctx, lsArgs...)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var files []string
	for _, out := range [][]byte{diffOut, lsOut} {
		for _, line := range strings.Split(string(out), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || seen[line] {
				continue
			}
			seen[line] = true
			files = append(files, filepath.FromSlash(line))
		}
	}
	slices.Sort(files)
	return files, nil
}

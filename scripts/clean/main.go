// Package main removes build and test artefacts, including files left behind by a
// manual fmtree run.
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	remove([]string{"bin", "dist", ".fmtree.log"})
	// Scratch files from an interrupted run in the default temp dir.
	removeMatches(filepath.Join(os.TempDir(), "clang-format-*"))
	removeMatches("coverage*", "*.out", "*.test")
}

func remove(paths []string) {
	for _, p := range paths {
		if _, err := os.Lstat(p); os.IsNotExist(err) {
			continue
		}
		if err := os.RemoveAll(p); err != nil {
			fmt.Printf("❌ Failed to remove %s: %v\n", p, err)
		} else {
			fmt.Printf("✅ Removed %s\n", p)
		}
	}
}

func removeMatches(patterns ...string) {
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			fmt.Printf("❌ Failed to glob pattern %s: %v\n", pattern, err)
			continue
		}
		remove(matches)
	}
}

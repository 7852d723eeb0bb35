package fsh

import (
	"os"
)

// SortedEntries returns the immediate entries of dirPath sorted by name.
// A symlink is reported as a symlink; use IsDir to resolve it.
func SortedEntries(dirPath string) ([]os.DirEntry, error) {
	// os.ReadDir already sorts by filename.
	return os.ReadDir(dirPath)
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

package fsh

import (
	//nolint:gosec // SHA-1 is used for change detection, not security
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"
)

// DigestLen is the length of a hex encoded digest.
const DigestLen = sha1.Size * 2

// Digest returns the hex encoded SHA-1 of the content of the file at path.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	//nolint:gosec // see import
	h := sha1.New()
	if _, err = io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

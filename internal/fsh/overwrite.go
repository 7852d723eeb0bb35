package fsh

import (
	"io"
	"os"
)

// Overwrite replaces the content of dst with the content of src in place.
// dst keeps its inode and permissions. The write is not atomic: a failure part way
// through leaves dst truncated.
func Overwrite(dst, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

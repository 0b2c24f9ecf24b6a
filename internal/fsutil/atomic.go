// Package fsutil provides filesystem helpers shared by the installer.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFileAtomic copies src to dst through a temp file in dst's directory
// followed by a rename, so dst is either the old file or the complete new one.
// An existing dst is replaced. The copy takes perm as its mode.
func CopyFileAtomic(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	dir, name := filepath.Split(dst)
	if dir == "" {
		dir = "."
	}
	tmpPath := filepath.Join(dir, ".tmp-"+name)

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpPath) // clean up on error

	if _, err := io.Copy(f, in); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// OpenFile honours the umask; force the requested mode.
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, dst)
}

// Package fileutil provides the filesystem copy primitive used during ingestion.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyPreservingTimes copies src to dst without leaving a partial file at the
// destination: bytes stream into a temporary sibling which is renamed into
// place only after the size check passes. Access and modification times are
// carried over from the source. Intermediate directories are created.
func CopyPreservingTimes(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	atime, mtime := fileTimes(srcInfo, src)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".partial"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	written, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if written != srcInfo.Size() {
		_ = os.Remove(tmp)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}

	if err := os.Chtimes(tmp, atime, mtime); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("preserve timestamps: %w", err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize copy: %w", err)
	}
	return nil
}

// PathExists reports whether path exists. Stat errors other than not-exist
// propagate so callers do not mistake an unreadable tree for an absent file.
func PathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

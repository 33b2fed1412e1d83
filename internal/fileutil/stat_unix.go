//go:build linux

package fileutil

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// fileTimes extracts access and modification times for a file. The access
// time requires the platform stat structure; modification time alone would
// force Chtimes to fabricate one.
func fileTimes(info os.FileInfo, path string) (atime, mtime time.Time) {
	mtime = info.ModTime()
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return mtime, mtime
	}
	return time.Unix(st.Atim.Unix()), mtime
}

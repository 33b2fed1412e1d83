//go:build !linux

package fileutil

import (
	"os"
	"time"
)

func fileTimes(info os.FileInfo, _ string) (atime, mtime time.Time) {
	mtime = info.ModTime()
	return mtime, mtime
}

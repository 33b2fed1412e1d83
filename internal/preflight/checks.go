package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"shoebox/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies the filesystem holding path has at least minGiB free.
func CheckFreeSpace(path string, minGiB int) Result {
	const name = "Free space"
	if minGiB <= 0 {
		return Result{Name: name, Passed: true, Detail: "minimum not configured"}
	}
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	freeBytes := stat.Bavail * uint64(stat.Bsize)
	freeGiB := freeBytes / (1 << 30)
	if freeGiB < uint64(minGiB) {
		return Result{Name: name, Detail: fmt.Sprintf("%d GiB free, %d GiB required", freeGiB, minGiB)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d GiB free", freeGiB)}
}

// CheckExiftool verifies the metadata extraction binary is on PATH.
func CheckExiftool(binary string) Result {
	const name = "ExifTool"
	statuses := deps.CheckBinaries([]deps.Requirement{{
		Name:        name,
		Command:     binary,
		Description: "Required for metadata extraction",
	}})
	status := statuses[0]
	if !status.Available {
		return Result{Name: name, Detail: status.Detail}
	}
	return Result{Name: name, Passed: true, Detail: status.Command}
}

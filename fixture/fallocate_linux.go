//go:build linux

package fixture

import (
	"os"

	"golang.org/x/sys/unix"
)

// reserveFile sizes a fixture file before it is mapped for writing, so a full
// disk surfaces as an error here instead of SIGBUS during the copy.
func reserveFile(file *os.File, size int64) error {
	fd := int(file.Fd())
	err := unix.Fallocate(fd, 0, 0, size)
	if err == unix.ENOSPC {
		return err
	}
	// Filesystems without fallocate (NFS, some FUSE mounts) only get a size.
	return unix.Ftruncate(fd, size)
}

//go:build linux

package fixture

import "golang.org/x/sys/unix"

// adviseSequential tells the kernel a fixture file is about to be read front
// to back. Errors are ignored.
func adviseSequential(file interface{ Fd() uintptr }, length int64) {
	_ = unix.Fadvise(int(file.Fd()), 0, length, unix.FADV_SEQUENTIAL)
}

//go:build darwin

package fixture

import (
	"os"

	"golang.org/x/sys/unix"
)

// reserveFile sizes a fixture file before it is mapped for writing.
// On macOS, space is reserved with fcntl F_PREALLOCATE.
func reserveFile(file *os.File, size int64) error {
	fst := unix.Fstore_t{
		Flags:   unix.F_ALLOCATEALL,
		Posmode: unix.F_PEOFPOSMODE,
		Offset:  0,
		Length:  size,
	}
	if err := unix.FcntlFstore(file.Fd(), unix.F_PREALLOCATE, &fst); err != nil {
		return unix.Ftruncate(int(file.Fd()), size)
	}
	// F_PREALLOCATE reserves blocks but leaves the length alone.
	return unix.Ftruncate(int(file.Fd()), size)
}

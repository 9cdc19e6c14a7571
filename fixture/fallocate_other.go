//go:build !linux && !darwin

package fixture

import "os"

// reserveFile sizes a fixture file before it is mapped for writing.
// Blocks may not actually be reserved on these platforms.
func reserveFile(file *os.File, size int64) error {
	return file.Truncate(size)
}

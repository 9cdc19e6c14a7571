//go:build !linux

package fixture

// adviseSequential is a no-op outside Linux.
func adviseSequential(file interface{ Fd() uintptr }, length int64) {}

//go:build !linux

package fixture

// prefaultForWrite is a no-op outside Linux.
func prefaultForWrite(data []byte) {}

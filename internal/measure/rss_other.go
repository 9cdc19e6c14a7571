//go:build !unix

package measure

// maxRSS is not available on this platform.
func maxRSS() uint64 { return 0 }

//go:build linux

package fixture

import "golang.org/x/sys/unix"

// madvPopulateWrite is MADV_POPULATE_WRITE, available since Linux 5.14.
const madvPopulateWrite = 23

// prefaultForWrite populates the pages of a freshly mapped fixture file so the
// copy loop does not take one fault per page. Older kernels return EINVAL,
// which is ignored.
func prefaultForWrite(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, madvPopulateWrite)
}

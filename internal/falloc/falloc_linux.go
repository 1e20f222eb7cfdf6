//go:build linux

package falloc

import (
	"os"

	"golang.org/x/sys/unix"
)

// preallocate uses fallocate(2) to reserve size bytes without writing them,
// letting the filesystem keep the region sparse until actually written.
func preallocate(f *os.File, size int64) error {
	return unix.Fallocate(int(f.Fd()), 0, 0, size)
}

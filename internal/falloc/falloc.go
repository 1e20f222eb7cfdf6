// Package falloc is the platform shim for file-space preallocation used by
// writer.StartWriteVector when reserving room for a two-phase vector.
//
// The contract is narrow on purpose: given an open, writable file and an
// absolute byte length, grow the file to at least that length as cheaply
// as the platform allows. Where the platform offers a true preallocation
// syscall it is used; otherwise the file is grown by seeking to the end
// and writing zero bytes, which is always correct but touches every page.
package falloc

import (
	"io"
	"os"
)

// Preallocate grows f to be at least size bytes, using the platform's
// preallocation syscall when available. It does not change the file's
// current read/write offset on return.
func Preallocate(f *os.File, size int64) error {
	cur, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	if err := preallocate(f, size); err != nil {
		if zerr := zeroFill(f, size); zerr != nil {
			return zerr
		}
	}

	_, err = f.Seek(cur, io.SeekStart)

	return err
}

// zeroFill extends f to size by writing zero bytes from the current end of
// file, for platforms (or filesystems) without a cheaper preallocation call.
func zeroFill(f *os.File, size int64) error {
	info, err := f.Stat()
	if err != nil {
		return err
	}

	if info.Size() >= size {
		return nil
	}

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		return err
	}

	const chunk = 64 * 1024

	var zero [chunk]byte

	remaining := size - info.Size()
	for remaining > 0 {
		n := int64(chunk)
		if remaining < n {
			n = remaining
		}

		if _, err := f.Write(zero[:n]); err != nil {
			return err
		}

		remaining -= n
	}

	return nil
}

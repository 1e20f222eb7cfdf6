//go:build !linux

package falloc

import (
	"errors"
	"os"
)

// preallocate has no portable equivalent outside Linux in this module;
// returning an error routes the caller to the zero-fill fallback.
func preallocate(f *os.File, size int64) error {
	return errors.ErrUnsupported
}

// Package checksum computes the optional whole-image or byte-range
// hash a caller may want to store as a directory entry. The container
// format itself carries no footer checksum — checksumming is a caller
// concern the writer/reader packages deliberately stay out of (spec
// §4.C "Close" / §4.I).
package checksum

import "github.com/cespare/xxhash/v2"

// Image returns the xxHash64 checksum of an entire mvl container image.
// Callers typically write the result as an INT64 or UINT8 vector and
// add a directory entry pointing at it, e.g. under the tag "checksum".
func Image(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// OfRange returns the xxHash64 checksum of data[start:end], for
// checksumming a single vector's payload rather than the whole image.
func OfRange(data []byte, start, end uint64) uint64 {
	return xxhash.Sum64(data[start:end])
}

// Verify reports whether data's checksum matches want.
func Verify(data []byte, want uint64) bool {
	return Image(data) == want
}

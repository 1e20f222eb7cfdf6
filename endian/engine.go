// Package endian provides byte order utilities used to probe the host's
// native endianness against the container's preamble.
//
// The container format itself is little-endian only (mvl carries an
// endianness marker and rejects a mismatch rather than byte-swapping), so
// this package is used in exactly one place: section.ParsePreamble checks the
// stored 1.0 float against IsNativeLittleEndian to decide whether the
// file was produced on (or is now being read on) a host with the
// opposite byte order.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	// Create a byte slice pointing to the memory address of 'i'.
	// We only need the first byte.
	b := (*[2]byte)(unsafe.Pointer(&i))

	// Check the first byte at the lowest memory address
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host this process runs on is
// little-endian — the only byte order mvl containers support.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

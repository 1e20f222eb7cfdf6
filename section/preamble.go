// Package section defines the fixed-size binary layouts shared by writer
// and reader: the preamble, the postamble, and the vector header (spec §6).
//
// Every struct here knows only its own byte layout — it has no notion of
// a stream or a mapped image. Writer and reader each drive these
// layouts against their own I/O primitives (a *os.File position for
// writer, a validated byte-range offset for reader).
package section

import (
	"encoding/binary"
	"math"

	"github.com/mvlformat/mvl/endian"
	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
)

// Preamble is the 64-byte header at offset 0 of every container.
type Preamble struct {
	Alignment uint32
}

// Bytes serializes the preamble, including the fixed signature and
// endianness probe.
func (p Preamble) Bytes() []byte {
	b := make([]byte, format.PreambleSize)
	copy(b[0:4], format.Signature)
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(format.EndiannessFlag))
	binary.LittleEndian.PutUint32(b[8:12], p.Alignment)
	// b[12:64] stays zero (reserved).
	return b
}

// ParsePreamble validates and parses a 64-byte preamble.
func ParsePreamble(b []byte) (Preamble, error) {
	if len(b) < format.PreambleSize {
		return Preamble{}, errs.ErrFailPreamble
	}

	if string(b[0:4]) != format.Signature {
		return Preamble{}, errs.ErrInvalidSignature
	}

	// The format is little-endian only: a conforming writer always stores
	// 1.0f in little-endian byte order. If decoding those bytes as
	// little-endian doesn't read back 1.0, either the file was produced
	// by a big-endian writer or this host itself is big-endian — both
	// are unsupported (spec Non-goal: no byte-swap mode).
	bits := binary.LittleEndian.Uint32(b[4:8])
	if math.Float32frombits(bits) != float32(1.0) {
		return Preamble{}, errs.ErrWrongEndianness
	}
	if !endian.IsNativeLittleEndian() {
		return Preamble{}, errs.ErrWrongEndianness
	}

	alignment := binary.LittleEndian.Uint32(b[8:12])

	return Preamble{Alignment: alignment}, nil
}

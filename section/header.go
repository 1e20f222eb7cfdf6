package section

import (
	"encoding/binary"

	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
)

// VectorHeader is the 64-byte header immediately preceding every vector's
// payload: a length, an element type, and an optional metadata offset
// pointing at that vector's attributes list.
type VectorHeader struct {
	Length   uint64
	Type     format.ElementType
	Metadata uint64
}

// Bytes serializes the header.
func (h VectorHeader) Bytes() []byte {
	b := make([]byte, format.HeaderSize)
	binary.LittleEndian.PutUint64(b[0:8], h.Length)
	binary.LittleEndian.PutUint32(b[8:12], uint32(h.Type))
	// b[12:56] stays zero (reserved).
	binary.LittleEndian.PutUint64(b[56:64], h.Metadata)

	return b
}

// ParseHeader parses a 64-byte vector header and checks that its element
// type is one of the closed set mvl recognizes.
func ParseHeader(b []byte) (VectorHeader, error) {
	if len(b) < format.HeaderSize {
		return VectorHeader{}, errs.ErrFailVector
	}

	h := VectorHeader{
		Length:   binary.LittleEndian.Uint64(b[0:8]),
		Type:     format.ElementType(binary.LittleEndian.Uint32(b[8:12])),
		Metadata: binary.LittleEndian.Uint64(b[56:64]),
	}

	if !h.Type.Valid() {
		return VectorHeader{}, errs.ErrUnknownType
	}

	return h, nil
}

// PayloadSize returns the unpadded byte size of the vector's payload.
// Length already counts whatever mvl_element_size(Type) elements were
// written — for PACKED_LIST64 that means the N+1-entry offsets array
// itself, not the N strings it addresses.
func (h VectorHeader) PayloadSize() (uint64, error) {
	size := h.Type.Size()
	if size <= 0 {
		return 0, errs.ErrUnknownType
	}

	return h.Length * uint64(size), nil
}

// PadSize returns the number of zero-padding bytes needed after a
// payload of the given size to reach the next alignment boundary.
func PadSize(payloadSize uint64, alignment uint32) uint64 {
	if alignment == 0 {
		return 0
	}

	rem := payloadSize % uint64(alignment)
	if rem == 0 {
		return 0
	}

	return uint64(alignment) - rem
}

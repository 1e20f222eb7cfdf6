package section

import "encoding/binary"

// EncodeOffsets serializes a slice of OFFSET64 values to their
// little-endian wire representation, the payload shape of every
// OFFSET64 and PACKED_LIST64 vector.
func EncodeOffsets(values []uint64) []byte {
	b := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(b[i*8:], v)
	}

	return b
}

// DecodeOffsets parses a byte slice as consecutive little-endian
// OFFSET64 values. len(b) must be a multiple of 8.
func DecodeOffsets(b []byte) []uint64 {
	out := make([]uint64, len(b)/8)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(b[i*8:])
	}

	return out
}

// EncodeInt32s serializes a slice of INT32 values to their
// little-endian wire representation.
func EncodeInt32s(values []int32) []byte {
	b := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(v))
	}

	return b
}

// DecodeInt32s parses a byte slice as consecutive little-endian INT32
// values. len(b) must be a multiple of 4.
func DecodeInt32s(b []byte) []int32 {
	out := make([]int32, len(b)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(b[i*4:]))
	}

	return out
}

package reader

import (
	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
	"github.com/mvlformat/mvl/section"
)

// ReadString returns the raw bytes of the CSTRING (or UINT8) vector at
// offset.
func (r *Reader) ReadString(offset uint64) ([]byte, error) {
	return r.readCString(offset)
}

// ReadPackedList returns the n strings addressed by the PACKED_LIST64
// vector at offset. The companion UINT8 vector is validated as a side
// effect of ValidateVector.
func (r *Reader) ReadPackedList(offset uint64) ([][]byte, error) {
	header, payload, err := r.ValidateVector(offset)
	if err != nil {
		return nil, err
	}
	if header.Type != format.PackedList64 || header.Length == 0 {
		return nil, errs.ErrCorruptPackedList
	}

	offsets := section.DecodeOffsets(payload)
	n := len(offsets) - 1

	companionOffset := offsets[0] - uint64(format.HeaderSize)

	_, companion, err := r.ValidateVector(companionOffset)
	if err != nil {
		return nil, errs.ErrCorruptPackedList
	}

	strs := make([][]byte, n)
	for i := 0; i < n; i++ {
		start := offsets[i] - offsets[0]
		end := offsets[i+1] - offsets[0]

		if end < start || end > uint64(len(companion)) {
			return nil, errs.ErrCorruptPackedList
		}

		strs[i] = companion[start:end]
	}

	return strs, nil
}

package reader

import (
	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
	"github.com/mvlformat/mvl/section"
)

// ValidateVector parses and bounds-checks the vector header at offset,
// returning the header and a slice over its payload bytes. No
// dereference of offset elsewhere in this package skips this call
// (spec §4.D "Validation discipline").
//
// A Reader constructed with NoBoundsCheck as its tracked length (via a
// legacy in-memory scenario where the mapped extent is not tracked)
// skips the range checks entirely; the header and element-type checks
// still apply.
func (r *Reader) ValidateVector(offset uint64) (section.VectorHeader, []byte, error) {
	unbounded := r.length == NoBoundsCheck

	if !unbounded {
		if offset+uint64(format.HeaderSize) > r.length {
			return section.VectorHeader{}, nil, errs.ErrInvalidOffset
		}
	} else if offset+uint64(format.HeaderSize) > uint64(len(r.data)) {
		return section.VectorHeader{}, nil, errs.ErrInvalidOffset
	}

	header, err := section.ParseHeader(r.data[offset : offset+uint64(format.HeaderSize)])
	if err != nil {
		return section.VectorHeader{}, nil, err
	}

	payloadSize, err := header.PayloadSize()
	if err != nil {
		return section.VectorHeader{}, nil, err
	}

	payloadStart := offset + uint64(format.HeaderSize)
	payloadEnd := payloadStart + payloadSize

	if !unbounded && payloadEnd > r.length {
		return section.VectorHeader{}, nil, errs.ErrInvalidLength
	}
	if payloadEnd > uint64(len(r.data)) {
		return section.VectorHeader{}, nil, errs.ErrInvalidLength
	}

	payload := r.data[payloadStart:payloadEnd]

	if header.Type == format.PackedList64 {
		if err := r.validatePackedListCompanion(header, payload); err != nil {
			return section.VectorHeader{}, nil, err
		}
	}

	return header, payload, nil
}

// validatePackedListCompanion checks that a PACKED_LIST64 vector's
// offsets array addresses a well-formed UINT8 companion vector: the
// first offset points at a valid companion vector's payload start, and
// the last offset does not run past that companion's payload end.
// Intermediate monotonicity is a postcondition callers rely on at point
// of use, not re-verified here.
func (r *Reader) validatePackedListCompanion(header section.VectorHeader, payload []byte) error {
	if header.Length == 0 {
		return errs.ErrCorruptPackedList
	}

	offsets := section.DecodeOffsets(payload)
	if offsets[0] < uint64(format.HeaderSize) {
		return errs.ErrCorruptPackedList
	}

	companionOffset := offsets[0] - uint64(format.HeaderSize)

	companionHeader, companionPayload, err := r.ValidateVector(companionOffset)
	if err != nil {
		return errs.ErrCorruptPackedList
	}
	if companionHeader.Type != format.Uint8 && companionHeader.Type != format.CString {
		return errs.ErrCorruptPackedList
	}

	companionEnd := offsets[0] + uint64(len(companionPayload))
	last := offsets[len(offsets)-1]
	if last > companionEnd {
		return errs.ErrCorruptPackedList
	}

	return nil
}

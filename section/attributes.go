package section

// Well-known attribute tags used by the named-list and data-frame wire
// encodings (spec §4.B, §4.H SUPPLEMENTED FEATURES).
const (
	AttrLayout   = "MVL_LAYOUT"
	AttrClass    = "class"
	AttrNames    = "names"
	AttrDim      = "dim"
	AttrRowNames = "rownames"

	LayoutR = "R"

	ClassList      = "list"
	ClassDataFrame = "data.frame"
)

// CorruptTag is substituted for a directory or named-list entry's tag
// when the underlying tag vector fails validation, so readers see a
// clearly marked sentinel instead of silently losing the entry.
const CorruptTag = "*CORRUPT*"

// InterleaveAttributeOffsets lays out an attributes-list vector's
// payload: the first n entries are offsets to the (cached-string) tag
// names, the next n are the attribute values, where n = len(tagOffsets).
func InterleaveAttributeOffsets(tagOffsets, valueOffsets []uint64) []uint64 {
	n := len(tagOffsets)
	out := make([]uint64, 2*n)
	copy(out[:n], tagOffsets)
	copy(out[n:], valueOffsets)

	return out
}

// DeinterleaveAttributeOffsets splits an attributes-list vector's raw
// OFFSET64 payload back into tag offsets and value offsets. ok is false
// if raw has an odd length, which can never come from a conforming
// writer.
func DeinterleaveAttributeOffsets(raw []uint64) (tagOffsets, valueOffsets []uint64, ok bool) {
	if len(raw)%2 != 0 {
		return nil, nil, false
	}

	n := len(raw) / 2

	return raw[:n], raw[n:], true
}

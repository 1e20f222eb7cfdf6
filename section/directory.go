package section

// The top-level directory is written in one of two encodings, and the
// postamble's Type field says which one a reader should expect:
//
//   - Legacy (PostambleLegacy): a plain OFFSET64 vector of length 2n with
//     no metadata. The first n entries are offsets to individual UINT8
//     vectors holding each tag's raw bytes; the next n are the entry
//     values. This is what mvl_write_directory produced historically.
//
//   - Current (PostambleCurrent): the directory written through the
//     general named-list encoding (see namedlist and writer.WriteNamedList)
//     with class "list" — an OFFSET64 vector of entry values whose
//     metadata points at an attributes list carrying a packed-list of
//     tag names plus the MVL_LAYOUT/class attributes.
//
// A Writer emits exactly one of the two, selected at Open time; the
// postamble's Type tells a reader which encoding to expect. A reader,
// unlike the reference C implementation (which supports only whichever
// encoding it was compiled for), understands both unconditionally.

// BuildLegacyDirectoryPayload lays out the legacy directory vector's
// payload: all tag-vector offsets first, then all value offsets.
func BuildLegacyDirectoryPayload(tagVectorOffsets, valueOffsets []uint64) []uint64 {
	return InterleaveAttributeOffsets(tagVectorOffsets, valueOffsets)
}

// ParseLegacyDirectoryPayload splits a legacy directory vector's raw
// payload back into tag-vector offsets and value offsets.
func ParseLegacyDirectoryPayload(raw []uint64) (tagVectorOffsets, valueOffsets []uint64, ok bool) {
	return DeinterleaveAttributeOffsets(raw)
}

package writer

import (
	"github.com/mvlformat/mvl/format"
	"github.com/mvlformat/mvl/section"
)

// WriteString writes a CSTRING vector holding s verbatim.
func (w *Writer) WriteString(s []byte, metadata uint64) (uint64, error) {
	return w.WriteVector(format.CString, uint64(len(s)), s, metadata)
}

// WriteCachedString writes a CSTRING vector holding s, unless an
// identical string was already written through this Writer, in which
// case the earlier offset is returned. Cached strings carry no
// metadata, matching mvl_write_cached_string (spec §4.A SUPPLEMENTED /
// §4.H).
func (w *Writer) WriteCachedString(s []byte) (uint64, error) {
	if offset, ok := w.cachedStrings.Find(s); ok {
		return offset, nil
	}

	offset, err := w.WriteString(s, format.NoMetadata)
	if err != nil {
		return 0, err
	}

	w.cachedStrings.Append(s, offset)

	return offset, nil
}

// WritePackedList writes the given strings as a single PACKED_LIST64
// vector: a companion UINT8 vector holding the concatenated bytes,
// followed by an (n+1)-entry offsets array delimiting each entry.
func (w *Writer) WritePackedList(strs [][]byte, metadata uint64) (uint64, error) {
	charOffset, err := w.WriteConcatVectors(format.Uint8, strs, format.NoMetadata)
	if err != nil {
		return 0, err
	}

	offsets := make([]uint64, len(strs)+1)
	offsets[0] = charOffset + uint64(format.HeaderSize)
	for i, s := range strs {
		offsets[i+1] = offsets[i] + uint64(len(s))
	}

	return w.WriteVector(format.PackedList64, uint64(len(offsets)), section.EncodeOffsets(offsets), metadata)
}

// attrEntry is one (tag, value) pair destined for an attributes list.
type attrEntry struct {
	tag   []byte
	value uint64
}

// writeAttributesList writes an attributes-list vector: an OFFSET64
// vector of length 2n whose first n entries are offsets to each entry's
// cached-string tag and whose next n entries are the attribute values.
func (w *Writer) writeAttributesList(entries []attrEntry) (uint64, error) {
	tagOffsets := make([]uint64, len(entries))
	valueOffsets := make([]uint64, len(entries))

	for i, e := range entries {
		tagOffset, err := w.WriteCachedString(e.tag)
		if err != nil {
			return 0, err
		}

		tagOffsets[i] = tagOffset
		valueOffsets[i] = e.value
	}

	raw := section.InterleaveAttributeOffsets(tagOffsets, valueOffsets)

	return w.WriteVector(format.Offset64, uint64(len(raw)), section.EncodeOffsets(raw), format.NoMetadata)
}

// characterClassOffset returns (writing it once, lazily) the attributes
// list offset describing an R-style character vector: {MVL_LAYOUT: "R",
// class: "character"}. Pass this as a PACKED_LIST64 vector's metadata to
// mark it as a character column (spec §4.H SUPPLEMENTED FEATURES).
func (w *Writer) characterClassOffset() (uint64, error) {
	if w.charClassOnce != format.NoMetadata {
		return w.charClassOnce, nil
	}

	layoutValue, err := w.WriteCachedString([]byte(section.LayoutR))
	if err != nil {
		return 0, err
	}
	classValue, err := w.WriteCachedString([]byte("character"))
	if err != nil {
		return 0, err
	}

	finalOffset, err := w.writeAttributesList([]attrEntry{
		{tag: []byte(section.AttrLayout), value: layoutValue},
		{tag: []byte(section.AttrClass), value: classValue},
	})
	if err != nil {
		return 0, err
	}

	w.charClassOnce = finalOffset

	return finalOffset, nil
}

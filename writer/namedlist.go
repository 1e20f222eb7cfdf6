package writer

import (
	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
	"github.com/mvlformat/mvl/namedlist"
	"github.com/mvlformat/mvl/section"
)

// AddDirectoryEntry adds (tag, offset) to the file's top-level
// directory. Tags may repeat; Close writes out every entry, and readers
// honor last-insertion-wins when looking one up.
func (w *Writer) AddDirectoryEntry(tag []byte, offset uint64) {
	w.directory.Append(tag, offset)
}

// namesOf extracts the packed-list-ready tag byte slices of a list, in
// insertion order.
func namesOf(l *namedlist.List) [][]byte {
	tags := make([][]byte, l.Len())
	for i := range tags {
		tags[i] = l.Tag(i)
	}

	return tags
}

func valuesOf(l *namedlist.List) []uint64 {
	values := make([]uint64, l.Len())
	for i := range values {
		values[i] = l.Value(i)
	}

	return values
}

// writeNamedListAs writes list as an OFFSET64 vector of its values,
// with metadata describing an R-style list of the given class and a
// packed-list "names" attribute. Any extra attributes are appended
// after MVL_LAYOUT/class/names.
func (w *Writer) writeNamedListAs(list *namedlist.List, class string, extra []attrEntry) (uint64, error) {
	namesOffset, err := w.WritePackedList(namesOf(list), format.NoMetadata)
	if err != nil {
		return 0, err
	}

	layoutValue, err := w.WriteCachedString([]byte(section.LayoutR))
	if err != nil {
		return 0, err
	}
	classValue, err := w.WriteCachedString([]byte(class))
	if err != nil {
		return 0, err
	}

	entries := append([]attrEntry{
		{tag: []byte(section.AttrLayout), value: layoutValue},
		{tag: []byte(section.AttrClass), value: classValue},
		{tag: []byte(section.AttrNames), value: namesOffset},
	}, extra...)

	metadataOffset, err := w.writeAttributesList(entries)
	if err != nil {
		return 0, err
	}

	values := valuesOf(list)

	return w.WriteVector(format.Offset64, uint64(len(values)), section.EncodeOffsets(values), metadataOffset)
}

// WriteNamedList writes list out with class "list", the encoding R
// reads back as a plain named list.
func (w *Writer) WriteNamedList(list *namedlist.List) (uint64, error) {
	return w.writeNamedListAs(list, section.ClassList, nil)
}

// WriteNamedListAsClass writes list out with a caller-chosen class tag,
// e.g. "MVL_INDEX" for a persisted extent/partition index.
func (w *Writer) WriteNamedListAsClass(list *namedlist.List, class string) (uint64, error) {
	return w.writeNamedListAs(list, class, nil)
}

// WriteDataFrame writes list out in the style of an R data frame: every
// entry of list is assumed to be a column vector with nrows elements
// (packed-list columns have nrows+1 offsets). rowNames, if non-zero, is
// the offset of a previously written vector of row labels; pass 0 to
// omit it (spec §4.H SUPPLEMENTED FEATURES).
func (w *Writer) WriteDataFrame(list *namedlist.List, nrows uint32, rowNames uint64) (uint64, error) {
	if list.Len() == 0 {
		return 0, errs.ErrInvalidParameter
	}

	dim := []int32{int32(nrows), int32(list.Len())}
	dimOffset, err := w.WriteVector(format.Int32, uint64(len(dim)), section.EncodeInt32s(dim), format.NoMetadata)
	if err != nil {
		return 0, err
	}

	extra := []attrEntry{{tag: []byte(section.AttrDim), value: dimOffset}}
	if rowNames != format.NullOffset {
		extra = append(extra, attrEntry{tag: []byte(section.AttrRowNames), value: rowNames})
	}

	return w.writeNamedListAs(list, section.ClassDataFrame, extra)
}

// writeDirectory writes out the accumulated top-level directory in the
// encoding this Writer was configured for, returning the directory
// vector's offset and the postamble type a reader should expect.
func (w *Writer) writeDirectory() (uint64, format.PostambleType, error) {
	if w.legacy {
		offset, err := w.writeLegacyDirectory()
		if err != nil {
			return 0, 0, err
		}

		return offset, format.PostambleLegacy, nil
	}

	offset, err := w.WriteNamedList(w.directory)
	if err != nil {
		return 0, 0, err
	}

	return offset, format.PostambleCurrent, nil
}

// writeLegacyDirectory writes each directory tag as its own standalone
// UINT8 vector, then a flat OFFSET64 vector holding those tag vector
// offsets followed by the entry values — the pre-named-list encoding
// still recognized for backward compatibility.
func (w *Writer) writeLegacyDirectory() (uint64, error) {
	n := w.directory.Len()
	tagOffsets := make([]uint64, n)

	for i := 0; i < n; i++ {
		offset, err := w.WriteVector(format.Uint8, uint64(len(w.directory.Tag(i))), w.directory.Tag(i), format.NoMetadata)
		if err != nil {
			return 0, err
		}

		tagOffsets[i] = offset
	}

	raw := section.BuildLegacyDirectoryPayload(tagOffsets, valuesOf(w.directory))

	return w.WriteVector(format.Offset64, uint64(len(raw)), section.EncodeOffsets(raw), format.NoMetadata)
}

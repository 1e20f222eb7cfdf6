package reader

import (
	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
	"github.com/mvlformat/mvl/namedlist"
	"github.com/mvlformat/mvl/section"
)

// ReadAttributesList reads the attributes-list vector at offset: an
// OFFSET64 vector of length 2n whose first n entries are tag offsets
// and whose next n are value offsets. An entry whose tag fails
// validation is not dropped — it is kept with section.CorruptTag as
// its tag, mirroring mvl_read_attributes_list's graceful degradation
// (spec §4.D).
func (r *Reader) ReadAttributesList(offset uint64) (*namedlist.List, error) {
	header, payload, err := r.ValidateVector(offset)
	if err != nil {
		return nil, err
	}
	if header.Type != format.Offset64 || header.Length%2 != 0 {
		return nil, errs.ErrInvalidAttrList
	}

	raw := section.DecodeOffsets(payload)
	tagOffsets, valueOffsets, ok := section.DeinterleaveAttributeOffsets(raw)
	if !ok {
		return nil, errs.ErrInvalidAttrList
	}

	n := len(tagOffsets)
	list := namedlist.New(n)

	for i := 0; i < n; i++ {
		tag, err := r.readCString(tagOffsets[i])
		if err != nil {
			r.recordCorruptTag(tagOffsets[i], err)
			list.Append([]byte(section.CorruptTag), valueOffsets[i])
			continue
		}

		list.Append(tag, valueOffsets[i])
	}

	list.RebuildHash()

	return list, nil
}

// ReadNamedList reads the named-list vector at offset: an OFFSET64
// vector of entry values whose metadata points at an attributes list
// carrying at least a "names" attribute. names may be encoded either
// as an OFFSET64 vector of CSTRING offsets (length must equal the
// entry count) or as a PACKED_LIST64 (length must equal entry count +
// 1) — mirroring mvl_read_named_list. An entry whose name fails to
// resolve falls back to section.CorruptTag rather than aborting the
// whole list.
func (r *Reader) ReadNamedList(offset uint64) (*namedlist.List, error) {
	header, payload, err := r.ValidateVector(offset)
	if err != nil {
		return nil, err
	}
	if header.Type != format.Offset64 {
		return nil, errs.ErrInvalidDirectory
	}

	values := section.DecodeOffsets(payload)
	n := len(values)

	names := make([][]byte, n)
	for i := range names {
		names[i] = []byte(section.CorruptTag)
	}

	if header.Metadata != format.NoMetadata {
		if attrs, err := r.ReadAttributesList(header.Metadata); err == nil {
			if namesOffset, ok := attrs.Find([]byte(section.AttrNames)); ok {
				if resolved, err := r.readNames(namesOffset, n); err == nil {
					names = resolved
				}
			}
		}
	}

	list := namedlist.New(n)
	for i := 0; i < n; i++ {
		list.Append(names[i], values[i])
	}
	list.RebuildHash()

	return list, nil
}

// readNames resolves a "names" attribute's value into exactly n tag
// byte slices, accepting either of the two encodings mvl_read_named_list
// recognizes.
func (r *Reader) readNames(offset uint64, n int) ([][]byte, error) {
	header, payload, err := r.ValidateVector(offset)
	if err != nil {
		return nil, err
	}

	switch header.Type {
	case format.Offset64:
		if int(header.Length) != n {
			return nil, errs.ErrInvalidAttrList
		}

		offsets := section.DecodeOffsets(payload)
		out := make([][]byte, n)

		for i, o := range offsets {
			tag, err := r.readCString(o)
			if err != nil {
				r.recordCorruptTag(o, err)
				tag = []byte(section.CorruptTag)
			}
			out[i] = tag
		}

		return out, nil
	case format.PackedList64:
		if int(header.Length) != n+1 {
			return nil, errs.ErrInvalidAttrList
		}

		return r.ReadPackedList(offset)
	default:
		return nil, errs.ErrInvalidAttrList
	}
}

// readCString validates and returns the raw bytes of a CSTRING (or
// UINT8) vector at offset, used for tag resolution.
func (r *Reader) readCString(offset uint64) ([]byte, error) {
	header, payload, err := r.ValidateVector(offset)
	if err != nil {
		return nil, err
	}
	if header.Type != format.CString && header.Type != format.Uint8 {
		return nil, errs.ErrInvalidAttr
	}

	return payload, nil
}

package reader

import (
	"encoding/binary"
	"math"

	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
	"github.com/mvlformat/mvl/namedlist"
	"github.com/mvlformat/mvl/section"
)

// VectorView is a validated, typed window onto a single vector's
// payload, returned by View. It borrows the reader's backing bytes —
// it is only valid as long as the Reader it came from stays open.
type VectorView struct {
	Header  section.VectorHeader
	payload []byte
}

// View validates and wraps the vector at offset, ready for typed access.
func (r *Reader) View(offset uint64) (VectorView, error) {
	header, payload, err := r.ValidateVector(offset)
	if err != nil {
		return VectorView{}, err
	}

	return VectorView{Header: header, payload: payload}, nil
}

// Type returns the vector's element type.
func (v VectorView) Type() format.ElementType {
	return v.Header.Type
}

// Len returns the vector's declared element count.
func (v VectorView) Len() uint64 {
	return v.Header.Length
}

// Uint8s interprets the view as a UINT8 vector.
func (v VectorView) Uint8s() ([]byte, error) {
	if v.Header.Type != format.Uint8 && v.Header.Type != format.CString {
		return nil, errs.ErrUnknownType
	}

	return v.payload, nil
}

// Int32s interprets the view as an INT32 vector.
func (v VectorView) Int32s() ([]int32, error) {
	if v.Header.Type != format.Int32 {
		return nil, errs.ErrUnknownType
	}

	return section.DecodeInt32s(v.payload), nil
}

// Int64s interprets the view as an INT64 vector.
func (v VectorView) Int64s() ([]int64, error) {
	if v.Header.Type != format.Int64 {
		return nil, errs.ErrUnknownType
	}

	out := make([]int64, len(v.payload)/8)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(v.payload[i*8:]))
	}

	return out, nil
}

// Float32s interprets the view as a FLOAT vector.
func (v VectorView) Float32s() ([]float32, error) {
	if v.Header.Type != format.Float32 {
		return nil, errs.ErrUnknownType
	}

	out := make([]float32, len(v.payload)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(v.payload[i*4:]))
	}

	return out, nil
}

// Float64s interprets the view as a DOUBLE vector.
func (v VectorView) Float64s() ([]float64, error) {
	if v.Header.Type != format.Float64 {
		return nil, errs.ErrUnknownType
	}

	out := make([]float64, len(v.payload)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(v.payload[i*8:]))
	}

	return out, nil
}

// Offsets interprets the view as an OFFSET64 (or PACKED_LIST64 offsets
// array) vector.
func (v VectorView) Offsets() ([]uint64, error) {
	if v.Header.Type != format.Offset64 && v.Header.Type != format.PackedList64 {
		return nil, errs.ErrUnknownType
	}

	return section.DecodeOffsets(v.payload), nil
}

// AsDouble converts the scalar (length-1) vector at offset to a
// float64, widening integer types and treating a CSTRING/UINT8 payload
// as a parse failure. Equivalent to mvl_as_double (spec §4.H
// SUPPLEMENTED FEATURES).
func (r *Reader) AsDouble(offset uint64) (float64, error) {
	view, err := r.View(offset)
	if err != nil {
		return 0, err
	}
	if view.Header.Length == 0 {
		return 0, errs.ErrInvalidLength
	}

	switch view.Header.Type {
	case format.Int32:
		vals, _ := view.Int32s()
		return float64(vals[0]), nil
	case format.Int64:
		vals, _ := view.Int64s()
		return float64(vals[0]), nil
	case format.Float32:
		vals, _ := view.Float32s()
		return float64(vals[0]), nil
	case format.Float64:
		vals, _ := view.Float64s()
		return vals[0], nil
	default:
		return 0, errs.ErrUnknownType
	}
}

// AsDoubleDefault is AsDouble, returning def instead of an error when
// offset is format.NullOffset or conversion fails. Equivalent to
// mvl_as_double_default.
func (r *Reader) AsDoubleDefault(offset uint64, def float64) float64 {
	if offset == format.NullOffset {
		return def
	}

	v, err := r.AsDouble(offset)
	if err != nil {
		return def
	}

	return v
}

// AsOffset returns offset unchanged if it points at a valid vector,
// or format.NullOffset otherwise. Equivalent to mvl_as_offset.
func (r *Reader) AsOffset(offset uint64) uint64 {
	if _, _, err := r.ValidateVector(offset); err != nil {
		return format.NullOffset
	}

	return offset
}

// NamedListGetDouble looks tag up in list and converts its value with
// AsDouble. Equivalent to mvl_named_list_get_double.
func (r *Reader) NamedListGetDouble(list *namedlist.List, tag []byte) (float64, error) {
	offset, ok := list.Find(tag)
	if !ok {
		return 0, errs.ErrInvalidParameter
	}

	return r.AsDouble(offset)
}

// NamedListGetDoubleDefault is NamedListGetDouble, returning def when
// tag is absent or conversion fails. Equivalent to
// mvl_named_list_get_double_default.
func (r *Reader) NamedListGetDoubleDefault(list *namedlist.List, tag []byte, def float64) float64 {
	v, err := r.NamedListGetDouble(list, tag)
	if err != nil {
		return def
	}

	return v
}

// NamedListGetOffset looks tag up in list and returns its value offset
// if it validates, or format.NullOffset otherwise. Equivalent to
// mvl_named_list_get_offset.
func (r *Reader) NamedListGetOffset(list *namedlist.List, tag []byte) uint64 {
	offset, ok := list.Find(tag)
	if !ok {
		return format.NullOffset
	}

	return r.AsOffset(offset)
}

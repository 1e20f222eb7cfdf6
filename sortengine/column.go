// Package sortengine implements the multi-key lexicographic stable sort
// over an index array against a set of typed column vectors (spec
// §4.E), grounded on the run-refinement structure of
// original_source/src/libMVL_sort.cc's mvl_sort_indices.
package sortengine

import (
	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
	"github.com/mvlformat/mvl/internal/hash"
	"github.com/mvlformat/mvl/reader"
)

// Column is one typed vector considered as a sort key. Construct with
// ColumnFromView or one of the typed New*Column helpers.
type Column struct {
	elemType format.ElementType
	n        uint64

	u8  []byte
	i32 []int32
	i64 []int64
	f32 []float32
	f64 []float64
	off []uint64

	packedOffsets []uint64
	packedData    []byte
}

// NewUint8Column wraps a UINT8/CSTRING vector's bytes, one row per byte.
func NewUint8Column(b []byte) Column {
	return Column{elemType: format.Uint8, n: uint64(len(b)), u8: b}
}

// NewInt32Column wraps an INT32 vector's values.
func NewInt32Column(v []int32) Column {
	return Column{elemType: format.Int32, n: uint64(len(v)), i32: v}
}

// NewInt64Column wraps an INT64 vector's values.
func NewInt64Column(v []int64) Column {
	return Column{elemType: format.Int64, n: uint64(len(v)), i64: v}
}

// NewFloat32Column wraps a FLOAT vector's values.
func NewFloat32Column(v []float32) Column {
	return Column{elemType: format.Float32, n: uint64(len(v)), f32: v}
}

// NewFloat64Column wraps a DOUBLE vector's values.
func NewFloat64Column(v []float64) Column {
	return Column{elemType: format.Float64, n: uint64(len(v)), f64: v}
}

// NewOffset64Column wraps an OFFSET64 vector's values.
func NewOffset64Column(v []uint64) Column {
	return Column{elemType: format.Offset64, n: uint64(len(v)), off: v}
}

// NewPackedListColumn wraps a PACKED_LIST64 vector given its raw (n+1)
// offsets array and the companion vector's payload bytes. Entries
// compare byte-lexicographically, shorter-is-less on a tied prefix.
func NewPackedListColumn(offsets []uint64, companion []byte) Column {
	return Column{elemType: format.PackedList64, packedOffsets: offsets, packedData: companion}
}

// ColumnFromView resolves the vector at offset through r into a Column
// ready for sorting, reusing the reader's own validation (spec §4.D).
func ColumnFromView(r *reader.Reader, offset uint64) (Column, error) {
	view, err := r.View(offset)
	if err != nil {
		return Column{}, err
	}

	switch view.Type() {
	case format.Uint8, format.CString:
		b, err := view.Uint8s()
		if err != nil {
			return Column{}, err
		}

		return NewUint8Column(b), nil
	case format.Int32:
		v, err := view.Int32s()
		if err != nil {
			return Column{}, err
		}

		return NewInt32Column(v), nil
	case format.Int64:
		v, err := view.Int64s()
		if err != nil {
			return Column{}, err
		}

		return NewInt64Column(v), nil
	case format.Float32:
		v, err := view.Float32s()
		if err != nil {
			return Column{}, err
		}

		return NewFloat32Column(v), nil
	case format.Float64:
		v, err := view.Float64s()
		if err != nil {
			return Column{}, err
		}

		return NewFloat64Column(v), nil
	case format.Offset64:
		v, err := view.Offsets()
		if err != nil {
			return Column{}, err
		}

		return NewOffset64Column(v), nil
	case format.PackedList64:
		offsets, err := view.Offsets()
		if err != nil {
			return Column{}, err
		}
		companion, err := r.ReadPackedList(offset)
		if err != nil {
			return Column{}, err
		}

		var flat []byte
		for _, s := range companion {
			flat = append(flat, s...)
		}

		return NewPackedListColumn(offsets, flat), nil
	default:
		return Column{}, errs.ErrUnknownType
	}
}

// Type returns the column's element type.
func (c Column) Type() format.ElementType {
	return c.elemType
}

// Len returns the column's row count: the PACKED_LIST64 offsets array
// has one more entry than there are rows.
func (c Column) Len() uint64 {
	if c.elemType == format.PackedList64 {
		if len(c.packedOffsets) == 0 {
			return 0
		}

		return uint64(len(c.packedOffsets)) - 1
	}

	return c.n
}

func (c Column) packedEntry(i uint64) []byte {
	base := c.packedOffsets[0]
	start := c.packedOffsets[i] - base
	end := c.packedOffsets[i+1] - base

	return c.packedData[start:end]
}

func (c Column) less(i, j uint64) bool {
	switch c.elemType {
	case format.Uint8, format.CString:
		return c.u8[i] < c.u8[j]
	case format.Int32:
		return c.i32[i] < c.i32[j]
	case format.Int64:
		return c.i64[i] < c.i64[j]
	case format.Float32:
		return c.f32[i] < c.f32[j]
	case format.Float64:
		return c.f64[i] < c.f64[j]
	case format.Offset64:
		return c.off[i] < c.off[j]
	case format.PackedList64:
		a, b := c.packedEntry(i), c.packedEntry(j)
		n := len(a)
		if len(b) < n {
			n = len(b)
		}
		for k := 0; k < n; k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}

		return len(a) < len(b)
	default:
		return false
	}
}

func (c Column) equal(i, j uint64) bool {
	switch c.elemType {
	case format.Uint8, format.CString:
		return c.u8[i] == c.u8[j]
	case format.Int32:
		return c.i32[i] == c.i32[j]
	case format.Int64:
		return c.i64[i] == c.i64[j]
	case format.Float32:
		return c.f32[i] == c.f32[j]
	case format.Float64:
		return c.f64[i] == c.f64[j]
	case format.Offset64:
		return c.off[i] == c.off[j]
	case format.PackedList64:
		a, b := c.packedEntry(i), c.packedEntry(j)
		if len(a) != len(b) {
			return false
		}
		for k := range a {
			if a[k] != b[k] {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// EqualAt reports whether row i of c equals row j of other, which may
// be a different Column instance (even drawn from a different mapped
// file) so long as both hold the same element type. Mirrors
// mvl_equals's per-column comparison, generalized to arbitrary pairs of
// columns rather than always comparing a column to itself.
func (c Column) EqualAt(i uint64, other Column, j uint64) bool {
	if c.elemType != other.elemType {
		return false
	}

	switch c.elemType {
	case format.Uint8, format.CString:
		return c.u8[i] == other.u8[j]
	case format.Int32:
		return c.i32[i] == other.i32[j]
	case format.Int64:
		return c.i64[i] == other.i64[j]
	case format.Float32:
		return c.f32[i] == other.f32[j]
	case format.Float64:
		return c.f64[i] == other.f64[j]
	case format.Offset64:
		return c.off[i] == other.off[j]
	case format.PackedList64:
		a, b := c.packedEntry(i), other.packedEntry(j)
		if len(a) != len(b) {
			return false
		}
		for k := range a {
			if a[k] != b[k] {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// Float64Values widens the column's values to []float64 for the four
// numeric element types (INT32/INT64/FLOAT/DOUBLE); ok is false for any
// other type, including PACKED_LIST64 and UINT8. Used by stats.ComputeVecStats
// and stats.NormalizeVector, which operate on numeric vectors only.
func (c Column) Float64Values() (values []float64, ok bool) {
	switch c.elemType {
	case format.Int32:
		out := make([]float64, len(c.i32))
		for i, v := range c.i32 {
			out[i] = float64(v)
		}

		return out, true
	case format.Int64:
		out := make([]float64, len(c.i64))
		for i, v := range c.i64 {
			out[i] = float64(v)
		}

		return out, true
	case format.Float32:
		out := make([]float64, len(c.f32))
		for i, v := range c.f32 {
			out[i] = float64(v)
		}

		return out, true
	case format.Float64:
		return c.f64, true
	default:
		return nil, false
	}
}

// HashRow folds row i of c into the running accumulator h, using the
// same value-equivalence rules as internal/hash (an INT32 and an INT64
// holding the same number hash identically, and likewise for
// FLOAT/DOUBLE). Equivalent to one column's contribution inside
// mvl_hash_indices / mvl_hash_range.
func (c Column) HashRow(h uint64, i uint64) uint64 {
	switch c.elemType {
	case format.Uint8, format.CString:
		return hash.Accumulate(h, c.u8[i:i+1])
	case format.Int32:
		return hash.AccumulateInt32(h, c.i32[i])
	case format.Int64:
		return hash.AccumulateInt64(h, c.i64[i])
	case format.Float32:
		return hash.AccumulateFloat32(h, c.f32[i])
	case format.Float64:
		return hash.AccumulateFloat64(h, c.f64[i])
	case format.Offset64:
		return hash.AccumulateOffset64(h, c.off[i])
	case format.PackedList64:
		return hash.Accumulate(h, c.packedEntry(i))
	default:
		return h
	}
}

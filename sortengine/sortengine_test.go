package sortengine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
)

func TestSortIndicesSingleColumnAscending(t *testing.T) {
	require := require.New(t)

	col := NewInt32Column([]int32{30, 10, 20, 10})
	indices := []uint64{0, 1, 2, 3}

	require.NoError(SortIndices(indices, []Column{col}, Ascending))
	// Rows 1 and 3 tie at value 10; stability breaks the tie by original index.
	require.Equal([]uint64{1, 3, 2, 0}, indices)
}

func TestSortIndicesSingleColumnDescending(t *testing.T) {
	require := require.New(t)

	col := NewInt32Column([]int32{30, 10, 20, 10})
	indices := []uint64{0, 1, 2, 3}

	require.NoError(SortIndices(indices, []Column{col}, Descending))
	require.Equal([]uint64{0, 2, 1, 3}, indices)
}

func TestSortIndicesMultiColumnBreaksTies(t *testing.T) {
	require := require.New(t)

	// region ties rows {0,2} and {1,3}; amount breaks each tie.
	region := NewInt32Column([]int32{1, 2, 1, 2})
	amount := NewFloat64Column([]float64{5.0, 9.0, 1.0, 3.0})
	indices := []uint64{0, 1, 2, 3}

	require.NoError(SortIndices(indices, []Column{region, amount}, Ascending))
	require.Equal([]uint64{2, 0, 3, 1}, indices)
}

func TestSortIndicesPackedList64ByteLexicographic(t *testing.T) {
	require := require.New(t)

	strs := [][]byte{[]byte("banana"), []byte("apple"), []byte("app"), []byte("apple")}
	offsets := make([]uint64, len(strs)+1)
	var flat []byte
	for i, s := range strs {
		offsets[i] = uint64(len(flat))
		flat = append(flat, s...)
	}
	offsets[len(strs)] = uint64(len(flat))

	col := NewPackedListColumn(offsets, flat)
	indices := []uint64{0, 1, 2, 3}

	require.NoError(SortIndices(indices, []Column{col}, Ascending))
	// "app" < "apple" == "apple" < "banana"; ties (1,3) broken by index.
	require.Equal([]uint64{2, 1, 3, 0}, indices)
}

func TestSortIndicesEmptyColumnsNoop(t *testing.T) {
	require := require.New(t)

	indices := []uint64{2, 1, 0}
	require.NoError(SortIndices(indices, nil, Ascending))
	require.Equal([]uint64{2, 1, 0}, indices)
}

func TestSortIndicesRejectsInvalidMode(t *testing.T) {
	require := require.New(t)

	col := NewInt32Column([]int32{1, 2})
	err := SortIndices([]uint64{0, 1}, []Column{col}, 99)
	require.ErrorIs(err, errs.ErrInvalidParameter)
}

func TestSortIndicesRejectsMismatchedColumnLengths(t *testing.T) {
	require := require.New(t)

	a := NewInt32Column([]int32{1, 2, 3})
	b := NewInt32Column([]int32{1, 2})

	err := SortIndices([]uint64{0, 1, 2}, []Column{a, b}, Ascending)
	require.ErrorIs(err, errs.ErrInvalidParameter)
}

func TestSortIndicesRejectsOutOfRangeIndex(t *testing.T) {
	require := require.New(t)

	col := NewInt32Column([]int32{1, 2, 3})
	err := SortIndices([]uint64{0, 5}, []Column{col}, Ascending)
	require.ErrorIs(err, errs.ErrInvalidParameter)
}

func TestColumnEqualAtCrossInstance(t *testing.T) {
	require := require.New(t)

	a := NewInt32Column([]int32{7, 8})
	b := NewInt32Column([]int32{8, 9})

	require.True(a.EqualAt(1, b, 0))
	require.False(a.EqualAt(0, b, 0))
}

func TestColumnEqualAtRejectsTypeMismatch(t *testing.T) {
	require := require.New(t)

	a := NewInt32Column([]int32{1})
	b := NewFloat64Column([]float64{1})

	require.False(a.EqualAt(0, b, 0))
}

func TestColumnFloat64ValuesWidensIntAndFloat32(t *testing.T) {
	require := require.New(t)

	i32 := NewInt32Column([]int32{1, -2})
	vals, ok := i32.Float64Values()
	require.True(ok)
	require.Equal([]float64{1, -2}, vals)

	f32 := NewFloat32Column([]float32{1.5, 2.5})
	vals, ok = f32.Float64Values()
	require.True(ok)
	require.Equal([]float64{1.5, 2.5}, vals)
}

func TestColumnFloat64ValuesRejectsNonNumeric(t *testing.T) {
	require := require.New(t)

	col := NewUint8Column([]byte{1, 2, 3})
	_, ok := col.Float64Values()
	require.False(ok)
}

func TestColumnTypeAndLen(t *testing.T) {
	require := require.New(t)

	col := NewInt64Column([]int64{1, 2, 3})
	require.Equal(format.Int64, col.Type())
	require.Equal(uint64(3), col.Len())
}

func TestPackedListColumnLenIsEntriesNotOffsets(t *testing.T) {
	require := require.New(t)

	offsets := []uint64{0, 3, 6, 9}
	col := NewPackedListColumn(offsets, make([]byte, 9))
	require.Equal(uint64(3), col.Len())
}

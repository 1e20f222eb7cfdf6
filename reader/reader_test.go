package reader_test

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
	"github.com/mvlformat/mvl/namedlist"
	"github.com/mvlformat/mvl/reader"
	"github.com/mvlformat/mvl/section"
	"github.com/mvlformat/mvl/writer"
)

func buildContainer(t *testing.T, opts ...writer.Option) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.mvl")

	w, err := writer.Open(path, opts...)
	require.NoError(t, err)

	countsOffset, err := w.WriteVector(format.Int32, 4, section.EncodeInt32s([]int32{1, 2, 3, 4}), format.NoMetadata)
	require.NoError(t, err)
	w.AddDirectoryEntry([]byte("counts"), countsOffset)

	doublesOffset, err := w.WriteVector(format.Float64, 2, encodeFloat64s([]float64{1.5, 2.5}), format.NoMetadata)
	require.NoError(t, err)
	w.AddDirectoryEntry([]byte("doubles"), doublesOffset)

	listOffset, err := w.WritePackedList([][]byte{[]byte("alpha"), []byte("beta"), []byte("gamma")}, format.NoMetadata)
	require.NoError(t, err)
	w.AddDirectoryEntry([]byte("labels"), listOffset)

	nested := namedlist.New(2)
	nested.Append([]byte("a"), countsOffset)
	nested.Append([]byte("b"), doublesOffset)
	nestedOffset, err := w.WriteNamedList(nested)
	require.NoError(t, err)
	w.AddDirectoryEntry([]byte("nested"), nestedOffset)

	require.NoError(t, w.Close())

	return path
}

func encodeFloat64s(values []float64) []byte {
	out := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(v))
	}

	return out
}

func TestOpenAndFindDirectoryEntry(t *testing.T) {
	require := require.New(t)

	path := buildContainer(t)
	r, err := reader.Open(path)
	require.NoError(err)
	defer r.Close()

	offset, ok := r.FindDirectoryEntry([]byte("counts"))
	require.True(ok)

	view, err := r.View(offset)
	require.NoError(err)
	values, err := view.Int32s()
	require.NoError(err)
	require.Equal([]int32{1, 2, 3, 4}, values)
}

func TestOpenMissingDirectoryEntry(t *testing.T) {
	require := require.New(t)

	path := buildContainer(t)
	r, err := reader.Open(path)
	require.NoError(err)
	defer r.Close()

	_, ok := r.FindDirectoryEntry([]byte("nope"))
	require.False(ok)
}

func TestReadPackedListRoundTrip(t *testing.T) {
	require := require.New(t)

	path := buildContainer(t)
	r, err := reader.Open(path)
	require.NoError(err)
	defer r.Close()

	offset, ok := r.FindDirectoryEntry([]byte("labels"))
	require.True(ok)

	strs, err := r.ReadPackedList(offset)
	require.NoError(err)
	require.Len(strs, 3)
	require.Equal([]byte("alpha"), strs[0])
	require.Equal([]byte("beta"), strs[1])
	require.Equal([]byte("gamma"), strs[2])
}

func TestReadNamedListRoundTrip(t *testing.T) {
	require := require.New(t)

	path := buildContainer(t)
	r, err := reader.Open(path)
	require.NoError(err)
	defer r.Close()

	offset, ok := r.FindDirectoryEntry([]byte("nested"))
	require.True(ok)

	list, err := r.ReadNamedList(offset)
	require.NoError(err)
	require.Equal(2, list.Len())

	v, ok := list.Find([]byte("a"))
	require.True(ok)

	view, err := r.View(v)
	require.NoError(err)
	values, err := view.Int32s()
	require.NoError(err)
	require.Equal([]int32{1, 2, 3, 4}, values)
}

func TestOpenLegacyDirectoryRoundTrip(t *testing.T) {
	require := require.New(t)

	path := buildContainer(t, writer.WithLegacyDirectory())
	r, err := reader.Open(path)
	require.NoError(err)
	defer r.Close()

	offset, ok := r.FindDirectoryEntry([]byte("doubles"))
	require.True(ok)

	view, err := r.View(offset)
	require.NoError(err)
	values, err := view.Float64s()
	require.NoError(err)
	require.Equal([]float64{1.5, 2.5}, values)
}

func TestViewRejectsOutOfBoundsOffset(t *testing.T) {
	require := require.New(t)

	path := buildContainer(t)
	r, err := reader.Open(path)
	require.NoError(err)
	defer r.Close()

	_, err = r.View(r.Len() + 1000)
	require.ErrorIs(err, errs.ErrInvalidOffset)
}

func TestAsDoubleWidensIntegerTypes(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "scalar.mvl")
	w, err := writer.Open(path)
	require.NoError(err)

	offset, err := w.WriteVector(format.Int32, 1, section.EncodeInt32s([]int32{42}), format.NoMetadata)
	require.NoError(err)
	w.AddDirectoryEntry([]byte("v"), offset)
	require.NoError(w.Close())

	r, err := reader.Open(path)
	require.NoError(err)
	defer r.Close()

	v, err := r.AsDouble(offset)
	require.NoError(err)
	require.Equal(42.0, v)
}

func TestAsDoubleDefaultOnNullOffset(t *testing.T) {
	require := require.New(t)

	path := buildContainer(t)
	r, err := reader.Open(path)
	require.NoError(err)
	defer r.Close()

	v := r.AsDoubleDefault(format.NullOffset, 7.0)
	require.Equal(7.0, v)
}

func TestFromBytesParsesLikeOpen(t *testing.T) {
	require := require.New(t)

	path := buildContainer(t)

	// FromBytes over the same raw image should parse identically to Open.
	r2, err := reader.FromBytes(rawBytes(t, path))
	require.NoError(err)
	defer r2.Close()

	offset, ok := r2.FindDirectoryEntry([]byte("counts"))
	require.True(ok)
	view, err := r2.View(offset)
	require.NoError(err)
	values, err := view.Int32s()
	require.NoError(err)
	require.Equal([]int32{1, 2, 3, 4}, values)
}

func TestReadAttributesListRecordsDegradedReadOnCorruptTag(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "corrupt.mvl")
	w, err := writer.Open(path)
	require.NoError(err)

	valueOffset, err := w.WriteVector(format.Int32, 1, section.EncodeInt32s([]int32{9}), format.NoMetadata)
	require.NoError(err)

	// Offset 4 lands inside the preamble's reserved region: it parses as
	// a vector header but its declared type is never a valid CSTRING/UINT8,
	// so the tag resolves to the *CORRUPT* placeholder.
	raw := section.InterleaveAttributeOffsets([]uint64{4}, []uint64{valueOffset})
	attrsOffset, err := w.WriteVector(format.Offset64, uint64(len(raw)), section.EncodeOffsets(raw), format.NoMetadata)
	require.NoError(err)
	w.AddDirectoryEntry([]byte("attrs"), attrsOffset)
	require.NoError(w.Close())

	r, err := reader.Open(path)
	require.NoError(err)
	defer r.Close()

	require.Nil(r.LastDegradedRead())

	offset, ok := r.FindDirectoryEntry([]byte("attrs"))
	require.True(ok)

	list, err := r.ReadAttributesList(offset)
	require.NoError(err)
	require.Equal(1, list.Len())
	require.Equal([]byte(section.CorruptTag), list.Tag(0))

	require.NotNil(r.LastDegradedRead())
}

func rawBytes(t *testing.T, path string) []byte {
	t.Helper()

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	return b
}

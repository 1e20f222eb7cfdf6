package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElementTypeSize(t *testing.T) {
	require := require.New(t)

	cases := map[ElementType]int{
		Uint8:        1,
		Int32:        4,
		Int64:        8,
		Float32:      4,
		Float64:      8,
		Offset64:     8,
		CString:      1,
		PackedList64: 8,
		ElementType(999): 0,
	}

	for typ, size := range cases {
		require.Equal(size, typ.Size(), "type %v", typ)
	}
}

func TestElementTypeValid(t *testing.T) {
	require := require.New(t)

	require.True(Int32.Valid())
	require.True(PackedList64.Valid())
	require.False(ElementType(0).Valid())
	require.False(ElementType(999).Valid())
}

func TestElementTypeString(t *testing.T) {
	require := require.New(t)

	require.Equal("INT32", Int32.String())
	require.Equal("DOUBLE", Float64.String())
	require.Equal("PACKED_LIST64", PackedList64.String())
	require.Equal("UNKNOWN", ElementType(999).String())
}

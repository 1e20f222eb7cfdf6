package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
)

func TestPreambleRoundTrip(t *testing.T) {
	require := require.New(t)

	p := Preamble{Alignment: 64}
	b := p.Bytes()
	require.Len(b, format.PreambleSize)

	got, err := ParsePreamble(b)
	require.NoError(err)
	require.Equal(p, got)
}

func TestParsePreambleRejectsBadSignature(t *testing.T) {
	require := require.New(t)

	p := Preamble{Alignment: 32}
	b := p.Bytes()
	b[0] = 'X'

	_, err := ParsePreamble(b)
	require.ErrorIs(err, errs.ErrInvalidSignature)
}

func TestParsePreambleRejectsTruncated(t *testing.T) {
	require := require.New(t)

	_, err := ParsePreamble(make([]byte, 10))
	require.ErrorIs(err, errs.ErrFailPreamble)
}

func TestParsePreambleRejectsWrongEndiannessBits(t *testing.T) {
	require := require.New(t)

	p := Preamble{Alignment: 32}
	b := p.Bytes()
	// Corrupt the endianness probe bytes so they no longer decode to 1.0.
	b[4], b[5], b[6], b[7] = 0, 0, 0, 0

	_, err := ParsePreamble(b)
	require.ErrorIs(err, errs.ErrWrongEndianness)
}

func TestPostambleRoundTrip(t *testing.T) {
	require := require.New(t)

	p := Postamble{DirectoryOffset: 1234, Type: format.PostambleCurrent}
	b := p.Bytes()
	require.Len(b, format.PostambleSize)

	got, err := ParsePostamble(b)
	require.NoError(err)
	require.Equal(p, got)
}

func TestParsePostambleRejectsUnknownType(t *testing.T) {
	require := require.New(t)

	p := Postamble{DirectoryOffset: 1, Type: format.PostambleType(42)}
	b := p.Bytes()

	_, err := ParsePostamble(b)
	require.ErrorIs(err, errs.ErrCorruptPostamble)
}

func TestParsePostambleRejectsTruncated(t *testing.T) {
	require := require.New(t)

	_, err := ParsePostamble(make([]byte, 4))
	require.ErrorIs(err, errs.ErrFailPostamble)
}

func TestVectorHeaderRoundTrip(t *testing.T) {
	require := require.New(t)

	h := VectorHeader{Length: 10, Type: format.Int32, Metadata: 512}
	b := h.Bytes()
	require.Len(b, format.HeaderSize)

	got, err := ParseHeader(b)
	require.NoError(err)
	require.Equal(h, got)
}

func TestParseHeaderRejectsUnknownType(t *testing.T) {
	require := require.New(t)

	h := VectorHeader{Length: 1, Type: format.ElementType(77)}
	b := h.Bytes()

	_, err := ParseHeader(b)
	require.ErrorIs(err, errs.ErrUnknownType)
}

func TestVectorHeaderPayloadSize(t *testing.T) {
	require := require.New(t)

	h := VectorHeader{Length: 4, Type: format.Int64}
	size, err := h.PayloadSize()
	require.NoError(err)
	require.Equal(uint64(32), size)

	_, err = VectorHeader{Length: 1, Type: format.ElementType(0)}.PayloadSize()
	require.ErrorIs(err, errs.ErrUnknownType)
}

func TestPadSize(t *testing.T) {
	require := require.New(t)

	require.Equal(uint64(0), PadSize(64, 32))
	require.Equal(uint64(16), PadSize(48, 32))
	require.Equal(uint64(0), PadSize(100, 0))
}

func TestEncodeDecodeOffsetsRoundTrip(t *testing.T) {
	require := require.New(t)

	values := []uint64{0, 1, 1 << 40, ^uint64(0)}
	b := EncodeOffsets(values)
	require.Len(b, 8*len(values))
	require.Equal(values, DecodeOffsets(b))
}

func TestEncodeDecodeInt32sRoundTrip(t *testing.T) {
	require := require.New(t)

	values := []int32{-1, 0, 1, 2147483647, -2147483648}
	b := EncodeInt32s(values)
	require.Len(b, 4*len(values))
	require.Equal(values, DecodeInt32s(b))
}

func TestInterleaveDeinterleaveAttributeOffsetsRoundTrip(t *testing.T) {
	require := require.New(t)

	tags := []uint64{10, 20, 30}
	values := []uint64{100, 200, 300}

	raw := InterleaveAttributeOffsets(tags, values)
	require.Len(raw, 6)

	gotTags, gotValues, ok := DeinterleaveAttributeOffsets(raw)
	require.True(ok)
	require.Equal(tags, gotTags)
	require.Equal(values, gotValues)
}

func TestDeinterleaveAttributeOffsetsRejectsOddLength(t *testing.T) {
	require := require.New(t)

	_, _, ok := DeinterleaveAttributeOffsets([]uint64{1, 2, 3})
	require.False(ok)
}

func TestLegacyDirectoryPayloadRoundTrip(t *testing.T) {
	require := require.New(t)

	tagOffsets := []uint64{64, 128}
	valueOffsets := []uint64{256, 320}

	raw := BuildLegacyDirectoryPayload(tagOffsets, valueOffsets)
	gotTags, gotValues, ok := ParseLegacyDirectoryPayload(raw)
	require.True(ok)
	require.Equal(tagOffsets, gotTags)
	require.Equal(valueOffsets, gotValues)
}

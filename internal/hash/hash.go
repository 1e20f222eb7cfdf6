// Package hash implements the value-equivalent accumulating hash family
// used to identify and join rows drawn from mvl vectors (spec §4.A).
//
// The defining property is value equivalence across representations: an
// integer hashes identically whether stored as a 32- or 64-bit column, and
// a float hashes identically to its promotion to double. This lets the
// join engine match rows across columns of different (but
// value-compatible) element types without a cast step.
package hash

import (
	"encoding/binary"
	"math"
)

// Seed is the fixed initial accumulator state used when Flags.Init is requested.
const Seed uint64 = 0xabcdef

const (
	// prime is a large odd constant folded into the accumulator on every byte.
	prime uint64 = 0x9E3779B97F4A7C15
	// mix1 and mix2 are the two avalanche-round constants applied by Randomize.
	mix1 uint64 = 0xBF58476D1CE4E5B9
	mix2 uint64 = 0x94D049BB133111EB
)

// Randomize applies the two-round multiply/xor-shift avalanche mixer to h.
// It is the finalization step requested via Flags.Finalize.
func Randomize(h uint64) uint64 {
	h ^= h >> 30
	h *= mix1
	h ^= h >> 27
	h *= mix2
	h ^= h >> 31

	return h
}

// Accumulate folds the raw bytes of b, one at a time, into h.
func Accumulate(h uint64, b []byte) uint64 {
	for _, c := range b {
		h = (h + uint64(c)) * prime
		h ^= h >> 33
	}

	return h
}

// AccumulateInt32 folds an INT32 value into h by widening it to 64 bits
// first, so it collides with AccumulateInt64 on the same numeric value.
func AccumulateInt32(h uint64, v int32) uint64 {
	return AccumulateInt64(h, int64(v))
}

// AccumulateInt64 folds an INT64 value into h as its 8 little-endian bytes.
func AccumulateInt64(h uint64, v int64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))

	return Accumulate(h, buf[:])
}

// AccumulateFloat32 folds a FLOAT value into h by widening it to double
// first, so it collides with AccumulateFloat64 on the same float promoted.
func AccumulateFloat32(h uint64, v float32) uint64 {
	return AccumulateFloat64(h, float64(v))
}

// AccumulateFloat64 folds a DOUBLE value into h as its 8 little-endian bytes.
func AccumulateFloat64(h uint64, v float64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))

	return Accumulate(h, buf[:])
}

// AccumulateOffset64 folds a raw OFFSET64 payload value into h as 8
// little-endian bytes. Unlike the numeric accumulators there is no
// value-equivalence contract across types for offsets.
func AccumulateOffset64(h uint64, v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)

	return Accumulate(h, buf[:])
}

// Flags select which parts of a multi-stage accumulation to perform,
// enabling heterogeneous columns to be folded into one hash across calls.
type Flags int

const (
	// Init seeds h to Seed before folding in any bytes.
	Init Flags = 1 << iota
	// Finalize applies Randomize after folding in all bytes.
	Finalize
)

// Stream8 hashes eight independent, equal-length byte streams in lockstep,
// for SIMD-friendly batch hashing of a column's values across eight rows
// at a time. h must have length 8 and is updated in place.
func Stream8(h *[8]uint64, flags Flags, streams [8][]byte) {
	if flags&Init != 0 {
		for i := range h {
			h[i] = Seed
		}
	}

	n := len(streams[0])
	for _, s := range streams {
		if len(s) != n {
			panic("hash: Stream8 requires equal-length streams")
		}
	}

	for pos := 0; pos < n; pos++ {
		for i := 0; i < 8; i++ {
			c := streams[i][pos]
			h[i] = (h[i] + uint64(c)) * prime
			h[i] ^= h[i] >> 33
		}
	}

	if flags&Finalize != 0 {
		for i := range h {
			h[i] = Randomize(h[i])
		}
	}
}

// TagHash hashes an arbitrary tag byte string for namedlist's hash
// side-index bucket assignment. Tags carry no value-equivalence contract
// (they are opaque bytes), so this is a plain accumulate+finalize over the
// raw bytes starting from the fixed Seed — the same family used
// elsewhere, just always both initialized and finalized in one call.
func TagHash(tag []byte) uint64 {
	return Randomize(Accumulate(Seed, tag))
}

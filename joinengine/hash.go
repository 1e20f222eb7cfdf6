// Package joinengine implements row hashing and the open-addressed
// hash map used to answer SQL-JOIN- and GROUP-BY-style queries against
// sets of typed column vectors (spec §4.F), grounded on
// original_source/src/libMVL.c's mvl_hash_indices / mvl_compute_hash_map
// / mvl_find_matches / mvl_find_groups family.
package joinengine

import (
	"github.com/mvlformat/mvl/internal/hash"
	"github.com/mvlformat/mvl/sortengine"
)

// NoMatch is the sentinel "not found" row index, matching the
// reference implementation's ~0 convention.
const NoMatch = ^uint64(0)

// HashIndices computes, for each entry of indices, the combined
// value-equivalence hash of that row across columns, returning a new
// slice with one hash per entry of indices. Integer
// and float columns of different widths that hold the same value
// contribute identical bytes, so rows hash the same regardless of
// which concrete types their columns were stored as.
func HashIndices(indices []uint64, columns []sortengine.Column) []uint64 {
	out := make([]uint64, len(indices))
	for i := range out {
		out[i] = hash.Seed
	}

	for _, col := range columns {
		for i, idx := range indices {
			out[i] = col.HashRow(out[i], idx)
		}
	}

	for i := range out {
		out[i] = hash.Randomize(out[i])
	}

	return out
}

// HashRange is HashIndices specialized to the contiguous row range
// [start, stop), avoiding an explicit index array when rows are
// already dense.
func HashRange(start, stop uint64, columns []sortengine.Column) []uint64 {
	indices := make([]uint64, stop-start)
	for i := range indices {
		indices[i] = start + uint64(i)
	}

	return HashIndices(indices, columns)
}

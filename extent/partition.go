// Package extent implements partitioning of a row set into maximal
// runs of equal rows and the persistable extent index built on top of
// that partition (spec §4.G), grounded on
// original_source/src/libMVL.c's mvl_find_repeats / mvl_compute_extent_index
// / mvl_write_extent_index / mvl_load_extent_index family.
package extent

import "github.com/mvlformat/mvl/sortengine"

// Partition is a sorted sequence of row offsets demarcating maximal
// runs of equal rows across columns, assumed pre-sorted by those same
// columns (see sortengine.SortIndices). Offset[i]..Offset[i+1]-1 is one
// run; len(Offset) is always run_count+1, the last entry being the row
// count itself.
type Partition struct {
	Offset []uint64
}

// RunCount returns the number of runs the partition describes.
func (p Partition) RunCount() int {
	if len(p.Offset) == 0 {
		return 0
	}

	return len(p.Offset) - 1
}

// FindRepeats scans rows 0..N-1 (N = columns[0].Len(), which for a
// PACKED_LIST64 column already excludes the extra trailing offset)
// under the assumption the rows are
// already grouped so that every run of equal rows is contiguous, and
// returns the partition demarcating those runs. Rows must already be
// sorted by columns (e.g. via sortengine.SortIndices over the identity
// permutation) for this to produce meaningful runs.
func FindRepeats(columns []sortengine.Column) Partition {
	if len(columns) == 0 {
		return Partition{}
	}

	n := columns[0].Len()
	if n == 0 {
		return Partition{}
	}

	offsets := make([]uint64, 0, 1024)
	runStart := uint64(0)

	for i := uint64(1); i < n; i++ {
		if rowEqual(columns, runStart, i) {
			continue
		}

		offsets = append(offsets, runStart)
		runStart = i
	}

	offsets = append(offsets, runStart, n)

	return Partition{Offset: offsets}
}

func rowEqual(columns []sortengine.Column, i, j uint64) bool {
	for _, c := range columns {
		if !c.EqualAt(i, c, j) {
			return false
		}
	}

	return true
}

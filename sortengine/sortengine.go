package sortengine

import (
	"sort"

	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
)

// Sort mode selectors, mirroring format.SortLexicographic[Desc].
const (
	Ascending  = format.SortLexicographic
	Descending = format.SortLexicographicDesc
)

// tieRange is a half-open [start, stop) span of indices still tied
// after every column considered so far.
type tieRange struct {
	start, stop int
}

// SortIndices permutes indices in place so that row order is the
// multi-key lexicographic order of columns, in column order, under the
// given mode. Ties after all columns are exhausted are broken by
// ascending raw index value, making the whole sort stable (spec §4.E
// invariants 6-7).
//
// Every column must have the same row count; every entry of indices
// must be a valid row number for that count. If columns is empty,
// indices is left unchanged and nil is returned.
func SortIndices(indices []uint64, columns []Column, mode int) error {
	if len(columns) == 0 {
		return nil
	}
	if mode != Ascending && mode != Descending {
		return errs.ErrInvalidParameter
	}

	n := columns[0].Len()
	for _, c := range columns[1:] {
		if c.Len() != n {
			return errs.ErrInvalidParameter
		}
	}
	for _, idx := range indices {
		if idx >= n {
			return errs.ErrInvalidParameter
		}
	}

	ties := []tieRange{{0, len(indices)}}

	for _, col := range columns {
		if len(ties) == 0 {
			break
		}

		var next []tieRange

		for _, t := range ties {
			sub := indices[t.start:t.stop]

			switch mode {
			case Ascending:
				sort.SliceStable(sub, func(i, j int) bool { return col.less(sub[i], sub[j]) })
			case Descending:
				sort.SliceStable(sub, func(i, j int) bool { return col.less(sub[j], sub[i]) })
			}

			next = append(next, findTies(col, sub, t.start)...)
		}

		ties = next
	}

	// Remaining ties ran out of columns to break on; canonicalize by raw
	// index for locality, same as mvl_sort_indices's final pdqsort pass.
	for _, t := range ties {
		sub := indices[t.start:t.stop]
		sort.Slice(sub, func(i, j int) bool { return sub[i] < sub[j] })
	}

	return nil
}

// findTies scans sub (already sorted on col) for maximal runs of
// consecutive equal rows, returning their absolute index ranges offset
// by base.
func findTies(col Column, sub []uint64, base int) []tieRange {
	var out []tieRange

	i := 0
	for i < len(sub)-1 {
		if !col.equal(sub[i], sub[i+1]) {
			i++
			continue
		}

		j := i + 2
		for j < len(sub) && col.equal(sub[i], sub[j]) {
			j++
		}

		out = append(out, tieRange{base + i, base + j})
		i = j
	}

	return out
}

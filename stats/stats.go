// Package stats computes per-vector summary statistics and a
// normalization built from them that maps a column's min to 1.0 and
// its max to 2.0, grounded on original_source/src/libMVL.c's
// mvl_compute_vec_stats / mvl_normalize_vector (spec §4.H SUPPLEMENTED
// FEATURES).
package stats

import "github.com/mvlformat/mvl/sortengine"

// VecStats summarizes a numeric vector: its range, the midpoint and
// scale a normalization would use, and how repetitive its values are.
type VecStats struct {
	Min, Max             float64
	Center, Scale        float64
	NRepeat              uint64
	AverageRepeatLength  float64
}

// emptyStats is the sentinel result for a zero-length or non-numeric
// column: Max=-1, Min=1 (an inverted, empty range a caller can detect
// with Max < Min), everything else zero.
var emptyStats = VecStats{Max: -1, Min: 1}

// ComputeVecStats scans col once, tracking its min/max and counting
// maximal runs of a repeated value (consecutive equal entries collapse
// to one repeat). Only numeric column types (INT32/INT64/FLOAT/DOUBLE)
// are supported; any other type, or a zero-length column, yields
// emptyStats.
func ComputeVecStats(col sortengine.Column) VecStats {
	n := col.Len()
	if n < 1 {
		return emptyStats
	}

	values, ok := numericValues(col)
	if !ok {
		return emptyStats
	}

	lo, hi := values[0], values[0]
	prev := values[0]

	var nrepeat uint64 = 0
	for i := 1; i < len(values); i++ {
		v := values[i]
		if v > hi {
			hi = v
		}
		if v < lo {
			lo = v
		}
		if v != prev {
			nrepeat++
			prev = v
		}
	}
	nrepeat++

	st := VecStats{
		Min:                 lo,
		Max:                 hi,
		Center:              (lo + hi) * 0.5,
		NRepeat:             nrepeat,
		AverageRepeatLength: float64(n) / float64(nrepeat),
	}

	if hi > lo {
		st.Scale = 2 / (hi - lo)
	}

	return st
}

// NormalizeVector writes into out the normalization of col[i0:i1] under
// previously computed stats: the column's min maps to 1.0, its max to
// 2.0, and stats.Center to 1.5. Indices beyond col's length are written
// as 0. Non-numeric columns normalize to all zeroes. len(out) must be
// i1-i0.
func NormalizeVector(col sortengine.Column, stats VecStats, i0, i1 uint64, out []float64) {
	n := col.Len()
	if i0 > n {
		for i := range out {
			out[i] = 0.0
		}
		return
	}
	if i1 > n {
		for i := n; i < i1; i++ {
			out[i-i0] = 0.0
		}
		i1 = n
	}
	if i0 >= i1 {
		return
	}

	values, ok := numericValues(col)
	if !ok {
		for i := i0; i < i1; i++ {
			out[i-i0] = 0.0
		}

		return
	}

	scale := 0.5 * stats.Scale
	center := 1.5 - stats.Center*scale

	for i := i0; i < i1; i++ {
		out[i-i0] = values[i]*scale + center
	}
}

// numericValues widens col to a []float64 if it is one of the four
// numeric element types, or reports ok=false otherwise.
func numericValues(col sortengine.Column) (values []float64, ok bool) {
	return col.Float64Values()
}

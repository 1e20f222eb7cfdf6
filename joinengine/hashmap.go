package joinengine

import (
	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/sortengine"
)

// HashMap buckets a set of precomputed row hashes for fast equality
// lookup. Build with ComputeHashMap once hashes are known (typically
// from HashIndices or HashRange); it is read-only afterward except for
// FindGroups, which consumes it in place.
type HashMap struct {
	hash    []uint64 // hash_count entries, as supplied
	buckets []uint64 // power-of-two bucket table, head of each chain or NoMatch
	next    []uint64 // per-entry chain link, or NoMatch at the end
	first   []uint64 // one head-of-chain entry per distinct bucket actually used
	mask    uint64
}

// ComputeHashMap builds a HashMap over hash, bucketing entries by
// hash[i] & mask for a power-of-two bucket table sized to at least
// len(hash). Mirrors mvl_compute_hash_map's linked-chain-per-bucket
// layout, with "first" renormalized so each chain head points at its
// own chain.
func ComputeHashMap(hash []uint64) *HashMap {
	bucketCount := nextPow2(len(hash))
	if bucketCount == 0 {
		bucketCount = 1
	}

	hm := &HashMap{
		hash:    hash,
		buckets: make([]uint64, bucketCount),
		next:    make([]uint64, len(hash)),
		mask:    uint64(bucketCount) - 1,
	}

	for i := range hm.buckets {
		hm.buckets[i] = NoMatch
	}

	for i := uint64(0); i < uint64(len(hash)); i++ {
		k := hash[i] & hm.mask
		if hm.buckets[k] == NoMatch {
			hm.first = append(hm.first, i)
			hm.next[i] = NoMatch
			hm.buckets[k] = i
			continue
		}

		hm.next[i] = hm.buckets[k]
		hm.buckets[k] = i
	}

	// Renormalize: each recorded chain head should point at the bucket's
	// current (innermost, most-recently-inserted) head, not the first
	// entry inserted into it.
	for i, idx := range hm.first {
		k := hash[idx] & hm.mask
		hm.first[i] = hm.buckets[k]
	}

	return hm
}

// Arrays exposes the HashMap's backing hash, next, and bucket-table
// arrays for persistence (see extent.WriteExtentIndex). The "first"
// chain-head array is deliberately not exposed here — it is cheap to
// rebuild from these three on load, so it is never written out.
func (hm *HashMap) Arrays() (hash, next, buckets []uint64) {
	return hm.hash, hm.next, hm.buckets
}

// RestoreHashMap rebuilds a HashMap from a previously persisted
// (hash, next, buckets) triple, reconstructing the "first" chain-head
// array with a single pass over buckets rather than reading it back
// (spec.md §9 Open Question 2 decision: first[] is not persisted).
func RestoreHashMap(hash, next, buckets []uint64) *HashMap {
	hm := &HashMap{
		hash:    hash,
		next:    next,
		buckets: buckets,
		mask:    uint64(len(buckets)) - 1,
	}

	for _, head := range buckets {
		if head != NoMatch {
			hm.first = append(hm.first, head)
		}
	}

	return hm
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// CountMatches returns an upper bound on the number of (key, match)
// pairs FindMatches would produce for keyHash, useful for sizing its
// output arrays ahead of time. Equivalent to mvl_hash_match_count.
func (hm *HashMap) CountMatches(keyHash []uint64) uint64 {
	var count uint64

	for _, h := range keyHash {
		k := hm.buckets[h&hm.mask]
		for k != NoMatch {
			if hm.hash[k] == h {
				count++
			}
			k = hm.next[k]
		}
	}

	return count
}

// FindFirst returns, for each entry of keyHash, the index of the first
// matching row in hm, or NoMatch if none. Equivalent to
// mvl_find_first_hashes.
func (hm *HashMap) FindFirst(keyHash []uint64) []uint64 {
	out := make([]uint64, len(keyHash))

	for i, h := range keyHash {
		k := hm.buckets[h&hm.mask]
		for k != NoMatch && hm.hash[k] != h {
			k = hm.next[k]
		}
		out[i] = k
	}

	return out
}

// FindMatches computes every (key row, main row) pair where the rows
// are equal, not merely hash-equal. keyIndices/keyColumns describe the
// "key" side (whose rows are compared by keyColumns), indices/columns
// the "main" side hm was built over; keyHash is keyIndices' precomputed
// hash (see HashIndices). keyLast[i] is the exclusive end, into the
// returned pair arrays, of row keyIndices[i]'s matches — so its matches
// span keyLast[i-1]:keyLast[i] (0:keyLast[0] for i=0).
//
// Returns errs.ErrOutputExhausted if more pairs are found than
// keyMatchIndices/matchIndices can hold, mirroring mvl_find_matches's
// bounds-checked output contract rather than growing the slices.
func (hm *HashMap) FindMatches(
	keyIndices []uint64, keyColumns []sortengine.Column, keyHash []uint64,
	indices []uint64, columns []sortengine.Column,
	keyLast, keyMatchIndices, matchIndices []uint64,
) (int, error) {
	if len(keyLast) < len(keyIndices) {
		return 0, errs.ErrInvalidParameter
	}

	pairsSize := len(keyMatchIndices)
	if len(matchIndices) < pairsSize {
		pairsSize = len(matchIndices)
	}

	n := 0

	for i, h := range keyHash {
		k := hm.buckets[h&hm.mask]
		for k != NoMatch {
			if hm.hash[k] == h && rowsEqual(keyColumns, keyIndices[i], columns, indices[k]) {
				if n >= pairsSize {
					return n, errs.ErrOutputExhausted
				}

				keyMatchIndices[n] = keyIndices[i]
				matchIndices[n] = indices[k]
				n++
			}

			k = hm.next[k]
		}

		keyLast[i] = uint64(n)
	}

	return n, nil
}

// FindGroups subdivides each of hm's hash-equal chains into true
// equality groups, resolving the rare case where two distinct rows
// collide on hash. indices/columns must be the same row set hm was
// built over. After this call hm.buckets is no longer meaningful — only
// Groups should be used. Equivalent to mvl_find_groups.
func (hm *HashMap) FindGroups(indices []uint64, columns []sortengine.Column) {
	scratch := hm.buckets // reuse storage, as the reference implementation does
	groupHeads := append([]uint64(nil), hm.first...)

	for _, head := range hm.first {
		j := 0
		for k := head; k != NoMatch; k = hm.next[k] {
			if j < len(scratch) {
				scratch[j] = k
			} else {
				scratch = append(scratch, k)
			}
			j++
		}

		remaining := scratch[:j]
		for len(remaining) > 1 {
			m := len(remaining) - 1
			l := 1
			anchor := remaining[0]

			for l <= m {
				if hm.hash[anchor] != hm.hash[remaining[l]] ||
					!rowsEqual(columns, indices[anchor], columns, indices[remaining[l]]) {
					remaining[l], remaining[m] = remaining[m], remaining[l]
					m--
					continue
				}
				l++
			}

			for k := 1; k < l; k++ {
				hm.next[remaining[k-1]] = remaining[k]
			}
			hm.next[remaining[l-1]] = NoMatch

			if l == len(remaining) {
				break
			}

			remaining = remaining[l:]
			groupHeads = append(groupHeads, remaining[0])
			hm.next[remaining[0]] = NoMatch
		}
	}

	hm.first = groupHeads
}

// Groups returns, after FindGroups, the head index of every equality
// group found. Walk a group with hm.Next.
func (hm *HashMap) Groups() []uint64 {
	return hm.first
}

// Next returns the row index following idx within its equality group
// chain, or NoMatch at the end. Valid only after FindGroups.
func (hm *HashMap) Next(idx uint64) uint64 {
	return hm.next[idx]
}

func rowsEqual(aColumns []sortengine.Column, ai uint64, bColumns []sortengine.Column, bi uint64) bool {
	if len(aColumns) != len(bColumns) {
		return false
	}

	for i := range aColumns {
		if !aColumns[i].EqualAt(ai, bColumns[i], bi) {
			return false
		}
	}

	return true
}

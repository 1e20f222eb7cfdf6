// Package namedlist implements the ordered, tag-indexed collection used
// throughout mvl for directories, attribute lists, and data frames (spec
// §4.B).
//
// A List holds parallel arrays of tag bytes and 64-bit values in insertion
// order; tags may repeat, may be empty, and are compared by exact byte
// equality. An optional hash side-index accelerates Find once the list is
// built via RebuildHash — without it, Find degrades to a linear scan that
// still honors last-insertion-wins semantics.
package namedlist

import "github.com/mvlformat/mvl/internal/hash"

// minCapacity is the smallest capacity a freshly created List allocates.
const minCapacity = 10

// List is an ordered tag -> value collection. The zero value is not
// usable; construct with New.
type List struct {
	tags   [][]byte
	values []uint64

	// buckets, when non-nil, maps a tag's hash (masked to bucketCount-1)
	// to the head of a chain of list indices sharing that bucket. chain[i]
	// links entry i to the next entry in the same bucket, innermost (most
	// recently appended) first.
	buckets    []int32
	chain      []int32
	bucketMask uint64
}

// New creates an empty List with capacity for at least expectedSize entries.
func New(expectedSize int) *List {
	if expectedSize < minCapacity {
		expectedSize = minCapacity
	}

	return &List{
		tags:   make([][]byte, 0, expectedSize),
		values: make([]uint64, 0, expectedSize),
	}
}

// Len returns the number of entries in the list.
func (l *List) Len() int {
	return len(l.values)
}

// Tag returns the tag bytes stored at position i. The slice is the
// list's own copy, not a fresh one; callers must not modify it.
func (l *List) Tag(i int) []byte {
	return l.tags[i]
}

// Value returns the value at position i.
func (l *List) Value(i int) uint64 {
	return l.values[i]
}

// Append adds a new (tag, value) pair to the end of the list. The tag
// bytes are copied; the caller's slice may be reused afterward.
//
// If a hash side-index exists and is smaller than the list will become
// after this append, it is rebuilt; otherwise the new entry is added to
// it. Either way Find stays accurate.
func (l *List) Append(tag []byte, value uint64) {
	tagCopy := make([]byte, len(tag))
	copy(tagCopy, tag)

	l.tags = append(l.tags, tagCopy)
	l.values = append(l.values, value)

	if l.buckets == nil {
		return
	}

	if len(l.buckets) < len(l.values) {
		l.RebuildHash()

		return
	}

	bucket := hash.TagHash(tagCopy) & l.bucketMask
	l.chain = append(l.chain, l.buckets[bucket])
	l.buckets[bucket] = int32(len(l.values) - 1)
}

// Find returns the value of the most-recently-inserted entry whose tag
// equals the given bytes, or (0, false) if no entry matches.
func (l *List) Find(tag []byte) (uint64, bool) {
	if l.buckets != nil {
		return l.findHashed(tag)
	}

	for i := len(l.values) - 1; i >= 0; i-- {
		if tagEqual(l.tags[i], tag) {
			return l.values[i], true
		}
	}

	return 0, false
}

func (l *List) findHashed(tag []byte) (uint64, bool) {
	bucket := hash.TagHash(tag) & l.bucketMask
	idx := l.buckets[bucket]

	for idx >= 0 {
		if tagEqual(l.tags[idx], tag) {
			return l.values[idx], true
		}

		idx = l.chain[idx]
	}

	return 0, false
}

// RebuildHash (re)computes the hash side-index from scratch. Bucket count
// is the smallest power of two >= the list's current length.
func (l *List) RebuildHash() {
	n := len(l.values)
	if n == 0 {
		l.buckets = nil
		l.chain = nil

		return
	}

	bucketCount := nextPow2(n)
	l.bucketMask = uint64(bucketCount - 1)

	l.buckets = make([]int32, bucketCount)
	for i := range l.buckets {
		l.buckets[i] = -1
	}

	l.chain = make([]int32, n)

	// Walking forward and prepending each entry to its bucket's chain
	// yields reverse-insertion order when the chain is walked head-first,
	// which is exactly "most recently inserted wins" in Find.
	for i := 0; i < n; i++ {
		bucket := hash.TagHash(l.tags[i]) & l.bucketMask
		l.chain[i] = l.buckets[bucket]
		l.buckets[bucket] = int32(i)
	}
}

func tagEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

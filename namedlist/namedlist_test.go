package namedlist

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendAndFind(t *testing.T) {
	require := require.New(t)

	l := New(4)
	l.Append([]byte("a"), 1)
	l.Append([]byte("b"), 2)

	v, ok := l.Find([]byte("a"))
	require.True(ok)
	require.Equal(uint64(1), v)

	v, ok = l.Find([]byte("b"))
	require.True(ok)
	require.Equal(uint64(2), v)

	_, ok = l.Find([]byte("c"))
	require.False(ok)
}

func TestFindLastInsertionWins(t *testing.T) {
	require := require.New(t)

	l := New(4)
	l.Append([]byte("dup"), 1)
	l.Append([]byte("dup"), 2)
	l.Append([]byte("dup"), 3)

	v, ok := l.Find([]byte("dup"))
	require.True(ok)
	require.Equal(uint64(3), v)
}

func TestAppendCopiesTagBytes(t *testing.T) {
	require := require.New(t)

	l := New(4)
	tag := []byte("mutable")
	l.Append(tag, 42)
	tag[0] = 'X'

	v, ok := l.Find([]byte("mutable"))
	require.True(ok)
	require.Equal(uint64(42), v)
}

func TestRebuildHashMatchesLinearScan(t *testing.T) {
	require := require.New(t)

	l := New(4)
	for i := 0; i < 100; i++ {
		l.Append([]byte(fmt.Sprintf("tag%d", i)), uint64(i))
	}

	// Before RebuildHash, Find degrades to linear scan.
	v, ok := l.Find([]byte("tag50"))
	require.True(ok)
	require.Equal(uint64(50), v)

	l.RebuildHash()

	for i := 0; i < 100; i++ {
		v, ok := l.Find([]byte(fmt.Sprintf("tag%d", i)))
		require.True(ok)
		require.Equal(uint64(i), v)
	}
}

func TestAppendRebuildsHashWhenStale(t *testing.T) {
	require := require.New(t)

	l := New(4)
	l.Append([]byte("a"), 1)
	l.RebuildHash()

	for i := 0; i < 20; i++ {
		l.Append([]byte(fmt.Sprintf("tag%d", i)), uint64(i))
	}

	for i := 0; i < 20; i++ {
		v, ok := l.Find([]byte(fmt.Sprintf("tag%d", i)))
		require.True(ok)
		require.Equal(uint64(i), v)
	}
}

func TestLenTagValue(t *testing.T) {
	require := require.New(t)

	l := New(4)
	require.Equal(0, l.Len())

	l.Append([]byte("x"), 7)
	require.Equal(1, l.Len())
	require.Equal([]byte("x"), l.Tag(0))
	require.Equal(uint64(7), l.Value(0))
}

func TestNewEnforcesMinCapacity(t *testing.T) {
	require := require.New(t)

	l := New(0)
	require.Equal(0, l.Len())
	l.Append([]byte("a"), 1)
	require.Equal(1, l.Len())
}

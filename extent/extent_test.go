package extent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvlformat/mvl/format"
	"github.com/mvlformat/mvl/joinengine"
	"github.com/mvlformat/mvl/sortengine"
)

func TestFindRepeatsOnPreSortedRows(t *testing.T) {
	require := require.New(t)

	// Already grouped: runs of 1,1,2,2,2,3.
	col := sortengine.NewInt32Column([]int32{1, 1, 2, 2, 2, 3})
	p := FindRepeats([]sortengine.Column{col})

	require.Equal([]uint64{0, 2, 5, 6}, p.Offset)
	require.Equal(3, p.RunCount())
}

func TestFindRepeatsEmptyColumns(t *testing.T) {
	require := require.New(t)

	p := FindRepeats(nil)
	require.Equal(0, p.RunCount())
}

func TestFindRepeatsSingleRun(t *testing.T) {
	require := require.New(t)

	col := sortengine.NewInt32Column([]int32{9, 9, 9})
	p := FindRepeats([]sortengine.Column{col})

	require.Equal([]uint64{0, 3}, p.Offset)
	require.Equal(1, p.RunCount())
}

func TestGetExtents(t *testing.T) {
	require := require.New(t)

	col := sortengine.NewInt32Column([]int32{1, 1, 2})
	idx := ComputeExtentIndex([]sortengine.Column{col})

	start, stop := idx.GetExtents(0)
	require.Equal(uint64(0), start)
	require.Equal(uint64(2), stop)

	start, stop = idx.GetExtents(1)
	require.Equal(uint64(2), start)
	require.Equal(uint64(3), stop)
}

func TestComputeExtentIndexIsOwned(t *testing.T) {
	require := require.New(t)

	col := sortengine.NewInt32Column([]int32{1, 2, 3})
	idx := ComputeExtentIndex([]sortengine.Column{col})

	require.True(idx.Owned())
	require.Equal([]format.ElementType{format.Int32}, idx.VecTypes)
	require.NotNil(idx.HashMap)
}

func TestComputeExtentIndexHashMapFindsRepresentativeRow(t *testing.T) {
	require := require.New(t)

	col := sortengine.NewInt32Column([]int32{1, 1, 2, 2, 2, 3})
	idx := ComputeExtentIndex([]sortengine.Column{col})

	require.Equal(3, idx.Partition.RunCount())

	// Every run's representative row hash should be present in the map.
	representatives := []uint64{0, 2, 5}
	for _, rep := range representatives {
		h := joinengine.HashIndices([]uint64{rep}, []sortengine.Column{col})
		require.Positive(idx.HashMap.CountMatches(h))
	}
}

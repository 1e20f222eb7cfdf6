package extent

import (
	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
	"github.com/mvlformat/mvl/joinengine"
	"github.com/mvlformat/mvl/namedlist"
	"github.com/mvlformat/mvl/reader"
	"github.com/mvlformat/mvl/section"
	"github.com/mvlformat/mvl/sortengine"
	"github.com/mvlformat/mvl/writer"
)

// ClassName is the named-list class tag a persisted extent index is
// written under.
const ClassName = "MVL_INDEX"

const (
	tagIndexType = "index_type"
	tagPartition = "partition"
	tagHash      = "hash"
	tagNext      = "next"
	tagHashMap   = "hash_map"
	tagVecTypes  = "vec_types"
)

// ExtentIndex is the persisted form of the grouping engine's output:
// a partition over the rows plus a hash map keyed by one representative
// row per run, so that a new row can be classified against the index by
// hashing it and walking the matching run's hash-map bucket.
//
// owned reports whether the index was computed in memory (true after
// ComputeExtentIndex) or loaded from a container (false after
// LoadExtentIndex). In both cases the arrays are Go slices allocated by
// this package: LoadExtentIndex decodes copies of the persisted vectors
// and does not reference the Reader's bytes.
type ExtentIndex struct {
	Partition Partition
	HashMap   *joinengine.HashMap
	VecTypes  []format.ElementType

	owned bool
}

// Owned reports whether the index was computed by ComputeExtentIndex
// (true) rather than loaded by LoadExtentIndex (false).
func (ei *ExtentIndex) Owned() bool {
	return ei.owned
}

// ComputeExtentIndex builds an extent index over columns in place:
// partitions the rows (assumed pre-sorted, see FindRepeats), then
// hashes one representative row per run and builds a HashMap over
// those hashes so a fresh row can later be classified against an
// existing run.
func ComputeExtentIndex(columns []sortengine.Column) *ExtentIndex {
	partition := FindRepeats(columns)
	runCount := partition.RunCount()

	vecTypes := make([]format.ElementType, len(columns))
	for i, c := range columns {
		vecTypes[i] = c.Type()
	}

	representatives := make([]uint64, runCount)
	for i := 0; i < runCount; i++ {
		representatives[i] = partition.Offset[i]
	}

	hashes := joinengine.HashIndices(representatives, columns)
	hm := joinengine.ComputeHashMap(hashes)

	return &ExtentIndex{
		Partition: partition,
		HashMap:   hm,
		VecTypes:  vecTypes,
		owned:     true,
	}
}

// GetExtents returns the [start, stop) row range of run i.
func (ei *ExtentIndex) GetExtents(i int) (start, stop uint64) {
	return ei.Partition.Offset[i], ei.Partition.Offset[i+1]
}

// WriteExtentIndex persists ei as a named list of class MVL_INDEX:
// index_type, partition, hash, next, hash_map, vec_types. The "first"
// array is deliberately not persisted — it is cheap to rebuild from
// hash_map/next on load, and every other HASH_MAP array already is.
func WriteExtentIndex(w *writer.Writer, ei *ExtentIndex) (uint64, error) {
	hashes, next, table := ei.HashMap.Arrays()

	list := namedlist.New(6)

	indexTypeOffset, err := w.WriteVector(format.Int32, 1, section.EncodeInt32s([]int32{format.ExtentIndexType}), format.NoMetadata)
	if err != nil {
		return 0, err
	}
	list.Append([]byte(tagIndexType), indexTypeOffset)

	partitionOffset, err := w.WriteVector(format.Offset64, uint64(len(ei.Partition.Offset)), section.EncodeOffsets(ei.Partition.Offset), format.NoMetadata)
	if err != nil {
		return 0, err
	}
	list.Append([]byte(tagPartition), partitionOffset)

	hashOffset, err := w.WriteVector(format.Offset64, uint64(len(hashes)), section.EncodeOffsets(hashes), format.NoMetadata)
	if err != nil {
		return 0, err
	}
	list.Append([]byte(tagHash), hashOffset)

	nextOffset, err := w.WriteVector(format.Offset64, uint64(len(next)), section.EncodeOffsets(next), format.NoMetadata)
	if err != nil {
		return 0, err
	}
	list.Append([]byte(tagNext), nextOffset)

	hashMapOffset, err := w.WriteVector(format.Offset64, uint64(len(table)), section.EncodeOffsets(table), format.NoMetadata)
	if err != nil {
		return 0, err
	}
	list.Append([]byte(tagHashMap), hashMapOffset)

	vecTypesRaw := make([]int32, len(ei.VecTypes))
	for i, t := range ei.VecTypes {
		vecTypesRaw[i] = int32(t)
	}

	vecTypesOffset, err := w.WriteVector(format.Int32, uint64(len(vecTypesRaw)), section.EncodeInt32s(vecTypesRaw), format.NoMetadata)
	if err != nil {
		return 0, err
	}
	list.Append([]byte(tagVecTypes), vecTypesOffset)

	return w.WriteNamedListAsClass(list, ClassName)
}

// LoadExtentIndex reads a previously written extent index at offset.
// The returned ExtentIndex holds decoded copies of the persisted arrays,
// not references into r's image (Owned reports false); the "first"
// chain-head array is rebuilt in memory from hash_map rather than read
// back, since it was never persisted.
func LoadExtentIndex(r *reader.Reader, offset uint64) (*ExtentIndex, error) {
	list, err := r.ReadNamedList(offset)
	if err != nil {
		return nil, errs.ErrInvalidExtentIndex
	}

	partitionOffset, ok := list.Find([]byte(tagPartition))
	if !ok {
		return nil, errs.ErrInvalidExtentIndex
	}
	partitionView, err := r.View(partitionOffset)
	if err != nil {
		return nil, errs.ErrInvalidExtentIndex
	}
	partitionOffsets, err := partitionView.Offsets()
	if err != nil {
		return nil, errs.ErrInvalidExtentIndex
	}

	hashOffset, ok := list.Find([]byte(tagHash))
	if !ok {
		return nil, errs.ErrInvalidExtentIndex
	}
	hashView, err := r.View(hashOffset)
	if err != nil {
		return nil, errs.ErrInvalidExtentIndex
	}
	hashes, err := hashView.Offsets()
	if err != nil {
		return nil, errs.ErrInvalidExtentIndex
	}

	nextOffset, ok := list.Find([]byte(tagNext))
	if !ok {
		return nil, errs.ErrInvalidExtentIndex
	}
	nextView, err := r.View(nextOffset)
	if err != nil {
		return nil, errs.ErrInvalidExtentIndex
	}
	next, err := nextView.Offsets()
	if err != nil {
		return nil, errs.ErrInvalidExtentIndex
	}

	hashMapOffset, ok := list.Find([]byte(tagHashMap))
	if !ok {
		return nil, errs.ErrInvalidExtentIndex
	}
	hashMapView, err := r.View(hashMapOffset)
	if err != nil {
		return nil, errs.ErrInvalidExtentIndex
	}
	table, err := hashMapView.Offsets()
	if err != nil {
		return nil, errs.ErrInvalidExtentIndex
	}

	var vecTypes []format.ElementType
	if vecTypesOffset, ok := list.Find([]byte(tagVecTypes)); ok {
		if view, err := r.View(vecTypesOffset); err == nil {
			if raw, err := view.Int32s(); err == nil {
				vecTypes = make([]format.ElementType, len(raw))
				for i, t := range raw {
					vecTypes[i] = format.ElementType(t)
				}
			}
		}
	}

	hm := joinengine.RestoreHashMap(hashes, next, table)

	return &ExtentIndex{
		Partition: Partition{Offset: partitionOffsets},
		HashMap:   hm,
		VecTypes:  vecTypes,
		owned:     false,
	}, nil
}

// Package mvl provides a memory-mappable binary container format for
// large numeric and string vectors. Every vector is aligned in the file
// so that it can be used as an array in place; this module's reader
// either reads a caller-supplied buffer in place (OpenBytes) or copies a
// mapped file into memory once (OpenFile).
//
// A container is a flat sequence of self-describing, alignment-padded
// vectors addressed by file offset, with a directory at the end mapping
// human-readable tags to those offsets. Named lists, attribute lists,
// and R-style data frames are built on top of the same vector
// primitive, so the format can carry both raw arrays and structured
// metadata in one file.
//
// # Core Features
//
//   - Validated reads: every offset is bounds-checked before use; byte
//     and packed-list views slice the reader's image directly, while the
//     numeric accessors decode into fresh slices
//   - A closed set of element types (UINT8, INT32, INT64, FLOAT, DOUBLE,
//     OFFSET64, CSTRING, PACKED_LIST64) with fixed per-element sizes
//   - Two directory encodings (legacy parallel-array, current named-list),
//     read interchangeably regardless of which a writer produced
//   - A sort engine, hash-based join engine, and row-partitioning extent
//     index for building in-memory indexes over a container's vectors
//   - Per-vector summary statistics and range normalization
//
// # Basic Usage
//
// Writing a container:
//
//	w, _ := writer.Open("out.mvl")
//	offset, _ := w.WriteVector(format.Int32, 3, section.EncodeInt32s([]int32{1, 2, 3}), format.NoMetadata)
//	w.AddDirectoryEntry([]byte("counts"), offset)
//	w.Close()
//
// Reading it back:
//
//	r, _ := reader.Open("out.mvl")
//	defer r.Close()
//	offset, _ := r.FindDirectoryEntry([]byte("counts"))
//	view, _ := r.View(offset)
//	values, _ := view.Int32s()
//
// # Package Structure
//
// This package provides convenient top-level wrappers around writer
// and reader, simplifying the most common use cases. For sorting,
// joining, partitioning, or computing statistics over a container's
// vectors, use the sortengine, joinengine, extent, and stats packages
// directly.
package mvl

import (
	"github.com/mvlformat/mvl/reader"
	"github.com/mvlformat/mvl/writer"
)

// CreateFile creates a new container file at path, ready to accept
// vectors, using the given options. Call Writer.Close when done to
// flush its directory and postamble.
//
// Example:
//
//	w, err := mvl.CreateFile("out.mvl", writer.WithAlignment(64))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
func CreateFile(path string, opts ...writer.Option) (*writer.Writer, error) {
	return writer.Open(path, opts...)
}

// OpenFile memory-maps the container file at path read-only, copies its
// image into memory (see reader.Open), and validates its preamble,
// postamble, and directory. Call Reader.Close to release the mapping
// when done.
//
// Example:
//
//	r, err := mvl.OpenFile("out.mvl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
func OpenFile(path string, opts ...reader.Option) (*reader.Reader, error) {
	return reader.Open(path, opts...)
}

// OpenBytes binds a Reader directly to an in-memory image, such as a
// buffer already read from some other source or a test fixture, without
// any filesystem interaction.
func OpenBytes(data []byte, opts ...reader.Option) (*reader.Reader, error) {
	return reader.FromBytes(data, opts...)
}

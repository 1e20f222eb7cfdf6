// Package writer implements the two-phase append-only encoder that
// produces mvl container files: a preamble, a sequence of
// header-prefixed, alignment-padded vectors, and a directory + postamble
// written at Close (spec §4.C, §6).
package writer

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
	"github.com/mvlformat/mvl/internal/falloc"
	"github.com/mvlformat/mvl/internal/pool"
	"github.com/mvlformat/mvl/namedlist"
	"github.com/mvlformat/mvl/section"
)

// Writer appends vectors to a container file until Close writes the
// directory and postamble. A Writer is not safe for concurrent use.
type Writer struct {
	f         *os.File
	offset    uint64
	alignment uint32
	legacy    bool
	log       *zap.SugaredLogger

	directory     *namedlist.List
	cachedStrings *namedlist.List
	charClassOnce uint64

	closed bool
}

// Open creates (truncating if necessary) the file at path and writes
// its preamble, ready to accept vectors.
func Open(path string, opts ...Option) (*Writer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.alignment == 0 || cfg.alignment&(cfg.alignment-1) != 0 {
		return nil, errs.ErrInvalidParameter
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	w := &Writer{
		f:             f,
		alignment:     cfg.alignment,
		legacy:        cfg.legacyDirectory,
		log:           cfg.logger,
		directory:     namedlist.New(64),
		cachedStrings: namedlist.New(32),
	}

	preamble := section.Preamble{Alignment: cfg.alignment}
	if err := w.writeRaw(preamble.Bytes()); err != nil {
		f.Close()
		return nil, err
	}

	w.log.Debugw("opened mvl writer", "path", path, "alignment", cfg.alignment)

	return w, nil
}

// writeRaw appends b to the file and advances the tracked offset.
func (w *Writer) writeRaw(b []byte) error {
	n, err := w.f.Write(b)
	if err != nil {
		return err
	}
	if n < len(b) {
		return errs.ErrIncompleteWrite
	}

	w.offset += uint64(n)

	return nil
}

// rewriteRaw overwrites length bytes at offset with b, then restores the
// file position for subsequent appends.
func (w *Writer) rewriteRaw(offset uint64, b []byte) error {
	n, err := w.f.WriteAt(b, int64(offset))
	if err != nil {
		return err
	}
	if n < len(b) {
		return errs.ErrIncompleteWrite
	}

	return nil
}

// WriteVector writes a complete vector: header, payload, and alignment
// padding. payload must contain exactly length*elemType.Size() bytes,
// except for PackedList64 where length is the raw N+1-entry offsets
// array length (spec §4.C, §6). Returns the file offset of the vector's
// header, suitable for a directory entry or as another vector's metadata.
func (w *Writer) WriteVector(elemType format.ElementType, length uint64, payload []byte, metadata uint64) (uint64, error) {
	if !elemType.Valid() {
		return 0, errs.ErrUnknownType
	}

	header := section.VectorHeader{Length: length, Type: elemType, Metadata: metadata}

	byteLength, err := header.PayloadSize()
	if err != nil {
		return 0, err
	}
	if uint64(len(payload)) != byteLength {
		return 0, errs.ErrInvalidLength
	}

	offset := w.offset
	pad := section.PadSize(uint64(format.HeaderSize)+byteLength, w.alignment)

	if err := w.writeRaw(header.Bytes()); err != nil {
		return 0, err
	}
	if err := w.writeRaw(payload); err != nil {
		return 0, err
	}
	if pad > 0 {
		if err := w.writeRaw(make([]byte, pad)); err != nil {
			return 0, err
		}
	}

	return offset, nil
}

// StartWriteVector reserves a vector of expectedLength elements, writing
// only the first length of them now (length may be 0), and preallocates
// the file region so later RewriteVector calls never change the file's
// size. Use this when the full payload is assembled incrementally.
func (w *Writer) StartWriteVector(elemType format.ElementType, expectedLength, length uint64, payload []byte, metadata uint64) (uint64, error) {
	if !elemType.Valid() {
		return 0, errs.ErrUnknownType
	}
	if length > expectedLength {
		return 0, errs.ErrInvalidParameter
	}

	size := elemType.Size()
	if size <= 0 {
		return 0, errs.ErrUnknownType
	}

	byteLength := length * uint64(size)
	totalByteLength := expectedLength * uint64(size)
	if uint64(len(payload)) != byteLength {
		return 0, errs.ErrInvalidLength
	}

	header := section.VectorHeader{Length: expectedLength, Type: elemType, Metadata: metadata}
	pad := section.PadSize(uint64(format.HeaderSize)+totalByteLength, w.alignment)

	offset := w.offset
	totalRecordSize := int64(uint64(format.HeaderSize) + totalByteLength + pad)
	if err := falloc.Preallocate(w.f, int64(offset)+totalRecordSize); err != nil {
		return 0, err
	}

	if err := w.writeRaw(header.Bytes()); err != nil {
		return 0, err
	}
	if byteLength > 0 {
		if err := w.writeRaw(payload); err != nil {
			return 0, err
		}
	}

	// Skip over the not-yet-written remainder of the payload; it is
	// already zero-filled (or sparse) from preallocation.
	remaining := totalByteLength - byteLength
	if remaining > 0 {
		if _, err := w.f.Seek(int64(remaining), io.SeekCurrent); err != nil {
			return 0, errs.ErrCannotSeek
		}
		w.offset += remaining
	}

	if pad > 0 {
		if err := w.writeRaw(make([]byte, pad)); err != nil {
			return 0, err
		}
	}

	return offset, nil
}

// RewriteVector overwrites length elements starting at element index idx
// within the vector previously opened at baseOffset via StartWriteVector.
func (w *Writer) RewriteVector(elemType format.ElementType, baseOffset, idx uint64, payload []byte) error {
	size := elemType.Size()
	if size <= 0 {
		return errs.ErrUnknownType
	}

	byteLength := uint64(len(payload))
	if byteLength == 0 {
		return nil
	}

	target := baseOffset + uint64(format.HeaderSize) + idx*uint64(size)

	return w.rewriteRaw(target, payload)
}

// WriteConcatVectors writes a single vector whose payload is the
// concatenation of the given chunks, all of the same element type.
func (w *Writer) WriteConcatVectors(elemType format.ElementType, chunks [][]byte, metadata uint64) (uint64, error) {
	buf := pool.GetScratch()
	defer pool.PutScratch(buf)

	for _, c := range chunks {
		buf.Write(c)
	}

	return w.WriteVector(elemType, totalElements(elemType, chunks), buf.B, metadata)
}

func totalElements(elemType format.ElementType, chunks [][]byte) uint64 {
	size := elemType.Size()
	if size <= 0 {
		return 0
	}

	var total uint64
	for _, c := range chunks {
		total += uint64(len(c)) / uint64(size)
	}

	return total
}

// Close writes the directory (in the configured encoding) and the
// postamble, then closes the underlying file. Close returns
// errs.ErrEmptyDirectory if no directory entries were ever added.
func (w *Writer) Close() error {
	if w.closed {
		return errs.ErrAlreadyClosed
	}
	w.closed = true
	defer w.f.Close()

	if w.directory.Len() < 1 {
		return errs.ErrEmptyDirectory
	}

	dirOffset, postambleType, err := w.writeDirectory()
	if err != nil {
		return err
	}

	postamble := section.Postamble{DirectoryOffset: dirOffset, Type: postambleType}
	if err := w.writeRaw(postamble.Bytes()); err != nil {
		return err
	}

	w.log.Debugw("closed mvl writer", "directory_entries", w.directory.Len(), "legacy", w.legacy)

	return nil
}

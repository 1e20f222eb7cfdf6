// Package reader implements validated access to an mvl container held
// in a byte slice (spec §4.D). FromBytes reads a caller's buffer in
// place. Open maps a file read-only and copies the whole image into a
// heap buffer, so payloads are not read directly from the mapping.
package reader

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/exp/mmap"

	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
	"github.com/mvlformat/mvl/namedlist"
	"github.com/mvlformat/mvl/section"
)

// NoBoundsCheck disables ValidateVector's range checks, for in-memory
// scenarios where the mapped extent is not meaningfully tracked.
const NoBoundsCheck = ^uint64(0)

// Reader is bound to a single mapped or in-memory byte range for its
// entire lifetime. It is safe for concurrent read-only use by multiple
// goroutines, mirroring the underlying byte slice's own safety.
type Reader struct {
	data   []byte
	length uint64
	ra     *mmap.ReaderAt // non-nil only when opened via Open; the mapping data was copied from
	log    *zap.SugaredLogger

	directory    *namedlist.List
	lastDegraded atomic.Pointer[error]
}

// LastDegradedRead returns the error behind the most recent "*CORRUPT*"
// placeholder entry produced by ReadAttributesList, ReadNamedList, or a
// legacy directory read, or nil if no degraded read has happened yet.
// Mirrors the reference implementation's context error (spec §4.D): a
// degraded read never aborts the caller, but the failure is not silent.
func (r *Reader) LastDegradedRead() error {
	if p := r.lastDegraded.Load(); p != nil {
		return *p
	}

	return nil
}

// recordCorruptTag logs and records a degraded-read placeholder at offset.
func (r *Reader) recordCorruptTag(offset uint64, cause error) {
	wrapped := fmt.Errorf("mvl: corrupt tag at offset %d: %w", offset, cause)
	r.lastDegraded.Store(&wrapped)
	r.log.Warnw("corrupt tag, using placeholder entry", "offset", offset, "error", cause)
}

// Option configures a Reader at load time.
type Option func(*readerConfig)

type readerConfig struct {
	logger *zap.SugaredLogger
}

// WithLogger injects a structured logger. The default is a no-op logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *readerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Open memory-maps the file at path read-only, copies the whole mapped
// image into a heap buffer, and loads the image from that buffer. Views
// returned by the Reader refer to the copy, not to the mapping. The
// Reader keeps the mapping open; call Close to release it.
func Open(path string, opts ...Option) (*Reader, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	length := ra.Len()
	data := make([]byte, length)
	if _, err := ra.ReadAt(data, 0); err != nil {
		ra.Close()
		return nil, err
	}

	r, err := FromBytes(data, opts...)
	if err != nil {
		ra.Close()
		return nil, err
	}
	r.ra = ra

	return r, nil
}

// FromBytes binds a Reader directly to an in-memory image, such as a
// buffer already read or a test fixture. The Reader does not take
// ownership of data and never mutates it.
func FromBytes(data []byte, opts ...Option) (*Reader, error) {
	cfg := &readerConfig{logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(cfg)
	}

	r := &Reader{data: data, length: uint64(len(data)), log: cfg.logger}

	if err := r.loadImage(); err != nil {
		return nil, err
	}

	return r, nil
}

// Close releases the underlying OS mapping, if this Reader owns one.
func (r *Reader) Close() error {
	if r.ra == nil {
		return nil
	}

	return r.ra.Close()
}

// Len returns the size, in bytes, of the mapped image.
func (r *Reader) Len() uint64 {
	return r.length
}

func (r *Reader) loadImage() error {
	if r.length < uint64(format.PreambleSize+format.PostambleSize) {
		return errs.ErrFailPreamble
	}

	if _, err := section.ParsePreamble(r.data[:format.PreambleSize]); err != nil {
		return err
	}

	postambleStart := r.length - uint64(format.PostambleSize)
	postamble, err := section.ParsePostamble(r.data[postambleStart:])
	if err != nil {
		return err
	}

	switch postamble.Type {
	case format.PostambleCurrent:
		list, err := r.ReadNamedList(postamble.DirectoryOffset)
		if err != nil {
			r.directory = namedlist.New(64)
			return errs.ErrCorruptPostamble
		}
		r.directory = list
	case format.PostambleLegacy:
		list, err := r.readLegacyDirectory(postamble.DirectoryOffset)
		if err != nil {
			r.directory = namedlist.New(64)
			return errs.ErrCorruptPostamble
		}
		r.directory = list
	default:
		r.directory = namedlist.New(64)
		return errs.ErrCorruptPostamble
	}

	r.directory.RebuildHash()

	return nil
}

func (r *Reader) readLegacyDirectory(offset uint64) (*namedlist.List, error) {
	header, payload, err := r.ValidateVector(offset)
	if err != nil {
		return nil, err
	}
	if header.Type != format.Offset64 || header.Length%2 != 0 {
		return nil, errs.ErrInvalidDirectory
	}

	n := int(header.Length / 2)
	raw := section.DecodeOffsets(payload)
	tagOffsets, valueOffsets, ok := section.ParseLegacyDirectoryPayload(raw)
	if !ok {
		return nil, errs.ErrInvalidDirectory
	}

	list := namedlist.New(n)
	for i := 0; i < n; i++ {
		tagHeader, tagPayload, err := r.ValidateVector(tagOffsets[i])
		if err != nil || tagHeader.Type != format.Uint8 {
			if err == nil {
				err = errs.ErrUnknownType
			}
			r.recordCorruptTag(tagOffsets[i], err)
			list.Append([]byte(section.CorruptTag), valueOffsets[i])
			continue
		}

		list.Append(tagPayload, valueOffsets[i])
	}

	return list, nil
}

// FindDirectoryEntry looks up tag in the top-level directory, honoring
// last-insertion-wins semantics.
func (r *Reader) FindDirectoryEntry(tag []byte) (uint64, bool) {
	return r.directory.Find(tag)
}

// Directory returns the reader's parsed top-level directory.
func (r *Reader) Directory() *namedlist.List {
	return r.directory
}

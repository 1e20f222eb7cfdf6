// Package errs holds the sentinel errors returned throughout mvl.
//
// Library code never aborts the process or panics on malformed input; every
// failure mode named in the format's error taxonomy is a distinct sentinel
// here so callers can use errors.Is against a stable value. Wrap with
// fmt.Errorf("...: %w", errs.ErrX) to add context without losing the
// sentinel.
package errs

import "errors"

var (
	// ErrFailPreamble is returned when the preamble cannot be written or read.
	ErrFailPreamble = errors.New("mvl: failed to write or read preamble")
	// ErrFailPostamble is returned when the postamble cannot be written or read.
	ErrFailPostamble = errors.New("mvl: failed to write or read postamble")
	// ErrUnknownType is returned when a vector's type tag is not one of the closed element-type set.
	ErrUnknownType = errors.New("mvl: unknown vector element type")
	// ErrFailVector is returned when a vector header or payload could not be written.
	ErrFailVector = errors.New("mvl: failed to write vector")
	// ErrIncompleteWrite is returned when fewer bytes were written than requested.
	ErrIncompleteWrite = errors.New("mvl: incomplete write")
	// ErrInvalidSignature is returned when the preamble's magic signature does not match "MVL0".
	ErrInvalidSignature = errors.New("mvl: invalid file signature")
	// ErrWrongEndianness is returned when the preamble's endianness probe is not the float 1.0.
	ErrWrongEndianness = errors.New("mvl: wrong endianness")
	// ErrEmptyDirectory is returned when Close is called with no directory entries added.
	ErrEmptyDirectory = errors.New("mvl: directory is empty")
	// ErrInvalidDirectory is returned when the directory vector fails structural validation.
	ErrInvalidDirectory = errors.New("mvl: invalid directory")
	// ErrFtell is returned when the current stream position could not be determined.
	ErrFtell = errors.New("mvl: failed to determine stream position")
	// ErrCorruptPostamble is returned when the postamble is missing, truncated, or self-inconsistent.
	ErrCorruptPostamble = errors.New("mvl: corrupt postamble")
	// ErrInvalidAttrList is returned when an attributes-list vector has an odd length or bad offsets.
	ErrInvalidAttrList = errors.New("mvl: invalid attribute list")
	// ErrInvalidOffset is returned when an offset fails bounds validation against the mapped length.
	ErrInvalidOffset = errors.New("mvl: invalid offset")
	// ErrInvalidAttr is returned when a single attribute entry is corrupt.
	ErrInvalidAttr = errors.New("mvl: invalid attribute")
	// ErrCannotSeek is returned when the underlying stream does not support seeking to the requested position.
	ErrCannotSeek = errors.New("mvl: cannot seek")
	// ErrInvalidParameter is returned when a caller-supplied parameter violates an API precondition.
	ErrInvalidParameter = errors.New("mvl: invalid parameter")
	// ErrInvalidLength is returned when a vector's declared length is inconsistent with the mapped range.
	ErrInvalidLength = errors.New("mvl: invalid length")
	// ErrInvalidExtentIndex is returned when a persisted extent index fails to load.
	ErrInvalidExtentIndex = errors.New("mvl: invalid extent index")
	// ErrCorruptPackedList is returned when a PACKED_LIST64 vector's offsets are not well-formed.
	ErrCorruptPackedList = errors.New("mvl: corrupt packed list")

	// ErrAlreadyClosed is returned when a write is attempted after Close.
	ErrAlreadyClosed = errors.New("mvl: writer is already closed")
	// ErrOutputExhausted is returned when find_matches runs out of caller-provided output space.
	ErrOutputExhausted = errors.New("mvl: match output buffer exhausted")
	// ErrNotMapped is returned when a reader operation requires a mapped image that was never loaded.
	ErrNotMapped = errors.New("mvl: reader has no loaded image")
)

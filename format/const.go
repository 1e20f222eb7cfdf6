package format

// Signature is the 4-byte magic at the start of every mvl container.
const Signature = "MVL0"

// EndiannessFlag is the exact float value stored in the preamble. A host
// reading the bytes back with the opposite byte order sees a different
// value and load fails with errs.ErrWrongEndianness.
const EndiannessFlag float32 = 1.0

// DefaultAlignment is the file-wide alignment used unless a writer option
// overrides it. It must be a power of two.
const DefaultAlignment = 32

const (
	// PreambleSize is the fixed size, in bytes, of the file preamble.
	PreambleSize = 64
	// PostambleSize is the fixed size, in bytes, of the file postamble.
	PostambleSize = 64
	// HeaderSize is the fixed size, in bytes, of a vector header.
	HeaderSize = 64
)

// PostambleType identifies which directory layout the postamble points at.
type PostambleType int32

const (
	// PostambleLegacy marks a directory stored as a pair of parallel OFFSET64 arrays.
	PostambleLegacy PostambleType = 1000
	// PostambleCurrent marks a directory stored as a named list.
	PostambleCurrent PostambleType = 1001
)

const (
	// NoMetadata is the sentinel "no attributes" metadata offset.
	NoMetadata uint64 = 0
	// NullOffset is the sentinel "absent" offset, also the offset never
	// assigned to a real vector (the preamble occupies offset 0).
	NullOffset uint64 = 0
)

// MissingString is the placeholder byte payload mvl uses for a missing
// string entry: the 4 bytes {0, 0, 'N', 'A'}.
var MissingString = [4]byte{0, 0, 'N', 'A'}

// Sort function selectors for sortengine.
const (
	// SortLexicographic sorts ascending, column by column, in order.
	SortLexicographic = 1
	// SortLexicographicDesc sorts descending, column by column, in order.
	SortLexicographicDesc = 2
)

// ExtentIndexType is the index_type value stored in a persisted extent index.
const ExtentIndexType int32 = 1

// CorruptTagPlaceholder is the tag substituted for an attribute entry whose
// tag offset fails validation, so a reader can degrade gracefully instead
// of aborting (spec §4.D).
const CorruptTagPlaceholder = "*CORRUPT*"

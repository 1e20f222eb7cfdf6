package section

import (
	"encoding/binary"

	"github.com/mvlformat/mvl/errs"
	"github.com/mvlformat/mvl/format"
)

// Postamble is the 64-byte trailer at file_length-64 pointing at the
// directory vector and stating which directory encoding it uses.
type Postamble struct {
	DirectoryOffset uint64
	Type            format.PostambleType
}

// Bytes serializes the postamble.
func (p Postamble) Bytes() []byte {
	b := make([]byte, format.PostambleSize)
	binary.LittleEndian.PutUint64(b[0:8], p.DirectoryOffset)
	binary.LittleEndian.PutUint32(b[8:12], uint32(p.Type))
	// b[12:64] stays zero (reserved).
	return b
}

// ParsePostamble parses and sanity-checks a 64-byte postamble.
func ParsePostamble(b []byte) (Postamble, error) {
	if len(b) < format.PostambleSize {
		return Postamble{}, errs.ErrFailPostamble
	}

	p := Postamble{
		DirectoryOffset: binary.LittleEndian.Uint64(b[0:8]),
		Type:            format.PostambleType(binary.LittleEndian.Uint32(b[8:12])),
	}

	if p.Type != format.PostambleLegacy && p.Type != format.PostambleCurrent {
		return Postamble{}, errs.ErrCorruptPostamble
	}

	return p, nil
}

package format

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/joshuapare/journalkit/internal/buf"
)

// VerifiedSize is the encoded size of a verified int64: the value followed by
// its check word.
const VerifiedSize = 16

// verifiedDomain keys the check word so that unrelated 16-byte patterns do
// not verify by accident.
var verifiedDomain = []byte("journalkit verified int64 v1")

// checkWord derives the 64-bit check word for v.
func checkWord(v uint64) uint64 {
	var word [QWORDSize]byte
	binary.LittleEndian.PutUint64(word[:], v)

	h := blake3.New()
	_, _ = h.Write(verifiedDomain)
	_, _ = h.Write(word[:])
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:QWORDSize])
}

// PutVerifiedInt64 stores v at off together with its check word.
//
//	Offset  Size  Description
//	------  ----  -------------------------
//	 +0x0    8    value (two's complement)
//	 +0x8    8    check word
//
// The value is written first and the check word last, so a write torn
// between the two halves fails verification.
func PutVerifiedInt64(b []byte, off int, v int64) {
	PutI64(b, off, v)
	PutU64(b, off+QWORDSize, checkWord(uint64(v)))
}

// ReadVerifiedInt64 reads the verified value stored at off. It returns
// ErrUnverified when the check word does not match the value, which is the
// case for zero-filled, garbage and partially written fields.
func ReadVerifiedInt64(b []byte, off int) (int64, error) {
	if !buf.Has(b, off, VerifiedSize) {
		return 0, ErrTruncated
	}
	v := ReadU64(b, off)
	if ReadU64(b, off+QWORDSize) != checkWord(v) {
		return 0, ErrUnverified
	}
	return int64(v), nil
}

package str

import (
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// Hash64 returns the 64-bit xxHash of the sequence's UTF-8 encoding,
// streamed without building the encoded form. Equal content always
// hashes equal, so the result works as a content key for caches and
// interning tables; it is not a cryptographic digest.
func (s *String) Hash64() uint64 {
	d := xxhash.New()
	var buf [utf8.UTFMax]byte
	for _, r := range s.runes {
		n := utf8.EncodeRune(buf[:], r)
		_, _ = d.Write(buf[:n])
	}
	return d.Sum64()
}

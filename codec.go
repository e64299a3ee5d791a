package str

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// DecodeError reports the first malformed UTF-8 sequence in the input of
// a decoding operation. It wraps ErrInvalidUTF8 for errors.Is checks.
type DecodeError struct {
	Offset int // byte offset of the first invalid sequence
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 encoding at byte %d", e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return ErrInvalidUTF8
}

// FromString decodes a UTF-8 string into a sequence with one element per
// code point. Malformed input is rejected with a *DecodeError; nothing
// is ever replaced with U+FFFD or dropped.
func FromString(text string) (*String, error) {
	rs, err := decode(text)
	if err != nil {
		return nil, err
	}
	return &String{runes: rs}, nil
}

// FromBytes decodes UTF-8 bytes with the same contract as FromString.
func FromBytes(b []byte) (*String, error) {
	return FromString(string(b))
}

// FromReader drains r and decodes its contents with the same contract as
// FromString. The whole input is read before decoding, so a malformed
// sequence anywhere in the stream rejects all of it.
func FromReader(r io.Reader) (*String, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromString(string(data))
}

// String re-encodes the sequence as UTF-8. For any text accepted by
// FromString, FromString then String reproduces the input byte for byte.
func (s *String) String() string {
	if len(s.runes) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(s.EncodedLen())
	for _, r := range s.runes {
		sb.WriteRune(r)
	}
	return sb.String()
}

// Bytes returns the UTF-8 encoding as a freshly allocated byte slice.
// An empty sequence returns nil.
func (s *String) Bytes() []byte {
	if len(s.runes) == 0 {
		return nil
	}
	buf := make([]byte, 0, s.EncodedLen())
	for _, r := range s.runes {
		buf = utf8.AppendRune(buf, r)
	}
	return buf
}

// EncodedLen returns the number of bytes the UTF-8 encoding occupies,
// without building it.
func (s *String) EncodedLen() int {
	n := 0
	for _, r := range s.runes {
		size := utf8.RuneLen(r)
		if size < 0 {
			// Invalid scalar values encode as U+FFFD, three bytes,
			// matching WriteRune and AppendRune.
			size = 3
		}
		n += size
	}
	return n
}

// decode validates text and decodes it into a fresh rune slice. Empty
// input decodes to nil.
func decode(text string) ([]rune, error) {
	if text == "" {
		return nil, nil
	}
	if !utf8.ValidString(text) {
		return nil, &DecodeError{Offset: invalidOffset(text)}
	}
	out := make([]rune, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		out = append(out, r)
	}
	return out, nil
}

// invalidOffset locates the first malformed byte sequence. Only called
// on text that failed validation; a literal U+FFFD in otherwise valid
// text decodes with size 3 and is skipped over.
func invalidOffset(text string) int {
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(text)
}

package str

import (
	"fmt"
	"unicode/utf8"
)

// Get returns the rune at position i, or false when i is out of range.
func (s *String) Get(i int) (rune, bool) {
	if i < 0 || i >= len(s.runes) {
		return 0, false
	}
	return s.runes[i], true
}

// Set stores r at position i and reports whether i was in range. It is
// the writable counterpart of Get: no shifting and no validation of r.
func (s *String) Set(i int, r rune) bool {
	if i < 0 || i >= len(s.runes) {
		return false
	}
	s.runes[i] = r
	return true
}

// At returns the rune at position i. Unlike Get it treats an
// out-of-range i as a programming error and panics, the same way a slice
// index does.
func (s *String) At(i int) rune {
	s.mustIndex(i)
	return s.runes[i]
}

// Push appends one rune. Amortized O(1); growth follows the Reserve
// doubling policy.
func (s *String) Push(r rune) {
	s.runes = append(s.runes, r)
}

// PushString decodes text and appends its runes in order. Malformed
// input is reported as a *DecodeError; on any error the sequence is
// unchanged.
func (s *String) PushString(text string) error {
	if text == "" {
		return nil
	}
	if !utf8.ValidString(text) {
		return &DecodeError{Offset: invalidOffset(text)}
	}
	if err := s.Reserve(utf8.RuneCountInString(text)); err != nil {
		return err
	}
	for _, r := range text {
		s.runes = append(s.runes, r)
	}
	return nil
}

// Pop removes and returns the last rune. The second result is false when
// the sequence is empty. Capacity is retained.
func (s *String) Pop() (rune, bool) {
	n := len(s.runes)
	if n == 0 {
		return 0, false
	}
	r := s.runes[n-1]
	s.runes = s.runes[:n-1]
	return r, true
}

// Insert places r at position i, shifting everything from i onward one
// slot right. i may equal Len, which appends. Panics when i is outside
// [0, Len]. O(Len-i).
func (s *String) Insert(i int, r rune) {
	s.mustPosition(i)
	s.runes = append(s.runes, 0)
	copy(s.runes[i+1:], s.runes[i:])
	s.runes[i] = r
}

// InsertString decodes text and inserts its runes at position i,
// shifting the tail right by the decoded count. Panics when i is outside
// [0, Len]; malformed text is reported as a *DecodeError before anything
// moves, so a failed call leaves the sequence unchanged.
func (s *String) InsertString(i int, text string) error {
	s.mustPosition(i)
	rs, err := decode(text)
	if err != nil {
		return err
	}
	if len(rs) == 0 {
		return nil
	}
	tail := len(s.runes)
	s.runes = append(s.runes, rs...)
	copy(s.runes[i+len(rs):], s.runes[i:tail])
	copy(s.runes[i:], rs)
	return nil
}

// Remove deletes and returns the rune at position i, shifting the tail
// left. Panics when i is outside [0, Len). O(Len-i).
func (s *String) Remove(i int) rune {
	s.mustIndex(i)
	r := s.runes[i]
	copy(s.runes[i:], s.runes[i+1:])
	s.runes = s.runes[:len(s.runes)-1]
	return r
}

// Truncate keeps the first n runes and drops the rest. When n >= Len it
// does nothing; negative n empties the sequence. Never grows, never
// panics. Capacity is retained.
func (s *String) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(s.runes) {
		s.runes = s.runes[:n]
	}
}

// Clear removes every rune. Capacity is retained for reuse.
func (s *String) Clear() {
	s.runes = s.runes[:0]
}

// Retain keeps only the runes for which keep returns true, preserving
// their relative order. Runs in a single in-place pass. Capacity is
// retained.
func (s *String) Retain(keep func(rune) bool) {
	kept := s.runes[:0]
	for _, r := range s.runes {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	s.runes = kept
}

// mustIndex panics unless i addresses an existing rune.
func (s *String) mustIndex(i int) {
	if i < 0 || i >= len(s.runes) {
		panic(fmt.Sprintf("str: index %d out of range [0, %d)", i, len(s.runes)))
	}
}

// mustPosition panics unless i is a valid insertion point, which
// includes the one-past-the-end position.
func (s *String) mustPosition(i int) {
	if i < 0 || i > len(s.runes) {
		panic(fmt.Sprintf("str: position %d out of range [0, %d]", i, len(s.runes)))
	}
}

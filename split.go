package str

// Append moves every rune of other onto the end of s, leaving other
// empty. This is the += operation between sequences: other is consumed
// but keeps its capacity for reuse. A nil other counts as empty.
// Appending a sequence to itself is a fault and panics.
func (s *String) Append(other *String) {
	if other == nil {
		return
	}
	if other == s {
		panic("str: cannot append a sequence to itself")
	}
	if len(other.runes) == 0 {
		return
	}
	s.runes = append(s.runes, other.runes...)
	other.runes = other.runes[:0]
}

// Concat builds a sequence holding a's runes followed by b's. This is
// the + operation between sequences: both operands are consumed and left
// empty, and a's backing storage is reused for the result when it is
// large enough. nil operands count as empty. Passing the same sequence
// twice is a fault and panics.
func Concat(a, b *String) *String {
	if a != nil && a == b {
		panic("str: cannot concatenate a sequence with itself")
	}
	out := New()
	if a != nil {
		out.runes = a.runes
		a.runes = nil
	}
	if b != nil {
		out.runes = append(out.runes, b.runes...)
		b.runes = nil
	}
	return out
}

// SplitOff removes the tail [at, Len) and returns it as a new,
// independently owned sequence; s keeps [0, at) along with its capacity.
// Panics when at is outside [0, Len]. SplitOff(Len()) returns an empty
// sequence and leaves s unchanged.
func (s *String) SplitOff(at int) *String {
	s.mustPosition(at)
	tail := FromRunes(s.runes[at:])
	s.runes = s.runes[:at]
	return tail
}

// SplitAt returns independent copies of the head [0, mid) and the tail
// [mid, Len) without modifying s. Panics when mid is outside [0, Len].
// Contrast with SplitOff, which moves the tail out of s.
func (s *String) SplitAt(mid int) (*String, *String) {
	s.mustPosition(mid)
	return FromRunes(s.runes[:mid]), FromRunes(s.runes[mid:])
}

// Equal reports whether s and other hold the same runes in the same
// order. A nil other compares as empty.
func (s *String) Equal(other *String) bool {
	var o []rune
	if other != nil {
		o = other.runes
	}
	if len(s.runes) != len(o) {
		return false
	}
	for i, r := range s.runes {
		if r != o[i] {
			return false
		}
	}
	return true
}

// Compare orders s against other lexicographically by rune value,
// returning -1, 0, or 1. A shared prefix defers to length. A nil other
// compares as empty.
func (s *String) Compare(other *String) int {
	var o []rune
	if other != nil {
		o = other.runes
	}
	n := len(s.runes)
	if len(o) < n {
		n = len(o)
	}
	for i := 0; i < n; i++ {
		switch {
		case s.runes[i] < o[i]:
			return -1
		case s.runes[i] > o[i]:
			return 1
		}
	}
	switch {
	case len(s.runes) < len(o):
		return -1
	case len(s.runes) > len(o):
		return 1
	}
	return 0
}

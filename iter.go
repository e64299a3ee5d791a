package str

// Iterator is a one-shot forward iterator over a sequence's runes.
//
// It is produced by String.Iter, which consumes the sequence: the
// backing storage moves into the iterator and the source is left empty.
// Iteration is synchronous pull, one rune per Next call.
type Iterator struct {
	runes []rune
	pos   int
	cur   rune
}

// Iter consumes s and returns an iterator over its runes in order. After
// the call s is empty; the elements live on in the iterator.
func (s *String) Iter() *Iterator {
	it := &Iterator{runes: s.runes}
	s.runes = nil
	return it
}

// Next advances to the next rune and reports whether one was available.
// Once it returns false the iterator stays exhausted.
func (it *Iterator) Next() bool {
	if it.pos >= len(it.runes) {
		return false
	}
	it.cur = it.runes[it.pos]
	it.pos++
	return true
}

// Rune returns the rune most recently advanced to. It is only meaningful
// after a Next call that returned true.
func (it *Iterator) Rune() rune {
	return it.cur
}

// Remaining returns how many runes have not been produced yet.
func (it *Iterator) Remaining() int {
	return len(it.runes) - it.pos
}

// Collect drains the iterator into a new sequence holding the runes not
// yet produced. The iterator is exhausted afterwards.
func (it *Iterator) Collect() *String {
	out := FromRunes(it.runes[it.pos:])
	it.pos = len(it.runes)
	return out
}

package str

import "math"

// maxRunes is the largest element count whose 4-byte-per-rune backing
// array still fits in int. Reservations beyond it report
// ErrCapacityOverflow instead of aborting inside the allocator.
const maxRunes = math.MaxInt / 4

// String is an owned, growable sequence of runes (Unicode scalar values).
//
// Unlike the built-in string type, positions refer to runes, not bytes:
// index i is the i-th character regardless of how many bytes its UTF-8
// encoding occupies. The zero value is an empty sequence ready to use.
//
// A String has a single owner. Methods must not be called concurrently
// with a mutation unless the caller synchronizes.
type String struct {
	runes []rune
}

// New creates an empty sequence. No storage is allocated until the first
// rune is added.
func New() *String {
	return &String{}
}

// NewWithCapacity creates an empty sequence with room for at least n
// runes preallocated. For n <= 0 it is equivalent to New.
func NewWithCapacity(n int) *String {
	if n <= 0 {
		return New()
	}
	return &String{runes: make([]rune, 0, n)}
}

// FromRunes creates a sequence holding a copy of rs. The runes are
// trusted to be already-decoded scalar values and are not validated.
func FromRunes(rs []rune) *String {
	if len(rs) == 0 {
		return New()
	}
	buf := make([]rune, len(rs))
	copy(buf, rs)
	return &String{runes: buf}
}

// FromOwnedRunes creates a sequence that adopts rs as its backing
// storage without copying. The caller hands over ownership: rs must not
// be read or written after the call. Like FromRunes it does not
// validate.
func FromOwnedRunes(rs []rune) *String {
	return &String{runes: rs}
}

// Clone returns an independent copy of the sequence. The copy's capacity
// matches its length, not the original's capacity.
func (s *String) Clone() *String {
	return FromRunes(s.runes)
}

// Runes returns a copy of the elements as a rune slice, for interchange
// with code that already works in decoded form.
func (s *String) Runes() []rune {
	if len(s.runes) == 0 {
		return nil
	}
	out := make([]rune, len(s.runes))
	copy(out, s.runes)
	return out
}

// Len returns the number of runes in the sequence.
func (s *String) Len() int {
	return len(s.runes)
}

// IsEmpty reports whether the sequence holds no runes.
func (s *String) IsEmpty() bool {
	return len(s.runes) == 0
}

// Cap returns the size of the backing storage in runes. It is always at
// least Len.
func (s *String) Cap() int {
	return cap(s.runes)
}

// Reserve grows the backing storage so that at least additional more
// runes fit without reallocating. It may over-allocate to amortize
// future growth; reserving space that is already free is a no-op, as is
// additional <= 0. Returns ErrCapacityOverflow when Len()+additional is
// not representable.
func (s *String) Reserve(additional int) error {
	need, err := s.capacityTarget(additional)
	if err != nil || need <= cap(s.runes) {
		return err
	}
	newCap := cap(s.runes) * 2
	if newCap < need {
		newCap = need
	}
	if newCap > maxRunes {
		newCap = maxRunes
	}
	s.regrow(newCap)
	return nil
}

// ReserveExact grows the backing storage so that exactly Len()+additional
// runes fit, without amortization slack. Prefer Reserve unless the final
// size is known up front.
func (s *String) ReserveExact(additional int) error {
	need, err := s.capacityTarget(additional)
	if err != nil || need <= cap(s.runes) {
		return err
	}
	s.regrow(need)
	return nil
}

// ShrinkToFit drops unused backing storage so that Cap equals Len. Go
// cannot shrink an allocation in place, so this copies the elements into
// a right-sized one. An empty sequence releases its storage entirely.
func (s *String) ShrinkToFit() {
	if cap(s.runes) == len(s.runes) {
		return
	}
	if len(s.runes) == 0 {
		s.runes = nil
		return
	}
	buf := make([]rune, len(s.runes))
	copy(buf, s.runes)
	s.runes = buf
}

// capacityTarget computes Len()+additional, reporting overflow. A target
// of 0 means no growth is required.
func (s *String) capacityTarget(additional int) (int, error) {
	if additional <= 0 {
		return 0, nil
	}
	need := len(s.runes) + additional
	if need < 0 || need > maxRunes {
		return 0, ErrCapacityOverflow
	}
	return need, nil
}

// regrow moves the elements into a fresh allocation of capacity newCap.
func (s *String) regrow(newCap int) {
	buf := make([]rune, len(s.runes), newCap)
	copy(buf, s.runes)
	s.runes = buf
}

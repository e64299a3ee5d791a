// Package str provides a growable string type addressed by rune position.
//
// A String stores decoded Unicode scalar values (runes) rather than UTF-8
// bytes, so positional access and mutation work on characters without
// re-decoding the text on every operation. UTF-8 appears only at the
// boundary: FromString validates and decodes once, String re-encodes, and
// the two are exact inverses for any valid input.
//
// Key properties:
//   - One element per code point, never per byte or grapheme cluster
//   - O(1) positional access, amortized O(1) append
//   - Explicit capacity control (Reserve, ReserveExact, ShrinkToFit)
//   - Malformed UTF-8 is rejected at the boundary, never substituted
//
// Basic usage:
//
//	s, _ := str.FromString("Hello, ")
//	s.Push('w')
//	_ = s.PushString("orld!")
//	fmt.Println(s)          // "Hello, world!"
//	fmt.Println(s.Len())    // 13
//
// Out-of-range positions split into two classes. The checked accessors
// Get and Set report absence, and Pop reports emptiness, through a
// boolean result. The positional operations At, Insert, Remove, SplitOff,
// and SplitAt treat a bad position as a programming error and panic, the
// same way a slice index does.
//
// A String is a plain single-owner value: it performs no locking and no
// I/O. Share one across goroutines only with external synchronization.
package str

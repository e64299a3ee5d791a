package str

import "errors"

// Errors reported by the decoding and capacity operations.
var (
	// ErrInvalidUTF8 is reported when text handed to a decoding
	// operation is not well-formed UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 encoding")

	// ErrCapacityOverflow is reported when a requested reservation
	// would exceed the addressable element range.
	ErrCapacityOverflow = errors.New("capacity overflow")
)

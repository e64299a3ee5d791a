package script

import (
	"errors"
	"fmt"
)

// Errors reported while decoding or applying script operations.
var (
	// ErrUnknownOp is reported for an operation name the engine does
	// not recognize.
	ErrUnknownOp = errors.New("unknown operation")

	// ErrOutOfRange is reported when an operation addresses a position
	// outside the sequence.
	ErrOutOfRange = errors.New("position out of range")

	// ErrEmptySequence is reported when pop runs against an empty
	// sequence.
	ErrEmptySequence = errors.New("pop on empty sequence")

	// ErrNegativeLength is reported when truncate is given a negative
	// length.
	ErrNegativeLength = errors.New("negative length")

	// ErrMissingField is reported when an operation omits a required
	// operand.
	ErrMissingField = errors.New("missing required field")

	// ErrUnsupportedFormat is reported for script files whose
	// extension maps to no decoder.
	ErrUnsupportedFormat = errors.New("unsupported script format")

	// ErrRuntimeClosed is reported when a closed Lua runtime is asked
	// to run a script.
	ErrRuntimeClosed = errors.New("runtime is closed")
)

// OpError locates a failing operation within a script.
type OpError struct {
	Index int // zero-based position in the script
	Op    Op
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("op %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed script file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

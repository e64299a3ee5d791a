package script

import (
	"fmt"

	str "github.com/danclive/string"
)

// Kind identifies a script operation.
type Kind int

// Script operations, in wire-name order.
const (
	KindPush Kind = iota
	KindPushText
	KindPop
	KindSet
	KindInsert
	KindInsertText
	KindRemove
	KindTruncate
	KindClear
	KindSplitOff
)

// String returns the operation's wire name.
func (k Kind) String() string {
	switch k {
	case KindPush:
		return "push"
	case KindPushText:
		return "push_text"
	case KindPop:
		return "pop"
	case KindSet:
		return "set"
	case KindInsert:
		return "insert"
	case KindInsertText:
		return "insert_text"
	case KindRemove:
		return "remove"
	case KindTruncate:
		return "truncate"
	case KindClear:
		return "clear"
	case KindSplitOff:
		return "split_off"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// parseKind maps a wire name to its Kind.
func parseKind(name string) (Kind, bool) {
	switch name {
	case "push":
		return KindPush, true
	case "push_text":
		return KindPushText, true
	case "pop":
		return KindPop, true
	case "set":
		return KindSet, true
	case "insert":
		return KindInsert, true
	case "insert_text":
		return KindInsertText, true
	case "remove":
		return KindRemove, true
	case "truncate":
		return KindTruncate, true
	case "clear":
		return KindClear, true
	case "split_off":
		return KindSplitOff, true
	}
	return 0, false
}

// Op is one edit step in a script. Kind selects the operation; the
// remaining fields carry its operands and are ignored where not used.
type Op struct {
	Kind Kind
	At   int    // rune position (set, insert, insert_text, remove, split_off)
	Len  int    // kept length (truncate)
	Ch   rune   // single-rune operand (push, set, insert)
	Text string // text operand (push_text, insert_text)
}

// String renders the op roughly as it appears in a script file.
func (o Op) String() string {
	switch o.Kind {
	case KindPush:
		return fmt.Sprintf("push %q", o.Ch)
	case KindPushText:
		return fmt.Sprintf("push_text %q", o.Text)
	case KindSet:
		return fmt.Sprintf("set %q at %d", o.Ch, o.At)
	case KindInsert:
		return fmt.Sprintf("insert %q at %d", o.Ch, o.At)
	case KindInsertText:
		return fmt.Sprintf("insert_text %q at %d", o.Text, o.At)
	case KindRemove:
		return fmt.Sprintf("remove at %d", o.At)
	case KindTruncate:
		return fmt.Sprintf("truncate to %d", o.Len)
	case KindSplitOff:
		return fmt.Sprintf("split_off at %d", o.At)
	}
	return o.Kind.String()
}

// Apply runs ops against seq in order. Operands are validated before
// each step mutates anything, so a bad script reports an *OpError
// instead of panicking; seq is left in the state produced by the steps
// that completed.
func Apply(seq *str.String, ops []Op) error {
	if seq == nil {
		panic("script: Apply called with nil sequence")
	}
	for i, op := range ops {
		if err := applyOne(seq, op); err != nil {
			return &OpError{Index: i, Op: op, Err: err}
		}
	}
	return nil
}

func applyOne(seq *str.String, op Op) error {
	switch op.Kind {
	case KindPush:
		seq.Push(op.Ch)
	case KindPushText:
		return seq.PushString(op.Text)
	case KindPop:
		if _, ok := seq.Pop(); !ok {
			return ErrEmptySequence
		}
	case KindSet:
		if !seq.Set(op.At, op.Ch) {
			return positionError(op.At, seq.Len())
		}
	case KindInsert:
		if op.At < 0 || op.At > seq.Len() {
			return positionError(op.At, seq.Len())
		}
		seq.Insert(op.At, op.Ch)
	case KindInsertText:
		if op.At < 0 || op.At > seq.Len() {
			return positionError(op.At, seq.Len())
		}
		return seq.InsertString(op.At, op.Text)
	case KindRemove:
		if op.At < 0 || op.At >= seq.Len() {
			return positionError(op.At, seq.Len())
		}
		seq.Remove(op.At)
	case KindTruncate:
		if op.Len < 0 {
			return ErrNegativeLength
		}
		seq.Truncate(op.Len)
	case KindClear:
		seq.Clear()
	case KindSplitOff:
		if op.At < 0 || op.At > seq.Len() {
			return positionError(op.At, seq.Len())
		}
		// Keep the tail: the head before op.At is discarded.
		*seq = *seq.SplitOff(op.At)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOp, op.Kind)
	}
	return nil
}

func positionError(at, length int) error {
	return fmt.Errorf("%w: position %d, length %d", ErrOutOfRange, at, length)
}

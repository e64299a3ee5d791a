package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Load reads a script file and decodes its operations. The format is
// chosen by extension: .json, .yaml, .yml, or .toml. Lua scripts are
// programs rather than op lists; run those with a Runtime instead.
func Load(path string) ([]Op, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(path, data)
	case ".yaml", ".yml":
		return DecodeYAML(path, data)
	case ".toml":
		return DecodeTOML(path, data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// rawOp is the wire form of an operation, shared by every format.
// Pointer fields distinguish absent operands from zero values.
type rawOp struct {
	Op   string `yaml:"op" toml:"op"`
	At   *int   `yaml:"at" toml:"at"`
	Len  *int   `yaml:"len" toml:"len"`
	Ch   string `yaml:"ch" toml:"ch"`
	Text string `yaml:"text" toml:"text"`
}

// decode validates the operands required by the named kind and
// assembles the Op.
func (r rawOp) decode() (Op, error) {
	kind, ok := parseKind(r.Op)
	if !ok {
		return Op{}, fmt.Errorf("%w: %q", ErrUnknownOp, r.Op)
	}
	op := Op{Kind: kind, Text: r.Text}

	switch kind {
	case KindSet, KindInsert, KindInsertText, KindRemove, KindSplitOff:
		if r.At == nil {
			return Op{}, fmt.Errorf("%w: %q requires \"at\"", ErrMissingField, r.Op)
		}
		op.At = *r.At
	}

	switch kind {
	case KindPush, KindSet, KindInsert:
		if r.Ch == "" {
			return Op{}, fmt.Errorf("%w: %q requires \"ch\"", ErrMissingField, r.Op)
		}
		ch, err := singleRune(r.Ch)
		if err != nil {
			return Op{}, fmt.Errorf("\"ch\": %w", err)
		}
		op.Ch = ch
	}

	if kind == KindTruncate {
		if r.Len == nil {
			return Op{}, fmt.Errorf("%w: %q requires \"len\"", ErrMissingField, r.Op)
		}
		op.Len = *r.Len
	}

	return op, nil
}

// singleRune decodes a one-rune operand.
func singleRune(s string) (rune, error) {
	if s == "" {
		return 0, errors.New("empty character operand")
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return 0, errors.New("character operand is not valid UTF-8")
	}
	if size != len(s) {
		return 0, fmt.Errorf("%q is not a single character", s)
	}
	return r, nil
}

// decodeRaw turns wire ops into validated Ops, reporting the index of
// the first bad one.
func decodeRaw(path string, raw []rawOp) ([]Op, error) {
	ops := make([]Op, 0, len(raw))
	for i, r := range raw {
		op, err := r.decode()
		if err != nil {
			return nil, &ParseError{
				Path:    path,
				Message: fmt.Sprintf("op %d: %v", i, err),
				Err:     err,
			}
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// DecodeJSON decodes operations from JSON. The document is either an
// object with an "ops" array or a bare array of operation objects.
func DecodeJSON(path string, data []byte) ([]Op, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: path, Message: "invalid JSON"}
	}
	list := gjson.ParseBytes(data)
	if ops := list.Get("ops"); ops.Exists() {
		list = ops
	}
	if !list.IsArray() {
		return nil, &ParseError{Path: path, Message: "expected an array of operations"}
	}

	var (
		raw       []rawOp
		nonObject bool
	)
	list.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			nonObject = true
			return false
		}
		r := rawOp{
			Op:   item.Get("op").String(),
			Ch:   item.Get("ch").String(),
			Text: item.Get("text").String(),
		}
		if at := item.Get("at"); at.Exists() {
			v := int(at.Int())
			r.At = &v
		}
		if n := item.Get("len"); n.Exists() {
			v := int(n.Int())
			r.Len = &v
		}
		raw = append(raw, r)
		return true
	})
	if nonObject {
		return nil, &ParseError{Path: path, Message: "operations must be objects"}
	}
	return decodeRaw(path, raw)
}

// DecodeYAML decodes operations from YAML. The document is either a
// mapping with an "ops" sequence or a bare sequence.
func DecodeYAML(path string, data []byte) ([]Op, error) {
	var doc struct {
		Ops []rawOp `yaml:"ops"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		var list []rawOp
		if lerr := yaml.Unmarshal(data, &list); lerr != nil {
			return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
		}
		doc.Ops = list
	}
	return decodeRaw(path, doc.Ops)
}

// DecodeTOML decodes operations from a TOML document holding an [[ops]]
// array of tables.
func DecodeTOML(path string, data []byte) ([]Op, error) {
	var doc struct {
		Ops []rawOp `toml:"ops"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return decodeRaw(path, doc.Ops)
}

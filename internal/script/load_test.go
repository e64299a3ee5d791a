package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	str "github.com/danclive/string"
)

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// runScript loads a script file and applies it to an empty sequence.
func runScript(t *testing.T, name, content string) *str.String {
	t.Helper()
	ops, err := Load(writeScript(t, name, content))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	seq := str.New()
	if err := Apply(seq, ops); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	return seq
}

func TestLoadJSON(t *testing.T) {
	seq := runScript(t, "edit.json", `{
  "ops": [
    {"op": "push_text", "text": "Hello world"},
    {"op": "truncate", "len": 5},
    {"op": "push", "ch": "!"},
    {"op": "insert_text", "at": 5, "text": ", 世界"}
  ]
}`)
	if got := seq.String(); got != "Hello, 世界!" {
		t.Errorf("got %q, want %q", got, "Hello, 世界!")
	}
}

func TestLoadJSONBareArray(t *testing.T) {
	seq := runScript(t, "edit.json", `[
  {"op": "push_text", "text": "abc"},
  {"op": "remove", "at": 1}
]`)
	if got := seq.String(); got != "ac" {
		t.Errorf("got %q, want %q", got, "ac")
	}
}

func TestLoadJSONSplitOff(t *testing.T) {
	seq := runScript(t, "edit.json", `[
  {"op": "push_text", "text": "prefix:payload"},
  {"op": "split_off", "at": 7}
]`)
	if got := seq.String(); got != "payload" {
		t.Errorf("got %q, want %q", got, "payload")
	}
}

func TestLoadYAML(t *testing.T) {
	seq := runScript(t, "edit.yaml", `ops:
  - op: push_text
    text: héllo
  - op: set
    at: 1
    ch: e
  - op: pop
`)
	if got := seq.String(); got != "hell" {
		t.Errorf("got %q, want %q", got, "hell")
	}
}

func TestLoadYAMLBareSequence(t *testing.T) {
	seq := runScript(t, "edit.yml", `- op: push_text
  text: abc
- op: clear
- op: push
  ch: z
`)
	if got := seq.String(); got != "z" {
		t.Errorf("got %q, want %q", got, "z")
	}
}

func TestLoadTOML(t *testing.T) {
	seq := runScript(t, "edit.toml", `[[ops]]
op = "push_text"
text = "hello"

[[ops]]
op = "insert"
at = 0
ch = "¡"

[[ops]]
op = "truncate"
len = 3
`)
	if got := seq.String(); got != "¡he" {
		t.Errorf("got %q, want %q", got, "¡he")
	}
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"invalid json", `{"ops": [`, nil},
		{"not an array", `{"ops": 3}`, nil},
		{"non-object item", `[1, 2]`, nil},
		{"unknown op", `[{"op": "explode"}]`, ErrUnknownOp},
		{"missing at", `[{"op": "remove"}]`, ErrMissingField},
		{"missing len", `[{"op": "truncate"}]`, ErrMissingField},
		{"missing ch", `[{"op": "push"}]`, ErrMissingField},
		{"multi-rune ch", `[{"op": "push", "ch": "ab"}]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON("test.json", []byte(tt.data))
			if err == nil {
				t.Fatal("DecodeJSON succeeded, want error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("err %v is not a *ParseError", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeYAMLError(t *testing.T) {
	_, err := DecodeYAML("test.yaml", []byte("ops: ["))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err %v is not a *ParseError", err)
	}
	if perr.Path != "test.yaml" {
		t.Errorf("Path = %q, want %q", perr.Path, "test.yaml")
	}
}

func TestDecodeTOMLError(t *testing.T) {
	_, err := DecodeTOML("test.toml", []byte("[[ops]\nop = 3"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err %v is not a *ParseError", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeScript(t, "edit.txt", "push hello")
	if _, err := Load(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}

	// Lua scripts are programs for a Runtime, not op lists.
	lua := writeScript(t, "edit.lua", `seq.push_text("x")`)
	if _, err := Load(lua); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

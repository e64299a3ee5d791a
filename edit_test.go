package str

import (
	"errors"
	"strings"
	"testing"
	"testing/quick"
	"unicode"
	"unicode/utf8"
)

func mustFromString(t *testing.T, text string) *String {
	t.Helper()
	s, err := FromString(text)
	if err != nil {
		t.Fatalf("FromString(%q) returned error: %v", text, err)
	}
	return s
}

func TestGet(t *testing.T) {
	s := mustFromString(t, "héllo")

	tests := []struct {
		name   string
		i      int
		want   rune
		wantOK bool
	}{
		{"first", 0, 'h', true},
		{"multibyte", 1, 'é', true},
		{"last", 4, 'o', true},
		{"past end", 5, 0, false},
		{"far past end", 100, 0, false},
		{"negative", -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Get(tt.i)
			if ok != tt.wantOK {
				t.Fatalf("Get(%d) ok = %v, want %v", tt.i, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Get(%d) = %q, want %q", tt.i, got, tt.want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	s := mustFromString(t, "hello")

	if !s.Set(0, 'j') {
		t.Error("Set(0) should succeed")
	}
	if !s.Set(4, '🎉') {
		t.Error("Set(4) should succeed")
	}
	if got := s.String(); got != "jell🎉" {
		t.Errorf("String() = %q, want %q", got, "jell🎉")
	}

	if s.Set(5, 'x') {
		t.Error("Set past the end should report false")
	}
	if s.Set(-1, 'x') {
		t.Error("Set with negative index should report false")
	}
	if got := s.String(); got != "jell🎉" {
		t.Errorf("out-of-range Set changed content to %q", got)
	}
}

func TestAt(t *testing.T) {
	s := mustFromString(t, "日本語")
	if got := s.At(1); got != '本' {
		t.Errorf("At(1) = %q, want %q", got, '本')
	}
}

func TestAtPanics(t *testing.T) {
	tests := []struct {
		name string
		i    int
	}{
		{"negative", -1},
		{"at length", 3},
		{"past length", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("At(%d) on a 3-rune sequence should panic", tt.i)
				}
			}()
			s := mustFromString(t, "abc")
			_ = s.At(tt.i)
		})
	}
}

func TestPush(t *testing.T) {
	s := New()
	for _, r := range "héllo" {
		s.Push(r)
	}
	if got := s.String(); got != "héllo" {
		t.Errorf("String() = %q, want %q", got, "héllo")
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
}

func TestPushString(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		text    string
		want    string
	}{
		{"onto empty", "", "hello", "hello"},
		{"append", "hello", " world", "hello world"},
		{"empty text", "hello", "", "hello"},
		{"multibyte", "price: ", "¢99", "price: ¢99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustFromString(t, tt.initial)
			if err := s.PushString(tt.text); err != nil {
				t.Fatalf("PushString(%q) returned error: %v", tt.text, err)
			}
			if got := s.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPushStringRejectsInvalid(t *testing.T) {
	s := mustFromString(t, "keep")
	err := s.PushString("ok\x80")
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("err = %v, want ErrInvalidUTF8", err)
	}
	var decErr *DecodeError
	if !errors.As(err, &decErr) || decErr.Offset != 2 {
		t.Errorf("err = %v, want *DecodeError at offset 2", err)
	}
	if got := s.String(); got != "keep" {
		t.Errorf("failed PushString changed content to %q", got)
	}
}

func TestPop(t *testing.T) {
	s := mustFromString(t, "ab🎉")
	capBefore := s.Cap()

	want := []rune{'🎉', 'b', 'a'}
	for i, w := range want {
		got, ok := s.Pop()
		if !ok {
			t.Fatalf("Pop() #%d reported empty", i)
		}
		if got != w {
			t.Errorf("Pop() #%d = %q, want %q", i, got, w)
		}
	}

	if _, ok := s.Pop(); ok {
		t.Error("Pop() on an empty sequence should report false")
	}
	if s.Cap() != capBefore {
		t.Errorf("Cap() = %d after pops, want retained %d", s.Cap(), capBefore)
	}
}

func TestFromStringAccess(t *testing.T) {
	s := mustFromString(t, "hello, world!")
	if s.Len() != 13 {
		t.Errorf("Len() = %d, want 13", s.Len())
	}
	if r, ok := s.Get(0); !ok || r != 'h' {
		t.Errorf("Get(0) = %q, %v, want 'h', true", r, ok)
	}
	r, ok := s.Pop()
	if !ok || r != '!' {
		t.Errorf("Pop() = %q, %v, want '!', true", r, ok)
	}
	if s.Len() != 12 {
		t.Errorf("Len() = %d after pop, want 12", s.Len())
	}
}

func TestBuildHelloWorld(t *testing.T) {
	s := mustFromString(t, "Hello, ")
	s.Push('w')
	if err := s.PushString("orld!"); err != nil {
		t.Fatalf("PushString returned error: %v", err)
	}
	if got := s.String(); got != "Hello, world!" {
		t.Errorf("String() = %q, want %q", got, "Hello, world!")
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		i       int
		r       rune
		want    string
	}{
		{"at start", "ello", 0, 'h', "hello"},
		{"in middle", "helo", 2, 'l', "hello"},
		{"at end", "hell", 4, 'o', "hello"},
		{"into empty", "", 0, 'x', "x"},
		{"multibyte", "ab", 1, '日', "a日b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustFromString(t, tt.initial)
			s.Insert(tt.i, tt.r)
			if got := s.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInsertPanics(t *testing.T) {
	tests := []struct {
		name string
		i    int
	}{
		{"negative", -1},
		{"past length", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Insert(%d) on a 3-rune sequence should panic", tt.i)
				}
			}()
			s := mustFromString(t, "abc")
			s.Insert(tt.i, 'x')
		})
	}
}

func TestInsertString(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		i       int
		text    string
		want    string
	}{
		{"at start", "world", 0, "hello ", "hello world"},
		{"in middle", "heo", 2, "ll", "hello"},
		{"at end", "hello", 5, " world", "hello world"},
		{"into empty", "", 0, "hello", "hello"},
		{"empty text", "hello", 3, "", "hello"},
		{"multibyte shift", "ab", 1, "日本", "a日本b"},
		{"longer than tail", "ab", 1, "0123456789", "a0123456789b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustFromString(t, tt.initial)
			if err := s.InsertString(tt.i, tt.text); err != nil {
				t.Fatalf("InsertString returned error: %v", err)
			}
			if got := s.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInsertStringRejectsInvalid(t *testing.T) {
	s := mustFromString(t, "hello")
	err := s.InsertString(2, "\xc3")
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("err = %v, want ErrInvalidUTF8", err)
	}
	if got := s.String(); got != "hello" {
		t.Errorf("failed InsertString changed content to %q", got)
	}
}

func TestInsertStringPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("InsertString past the end should panic")
		}
	}()
	s := mustFromString(t, "abc")
	_ = s.InsertString(4, "x")
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		i       int
		wantR   rune
		want    string
	}{
		{"first", "hello", 0, 'h', "ello"},
		{"middle", "hello", 2, 'l', "helo"},
		{"last", "hello", 4, 'o', "hell"},
		{"multibyte", "a日b", 1, '日', "ab"},
		{"only element", "x", 0, 'x', ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustFromString(t, tt.initial)
			if got := s.Remove(tt.i); got != tt.wantR {
				t.Errorf("Remove(%d) = %q, want %q", tt.i, got, tt.wantR)
			}
			if got := s.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemovePanics(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		i       int
	}{
		{"negative", "abc", -1},
		{"at length", "abc", 3},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Remove(%d) from %q should panic", tt.i, tt.initial)
				}
			}()
			s := mustFromString(t, tt.initial)
			_ = s.Remove(tt.i)
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		n       int
		want    string
	}{
		{"shorter", "hello", 2, "he"},
		{"to zero", "hello", 0, ""},
		{"equal length", "hello", 5, "hello"},
		{"beyond length", "hello", 100, "hello"},
		{"negative", "hello", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustFromString(t, tt.initial)
			capBefore := s.Cap()
			s.Truncate(tt.n)
			if got := s.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if s.Cap() != capBefore {
				t.Errorf("Cap() = %d after truncate, want retained %d", s.Cap(), capBefore)
			}
		})
	}
}

func TestClear(t *testing.T) {
	s := mustFromString(t, "hello")
	capBefore := s.Cap()
	s.Clear()
	if !s.IsEmpty() {
		t.Error("Clear should empty the sequence")
	}
	if s.Cap() != capBefore {
		t.Errorf("Cap() = %d after clear, want retained %d", s.Cap(), capBefore)
	}
}

func TestRetain(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		keep    func(rune) bool
		want    string
	}{
		{"keep all", "hello", func(rune) bool { return true }, "hello"},
		{"drop all", "hello", func(rune) bool { return false }, ""},
		{"drop vowels", "sequence", func(r rune) bool { return !strings.ContainsRune("aeiou", r) }, "sqnc"},
		{"keep letters", "a1b2c3", unicode.IsLetter, "abc"},
		{"empty", "", func(rune) bool { return true }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustFromString(t, tt.initial)
			capBefore := s.Cap()
			s.Retain(tt.keep)
			if got := s.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if s.Cap() != capBefore {
				t.Errorf("Cap() = %d after retain, want retained %d", s.Cap(), capBefore)
			}
		})
	}
}

// Property-based tests

func TestPushPopIdentity(t *testing.T) {
	f := func(s string, c rune) bool {
		if !utf8.ValidString(s) {
			return true
		}
		seq, err := FromString(s)
		if err != nil {
			return false
		}
		before := seq.Len()
		seq.Push(c)
		got, ok := seq.Pop()
		return ok && got == c && seq.Len() == before
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestInsertRemoveIdentity(t *testing.T) {
	f := func(s string, i int, c rune) bool {
		if !utf8.ValidString(s) {
			return true
		}
		seq, err := FromString(s)
		if err != nil {
			return false
		}
		i = clampPosition(i, seq.Len())

		orig := seq.Clone()
		seq.Insert(i, c)
		if got := seq.Remove(i); got != c {
			return false
		}
		return seq.Equal(orig)
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestRetainExtremes(t *testing.T) {
	f := func(s string) bool {
		if !utf8.ValidString(s) {
			return true
		}
		all, err := FromString(s)
		if err != nil {
			return false
		}
		none := all.Clone()

		all.Retain(func(rune) bool { return true })
		none.Retain(func(rune) bool { return false })
		return all.String() == s && none.IsEmpty()
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

// clampPosition maps an arbitrary int into the valid insertion range
// [0, length].
func clampPosition(i, length int) int {
	if length == 0 {
		return 0
	}
	i = i % (length + 1)
	if i < 0 {
		i = -i
	}
	return i
}

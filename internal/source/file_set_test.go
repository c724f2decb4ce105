package source

import "testing"

func TestFileSetAddAndLookup(t *testing.T) {
	fs := NewFileSet()

	a := fs.Add("a.vt", []byte("fn main() {}\n"))
	b := fs.Add("b.vt", []byte(""))
	if a == b {
		t.Fatalf("distinct files share id %d", a)
	}
	if !a.IsValid() || !b.IsValid() {
		t.Fatal("Add returned a sentinel id")
	}

	got, ok := fs.Lookup("a.vt")
	if !ok || got != a {
		t.Fatalf("Lookup(a.vt) = (%d, %v), want (%d, true)", got, ok, a)
	}
	if _, ok := fs.Lookup("missing.vt"); ok {
		t.Fatal("Lookup found a file that was never added")
	}
	if fs.Get(NoFileID) != nil {
		t.Fatal("Get(NoFileID) returned a file")
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
}

func TestFilePosition(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("pos.vt", []byte("one\ntwo\n\nfour"))
	file := fs.Get(id)

	tests := []struct {
		offset uint32
		line   uint32
		col    uint32
	}{
		{0, 1, 1},  // 'o' of "one"
		{3, 1, 4},  // the first newline
		{4, 2, 1},  // 't' of "two"
		{8, 3, 1},  // the blank line
		{9, 4, 1},  // 'f' of "four"
		{12, 4, 4}, // 'r'
	}
	for _, tt := range tests {
		pos := file.Position(tt.offset)
		if pos.Line != tt.line || pos.Col != tt.col {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, pos.Line, pos.Col, tt.line, tt.col)
		}
	}
}

func TestFileLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("lines.vt", []byte("alpha\nbeta\ngamma"))
	file := fs.Get(id)

	if got := string(file.Line(2)); got != "beta" {
		t.Errorf("Line(2) = %q", got)
	}
	if got := string(file.Line(3)); got != "gamma" {
		t.Errorf("Line(3) = %q", got)
	}
	if got := file.Line(99); got != nil {
		t.Errorf("Line(99) = %q, want nil", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 6, End: 12}
	got := a.Cover(b)
	if got.Start != 4 || got.End != 12 {
		t.Fatalf("Cover = %v", got)
	}
}

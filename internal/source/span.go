package source

import "fmt"

// FileID uniquely identifies a source file within a FileSet.
type FileID uint32

// NoFileID marks the absence of a file.
const NoFileID FileID = 0

// IsValid reports whether the id refers to a real file.
func (id FileID) IsValid() bool { return id != NoFileID }

// Span is a half-open byte range inside one file.
type Span struct {
	File  FileID
	Start uint32 // inclusive
	End   uint32 // exclusive
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover widens the span to include other. Spans from different files are
// left untouched.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// LineCol is a human-readable 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}

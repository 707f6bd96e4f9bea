package source

import "fmt"

// Span is an inclusive/exclusive byte range within a single file.
// SourceLocation in the spec's data model is the pair (File, Start).
type Span struct {
	File  FileID
	Start uint32 // inclusive
	End   uint32 // exclusive
}

// NoSpan is the reserved invalid span; its File is NoFileID.
var NoSpan = Span{File: NoFileID}

// Valid reports whether the span refers to a real file.
func (s Span) Valid() bool { return s.File != NoFileID }

// Empty reports whether the span has zero length.
func (s Span) Empty() bool { return s.Start == s.End }

// Len returns the span's length in bytes.
func (s Span) Len() uint32 { return s.End - s.Start }

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// If the spans belong to different files, s is returned unchanged.
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

// Point returns a zero-length span at s's start, used to anchor a
// synthesized "insert here" fix-it.
func (s Span) Point() Span {
	return Span{File: s.File, Start: s.Start, End: s.Start}
}

package source

import "fmt"

// Location is a position in a Slice file. Both fields are 1-based, matching
// the locations reported by the Slice compiler.
type Location struct {
	Line int
	Col  int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// Before reports whether l comes before other in (line, column) order.
func (l Location) Before(other Location) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Col < other.Col
}

// Span is a source range. Both endpoints are inclusive.
type Span struct {
	Start Location
	End   Location
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Contains reports whether loc falls within the span. The boundary
// locations themselves count as inside.
func (s Span) Contains(loc Location) bool {
	return !loc.Before(s.Start) && !s.End.Before(loc)
}

// FileSpan is a span tied to the file it appears in.
type FileSpan struct {
	File string
	Span
}

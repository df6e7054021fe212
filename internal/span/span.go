// Package span defines the byte-indexed span model used by every other
// component: tokens, CST nodes, AST views, and diagnostics all anchor to
// a Span over the original source text.
package span

import "fmt"

// Span is a half-open byte range [Start, End) over a document's source
// text.
type Span struct {
	Start int
	End   int
}

// New builds a Span, panicking if the range is not well-formed. Callers
// construct spans from lexer/parser-internal offsets that are always
// valid by construction; this guards against a programmer error rather
// than untrusted input.
func New(start, end int) Span {
	if end < start {
		panic(fmt.Sprintf("span: end %d before start %d", end, start))
	}
	return Span{Start: start, End: end}
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Text slices src by the span. Callers must ensure src is the same
// document the span was computed against.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

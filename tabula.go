package tabula

import "fmt"

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input bytes. For every
// terminal and non-terminal, a syntax tree will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span (0…0).
func (s Span) IsNull() bool {
	return s == Span{}
}

// IsEmpty is true for spans of length 0, wherever they are located.
func (s Span) IsEmpty() bool {
	return s[1] <= s[0]
}

// Extend returns the smallest span covering s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

// Contains is true if position pos is inside the half-open span.
func (s Span) Contains(pos uint64) bool {
	return pos >= s[0] && pos < s[1]
}

// Overlaps is true if the half-open spans s and other share at least one position.
func (s Span) Overlaps(other Span) bool {
	return s[0] < other[1] && other[0] < s[1]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

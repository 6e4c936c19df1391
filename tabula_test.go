package tabula

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula")
	defer teardown()
	//
	s := Span{3, 7}
	if s.From() != 3 || s.To() != 7 || s.Len() != 4 {
		t.Errorf("unexpected span accessors for %s", s)
	}
	if s.String() != "(3…7)" {
		t.Errorf("unexpected span format %s", s)
	}
	if s.IsEmpty() || !(Span{5, 5}).IsEmpty() || !(Span{}).IsNull() {
		t.Errorf("empty or null spans not detected")
	}
	if !s.Contains(3) || s.Contains(7) {
		t.Errorf("spans should be half-open")
	}
	if s.Overlaps(Span{7, 9}) || !s.Overlaps(Span{6, 9}) {
		t.Errorf("overlapping of half-open spans is wrong")
	}
	if x := s.Extend(Span{1, 4}); x != (Span{1, 7}) {
		t.Errorf("expected extended span (1…7), have %s", x)
	}
}

func TestErrorMatching(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula")
	defer teardown()
	//
	err := fmt.Errorf("parsing: %w", NewError(LexicalError, UnterminatedLiteral, Span{4, 8}, "unterminated string"))
	if !errors.Is(err, ErrLexical) {
		t.Errorf("expected wrapped error to match class sentinel")
	}
	if errors.Is(err, ErrSyntax) || errors.Is(err, ErrTable) {
		t.Errorf("error should not match other classes")
	}
	if !errors.Is(err, &Error{Class: LexicalError, Code: UnterminatedLiteral}) {
		t.Errorf("expected error to match its code")
	}
	if errors.Is(err, &Error{Class: LexicalError, Code: UnrecognizedInput}) {
		t.Errorf("error should not match a different code")
	}
	var e *Error
	if !errors.As(err, &e) || e.Span != (Span{4, 8}) {
		t.Errorf("expected to extract the span from the error")
	}
	if msg := e.Error(); msg != "lexical error: unterminated string at (4…8)" {
		t.Errorf("unexpected message %q", msg)
	}
	if msg := (&Error{Class: TableError, Code: BadAsset}).Error(); msg != "table corruption: bad table asset at (0…0)" {
		t.Errorf("unexpected message %q", msg)
	}
	if s := ErrorCode(99).String(); s != "code 99" {
		t.Errorf("unexpected name for unknown code: %s", s)
	}
}

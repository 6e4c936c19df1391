package scanner

import (
	"unicode/utf8"

	"github.com/npillmayer/tabula"
	"github.com/npillmayer/tabula/lr"
)

// Lexer is the default tokenizer, interpreting the lexer automaton of a
// language. It implements maximal munch: the lexer follows transitions as
// long as possible, remembering the last accepting position, and backs up to
// it when the automaton halts. Keywords are recognized by automaton states
// which accept and at the same time continue on identifier characters, therefore
// "printer" is an identifier even where keyword "print" is valid.
type Lexer struct {
	states []lr.LexState
	input  []byte
	pos    uint64
	Error  func(error) // error handler
}

var _ Tokenizer = (*Lexer)(nil)

// NewLexer creates a lexer for a language, reading from input.
func NewLexer(lang *lr.Language, input []byte, opts ...Option) *Lexer {
	l := &Lexer{
		states: lang.LexStates,
		input:  input,
		Error:  logError,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetErrorHandler sets an error handler for the scanner.
func (l *Lexer) SetErrorHandler(h func(error)) {
	if h == nil {
		l.Error = logError
		return
	}
	l.Error = h
}

// SkipTo is part of the Tokenizer interface.
func (l *Lexer) SkipTo(pos uint64) {
	if pos > uint64(len(l.input)) {
		pos = uint64(len(l.input))
	}
	l.pos = pos
}

// Pos returns the current input position.
func (l *Lexer) Pos() uint64 {
	return l.pos
}

// NextToken is part of the Tokenizer interface.
func (l *Lexer) NextToken(lexState uint16) Token {
	end := uint64(len(l.input))
	if int(lexState) >= len(l.states) {
		lexState = 0
	}
	state := lexState
	start, cur := l.pos, l.pos
	examined := l.pos
	accepted, acceptSym := start, lr.EndOfInput
	hasAccept := false
	atEOF := false
	var firstSize uint64
	for {
		if cur >= end {
			examined = end + 1 // looking at end of input counts
			atEOF = true
			break
		}
		r, size := utf8.DecodeRune(l.input[cur:])
		examined = cur + uint64(size)
		t, ok := l.states[state].Next(r)
		if !ok {
			break
		}
		if t.Skip {
			cur += uint64(size)
			start = cur
			state = t.Next
			hasAccept = false
			continue
		}
		if cur == start {
			firstSize = uint64(size)
		}
		cur += uint64(size)
		state = t.Next
		if ls := &l.states[state]; ls.HasAccept && cur > start {
			accepted, acceptSym, hasAccept = cur, ls.Accept, true
		}
	}
	tok := Token{LexState: lexState, Examined: examined}
	switch {
	case hasAccept:
		tok.Symbol = acceptSym
		tok.Span = tabula.Span{start, accepted}
		l.pos = accepted
	case start >= end:
		tok.Symbol = lr.EndOfInput
		tok.Span = tabula.Span{end, end}
		l.pos = end
	case atEOF && cur > start:
		// automaton still running at end of input, e.g. an open string literal
		tok.Symbol, tok.Err = lr.ErrorSymbol, tabula.UnterminatedLiteral
		tok.Span = tabula.Span{start, end}
		l.pos = end
		l.Error(tabula.NewError(tabula.LexicalError, tok.Err, tok.Span, "unterminated literal"))
	default:
		if firstSize == 0 {
			_, size := utf8.DecodeRune(l.input[start:])
			firstSize = uint64(size)
		}
		tok.Symbol, tok.Err = lr.ErrorSymbol, tabula.UnrecognizedInput
		tok.Span = tabula.Span{start, start + firstSize}
		l.pos = start + firstSize
		l.Error(tabula.NewError(tabula.LexicalError, tok.Err, tok.Span,
			"unrecognized input %q", l.input[tok.Span.From():tok.Span.To()]))
	}
	tracer().Debugf("lexed %s from lex state %d", tok, lexState)
	return tok
}

/*
Package scanner implements the lexer engine of tabula.

The default lexer interprets the lexer automaton of a compiled language.
Lexing is context-aware: the parser passes the lex state of its current
parser state, and only the tokens valid in that state are recognized. An
alternative token source, backed by lexmachine, lives in sub-package
`lexmach`.

Lexing never halts on bad input. Input which cannot be lexed results in a
token of type lr.ErrorSymbol, and the error is reported to the tokenizer's
error handler.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tabula"
	"github.com/npillmayer/tabula/lr"
)

// tracer traces with key 'tabula.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("tabula.scanner")
}

// Tokenizer is a scanner interface.
//
// NextToken scans the next token, using lexState as the entry state of the
// lexer automaton. Tokenizers not supporting lex states may ignore it.
// SkipTo moves the input position, e.g. behind a subtree re-used from an
// earlier parse.
type Tokenizer interface {
	NextToken(lexState uint16) Token
	SkipTo(pos uint64)
	SetErrorHandler(func(error))
}

// Token is a lexed token.
type Token struct {
	Symbol   lr.Symbol        // terminal symbol, or lr.ErrorSymbol
	Span     tabula.Span      // bytes covered by the token, trivia excluded
	Examined uint64           // end of all input bytes the lexer looked at
	LexState uint16           // lexer entry state the token was scanned from
	Err      tabula.ErrorCode // reason for an error token
}

// IsError is true for tokens which could not be lexed.
func (t Token) IsError() bool {
	return t.Symbol == lr.ErrorSymbol
}

func (t Token) String() string {
	if t.IsError() {
		return fmt.Sprintf("<error %s %s>", t.Err, t.Span)
	}
	return fmt.Sprintf("<%d %s>", t.Symbol, t.Span)
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Scanner options -------------------------------------------------------

// Option configures a lexer.
type Option func(l *Lexer)

// ErrorHandler sets the error handler of a lexer.
func ErrorHandler(h func(error)) Option {
	return func(l *Lexer) {
		l.SetErrorHandler(h)
	}
}

// StartAt sets the initial input position of a lexer.
func StartAt(pos uint64) Option {
	return func(l *Lexer) {
		l.SkipTo(pos)
	}
}

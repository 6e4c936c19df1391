package lexmach

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tabula"
	"github.com/npillmayer/tabula/lr"
	"github.com/npillmayer/tabula/lr/scanner"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'tabula.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("tabula.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	lang  *lr.Language
}

// NewLMAdapter creates a new lexmachine adapter for a language. It receives
// a list of literals ('[', ';', …) and a list of keywords ("if", "for", …),
// which have to be names of terminals of lang. Literals and keywords take
// precedence over the patterns init adds for matches of equal length.
//
// NewLMAdapter will return an error if a name is unknown or compiling the
// DFA failed.
func NewLMAdapter(lang *lr.Language, init func(*lexmachine.Lexer), literals []string, keywords []string) (*LMAdapter, error) {
	adapter := &LMAdapter{lang: lang}
	adapter.Lexer = lexmachine.NewLexer()
	for _, lit := range literals {
		sym, err := adapter.terminal(lit)
		if err != nil {
			return nil, err
		}
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(sym))
	}
	for _, name := range keywords {
		sym, err := adapter.terminal(name)
		if err != nil {
			return nil, err
		}
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(sym))
	}
	init(adapter.Lexer)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

func (lm *LMAdapter) terminal(name string) (lr.Symbol, error) {
	sym, ok := lm.lang.SymbolByName(name)
	if !ok || !lm.lang.IsTerminal(sym) {
		return 0, fmt.Errorf("language %s has no terminal %q", lm.lang.Name, name)
	}
	return sym, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input []byte) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner(input)
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, input: input, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	input   []byte
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// SkipTo is part of the Tokenizer interface.
func (lms *LMScanner) SkipTo(pos uint64) {
	if pos > uint64(len(lms.input)) {
		pos = uint64(len(lms.input))
	}
	lms.scanner.TC = int(pos)
}

// NextToken is part of the Tokenizer interface.
//
// Lexmachine DFAs are not context-aware: the lexState-argument is recorded
// with the token, but does not influence lexing. The lookahead of the DFA is
// not known either, therefore tokens are assumed to have examined one byte
// beyond their end.
func (lms *LMScanner) NextToken(lexState uint16) scanner.Token {
	end := uint64(len(lms.input))
	tok, err, eof := lms.scanner.Next()
	if err != nil {
		return lms.errorToken(err, lexState)
	}
	if eof {
		return scanner.Token{
			Symbol:   lr.EndOfInput,
			Span:     tabula.Span{end, end},
			Examined: end + 1,
			LexState: lexState,
		}
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	from := uint64(token.TC)
	to := from + uint64(len(token.Lexeme))
	return scanner.Token{
		Symbol:   lr.Symbol(token.Type),
		Span:     tabula.Span{from, to},
		Examined: to + 1,
		LexState: lexState,
	}
}

// errorToken turns a lexmachine error into an error token and moves the
// scanner behind the offending input.
func (lms *LMScanner) errorToken(err error, lexState uint16) scanner.Token {
	end := uint64(len(lms.input))
	ui, is := err.(*machines.UnconsumedInput)
	if !is {
		lms.Error(err)
		lms.scanner.TC = int(end)
		return scanner.Token{
			Symbol:   lr.ErrorSymbol,
			Span:     tabula.Span{end, end},
			Examined: end + 1,
			LexState: lexState,
			Err:      tabula.UnrecognizedInput,
		}
	}
	from, to := uint64(ui.StartTC), uint64(ui.FailTC)
	code := tabula.UnrecognizedInput
	if to >= end {
		code, to = tabula.UnterminatedLiteral, end
	} else if to <= from {
		to = from + 1
	}
	lms.scanner.TC = int(to)
	span := tabula.Span{from, to}
	lms.Error(tabula.NewError(tabula.LexicalError, code, span, "%s %q", code, lms.input[from:to]))
	return scanner.Token{
		Symbol:   lr.ErrorSymbol,
		Span:     span,
		Examined: to + 1,
		LexState: lexState,
		Err:      code,
	}
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token
// for terminal sym.
func MakeToken(sym lr.Symbol) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(sym), string(m.Bytes), m), nil
	}
}

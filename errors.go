package tabula

import "fmt"

// ErrorClass categorizes errors reported by the engine.
type ErrorClass int

// Error classes. Lexical and syntax errors are never fatal for a parse; they
// are attached to the resulting tree. Table errors are fatal at load time.
const (
	LexicalError ErrorClass = 101
	SyntaxError  ErrorClass = 201
	TableError   ErrorClass = 301
)

func (c ErrorClass) String() string {
	switch c {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case TableError:
		return "table corruption"
	}
	return fmt.Sprintf("error class %d", int(c))
}

// ErrorCode details an error within its class.
type ErrorCode int

// Error codes.
const (
	NoError ErrorCode = iota
	UnterminatedLiteral
	UnrecognizedInput
	UnexpectedToken
	IncompleteInput
	ParserStuck
	DanglingState
	UnknownSymbol
	MalformedTable
	BadAsset
)

var codeMessages = map[ErrorCode]string{
	NoError:             "no error",
	UnterminatedLiteral: "unterminated literal",
	UnrecognizedInput:   "unrecognized input",
	UnexpectedToken:     "unexpected token",
	IncompleteInput:     "incomplete input",
	ParserStuck:         "parser stuck",
	DanglingState:       "dangling state reference",
	UnknownSymbol:       "unknown symbol",
	MalformedTable:      "malformed table",
	BadAsset:            "bad table asset",
}

func (c ErrorCode) String() string {
	if m, ok := codeMessages[c]; ok {
		return m
	}
	return fmt.Sprintf("code %d", int(c))
}

// Error is the error type of the engine.
type Error struct {
	Class   ErrorClass
	Code    ErrorCode
	Message string
	Span    Span
}

// Sentinels to match errors by class, using errors.Is.
var (
	ErrLexical = &Error{Class: LexicalError}
	ErrSyntax  = &Error{Class: SyntaxError}
	ErrTable   = &Error{Class: TableError}
)

// NewError creates an error of class c with a formatted message.
func NewError(c ErrorClass, code ErrorCode, span Span, format string, args ...interface{}) *Error {
	return &Error{
		Class:   c,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s at %s", e.Class, e.Code, e.Span)
	}
	return fmt.Sprintf("%s: %s at %s", e.Class, e.Message, e.Span)
}

// Is matches errors of the same class. A target with a non-zero code
// matches only errors carrying that code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Class != e.Class {
		return false
	}
	return t.Code == NoError || t.Code == e.Code
}

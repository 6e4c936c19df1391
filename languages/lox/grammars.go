package lox

import (
	"strings"

	"github.com/npillmayer/tabula/lr/lrgen"
)

// The rules of the snapshots, in Go-style EBNF. Names of tokens are declared
// in tokens().

const expressionsEBNF = `
source_file          = { declaration } .
declaration          = variable_declaration | statement .
statement            = print_statement | expression_statement | assignment_statement .
expression_statement = expression ";" .
expression           = binary_expression | unary_expression | primary_expression | grouped_expression .
grouped_expression   = "(" expression ")" .
binary_expression    = expression binary_operator expression .
print_statement      = "print" expression ";" .
assignment_statement = variable "=" expression ";" .
unary_expression     = unary_operator expression .
primary_expression   = number_literal | string_literal | variable .
variable_declaration = "var" variable "=" expression ";" .
unary_operator       = "-" | "!" .
binary_operator      = "+" | "-" | "*" | "/" | "==" | "!=" | "<" | "<=" | ">" | ">=" .
`

const conditionalsEBNF = `
source_file          = { _declaration } .
_declaration         = variable_declaration | _statement .
_statement           = print_statement | expression_statement | assignment_statement | block | if_statement .
block                = "{" { _declaration } "}" .
if_statement         = "if" "(" _expression ")" block [ else_statement ] .
else_statement       = "else" block .
expression_statement = _expression ";" .
print_statement      = "print" _expression ";" .
assignment_statement = variable "=" _expression ";" .
variable_declaration = "var" variable "=" _expression ";" .
_expression          = binary_expression | unary_expression | grouped_expression | _primary .
grouped_expression   = "(" _expression ")" .
unary_expression     = ( "-" | "!" ) _expression .
binary_expression    = _expression ( "==" | "!=" ) _expression
                     | _expression ( "<" | "<=" | ">" | ">=" ) _expression
                     | _expression ( "+" | "-" ) _expression
                     | _expression ( "*" | "/" ) _expression .
_primary             = number_literal | string_literal | variable .
`

const loopsEBNF = `
source_file          = { _declaration } .
_declaration         = variable_declaration | _statement .
_statement           = print_statement | expression_statement | assignment_statement | block
                     | if_statement | while_statement .
block                = "{" { _declaration } "}" .
if_statement         = "if" "(" _expression ")" block [ else_statement ] .
else_statement       = "else" block .
while_statement      = "while" "(" _expression ")" block .
expression_statement = _expression ";" .
print_statement      = "print" _expression ";" .
assignment_statement = variable "=" _expression ";" .
variable_declaration = "var" variable "=" _expression ";" .
_expression          = binary_expression | unary_expression | grouped_expression | call_expression | _primary .
grouped_expression   = "(" _expression ")" .
call_expression      = _expression "(" [ arguments ] ")" .
arguments            = _expression { "," _expression } .
unary_expression     = ( "-" | "!" ) _expression .
binary_expression    = _expression "||" _expression
                     | _expression "&&" _expression
                     | _expression ( "==" | "!=" ) _expression
                     | _expression ( "<" | "<=" | ">" | ">=" ) _expression
                     | _expression ( "+" | "-" ) _expression
                     | _expression ( "*" | "/" ) _expression .
_primary             = number_literal | string_literal | variable | boolean_literal | nil_literal .
boolean_literal      = "true" | "false" .
nil_literal          = "nil" .
`

// tokens declares the pattern tokens common to all snapshots.
func tokens(b *lrgen.GrammarBuilder) {
	digits := lrgen.Plus(lrgen.Class(lrgen.Range('0', '9')))
	letter := lrgen.Class(lrgen.Range('a', 'z'), lrgen.Range('A', 'Z'), lrgen.Char('_'))
	word := lrgen.Class(lrgen.Range('a', 'z'), lrgen.Range('A', 'Z'), lrgen.Char('_'), lrgen.Range('0', '9'))
	b.Token("number_literal", lrgen.Seq(digits, lrgen.Opt(lrgen.Seq(lrgen.Lit("."), digits))))
	b.Token("string_literal", lrgen.Seq(lrgen.Lit(`"`), lrgen.Star(lrgen.Not(lrgen.Char('"'))), lrgen.Lit(`"`)))
	b.Token("variable", lrgen.Seq(letter, lrgen.Star(word)))
	b.Whitespace(lrgen.Range('\t', '\r'), lrgen.Char(' '))
}

// grammar builds the grammar of a snapshot.
func grammar(s Snapshot) (*lrgen.Grammar, error) {
	b := lrgen.NewGrammarBuilder(s.String())
	tokens(b)
	var rules string
	switch s {
	case Expressions:
		rules = expressionsEBNF
		b.Left(1, "+", "-", "*", "/", "==", "!=", "<", "<=", ">", ">=")
		b.PrecOf("binary_expression", 1)
		b.PrecOf("unary_expression", 2)
	case Conditionals:
		rules = conditionalsEBNF
		operators(b)
	default:
		rules = loopsEBNF
		b.Left(1, "||")
		b.Left(2, "&&")
		operators(b)
		b.Left(8, "(")
		b.PrecOf("call_expression", 8)
	}
	ebnf, err := lrgen.ReadEBNF(s.String(), strings.NewReader(rules))
	if err != nil {
		return nil, err
	}
	if err = lrgen.FromEBNF(b, ebnf, "source_file"); err != nil {
		return nil, err
	}
	return b.Grammar()
}

func operators(b *lrgen.GrammarBuilder) {
	b.Left(3, "==", "!=")
	b.Left(4, "<", "<=", ">", ">=")
	b.Left(5, "+", "-")
	b.Left(6, "*", "/")
	b.PrecOf("unary_expression", 7)
}

/*
Package swlox provides a hand-packed language for a tiny subset of Lox:
variable declarations, print statements, assignments and expressions.

The tables are laid out the way an external table generator writes them
and are not produced by package lrgen. They serve as a fixed point of
reference for the parser: a grammar compiled by lrgen for the same syntax
(see package lox, snapshot Expressions) has to yield the same visible
trees.

    lang, err := swlox.Language()
    p, err := parser.NewParser(lang)
    tree := p.Parse([]byte(`var x = 1 + 2; print x;`))

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package swlox

import (
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tabula/lr"
)

// tracer traces with key 'tabula.lr'.
func tracer() tracing.Trace {
	return tracing.Select("tabula.lr")
}

var (
	once sync.Once
	lang *lr.Language
	err  error
)

// Language returns the swlox language. The tables are validated on first
// call; the result is shared and must not be modified.
func Language() (*lr.Language, error) {
	once.Do(func() {
		lang = assemble()
		if err = lang.Validate(); err != nil {
			tracer().Errorf("swlox tables are corrupt: %v", err)
			lang = nil
		}
	})
	return lang, err
}

func assemble() *lr.Language {
	l := &lr.Language{
		Name:               "swlox",
		Version:            lr.FormatVersion,
		SymbolCount:        symbolCount,
		TokenCount:         tokenCount,
		StateCount:         stateCount,
		LargeStateCount:    largeStateCount,
		Symbols:            symbols(),
		ParseTable:         make([]uint16, 0, largeStateCount*symbolCount),
		SmallParseTable:    smallParseTable,
		SmallParseTableMap: smallParseTableMap,
		ParseActions:       parseActions,
		LexModes:           make([]lr.LexMode, stateCount),
		LexStates:          lexStates,
		InitialState:       1,
	}
	for _, row := range parseTable {
		l.ParseTable = append(l.ParseTable, row[:]...)
	}
	for i, m := range lexModes {
		l.LexModes[i].LexState = m
	}
	return l
}

var symbolNames = [symbolCount]string{
	"end", ";", "(", ")", "print", "=", "var", "-", "!", "+", "*", "/",
	"==", "!=", "<", "<=", ">", ">=",
	"number_literal", "string_literal", "variable",
	"source_file", "declaration", "statement", "expression_statement",
	"expression", "grouped_expression", "binary_expression", "print_statement",
	"assignment_statement", "unary_expression", "primary_expression",
	"variable_declaration", "unary_operator", "binary_operator",
	"source_file_repeat1",
}

func symbols() []lr.SymbolMetadata {
	md := make([]lr.SymbolMetadata, symbolCount)
	for i, name := range symbolNames {
		md[i] = lr.SymbolMetadata{
			Name:     name,
			Terminal: i < tokenCount,
			Visible:  true,
			Named:    i >= symNumberLiteral,
		}
	}
	md[symEnd].Visible, md[symEnd].Named = false, true
	md[auxSourceFileRepeat1].Visible, md[auxSourceFileRepeat1].Named = false, false
	return md
}

// --- Parse actions ---------------------------------------------------------

func entry(reusable bool, actions ...lr.Action) lr.ActionEntry {
	return lr.ActionEntry{Reusable: reusable, Actions: actions}
}

func shift(state lr.StateID) lr.Action {
	return lr.Action{Type: lr.ShiftAction, State: state}
}

func shiftRepeat(state lr.StateID) lr.Action {
	return lr.Action{Type: lr.ShiftRepeatAction, State: state}
}

func reduce(sym lr.Symbol, n uint8) lr.Action {
	return lr.Action{
		Type:       lr.ReduceAction,
		Symbol:     sym,
		ChildCount: n,
		Repetition: sym == auxSourceFileRepeat1,
	}
}

func accept() lr.Action {
	return lr.Action{Type: lr.AcceptAction}
}

func recovery() lr.Action {
	return lr.Action{Type: lr.RecoverAction}
}

// --- Lexer -----------------------------------------------------------------

func on(c rune, next uint16) []lr.LexTransition {
	return []lr.LexTransition{{Lo: c, Hi: c, Next: next}}
}

func between(lo, hi rune, next uint16) []lr.LexTransition {
	return []lr.LexTransition{{Lo: lo, Hi: hi, Next: next}}
}

func skip(state uint16) []lr.LexTransition {
	return []lr.LexTransition{
		{Lo: '\t', Hi: '\r', Next: state, Skip: true},
		{Lo: ' ', Hi: ' ', Next: state, Skip: true},
	}
}

func digits(next uint16) []lr.LexTransition {
	return between('0', '9', next)
}

func letters(next uint16) []lr.LexTransition {
	return []lr.LexTransition{
		{Lo: 'A', Hi: 'Z', Next: next},
		{Lo: '_', Hi: '_', Next: next},
		{Lo: 'a', Hi: 'z', Next: next},
	}
}

func word(next uint16) []lr.LexTransition {
	return append(digits(next), letters(next)...)
}

func moves(parts ...[]lr.LexTransition) lr.LexState {
	var ls lr.LexState
	for _, p := range parts {
		ls.Transitions = append(ls.Transitions, p...)
	}
	return ls
}

func accepts(sym lr.Symbol, parts ...[]lr.LexTransition) lr.LexState {
	ls := moves(parts...)
	ls.Accept, ls.HasAccept = sym, true
	return ls
}

// Lex states 0, 1, 2 and 6 are the entry states of the lex modes. Ranges
// overlap in keyword prefix states; the first matching range wins.
var lexStates = []lr.LexState{
	0: moves(on('!', 16), on('"', 3), on('(', 9), on(')', 10), on('*', 18), on('+', 17), on('-', 14),
		on('/', 19), on(';', 8), on('<', 22), on('=', 12), on('>', 24), on('p', 32), on('v', 29),
		skip(0), digits(26), letters(35)),
	1: moves(on('!', 15), on('"', 3), on('(', 9), on('-', 14), skip(1), digits(26), letters(35)),
	2: moves(on('!', 4), on(')', 10), on('*', 18), on('+', 17), on('-', 14), on('/', 19), on(';', 8),
		on('<', 22), on('=', 12), on('>', 24), skip(2), letters(35)),
	3:  moves(on('"', 28), between(1, utf8.MaxRune, 3)),
	4:  moves(on('=', 21)),
	5:  moves(digits(27)),
	6:  moves(on('!', 15), on('"', 3), on('(', 9), on('-', 14), on('p', 32), on('v', 29), skip(6), digits(26), letters(35)),
	7:  accepts(symEnd),
	8:  accepts(symSemi),
	9:  accepts(symLParen),
	10: accepts(symRParen),
	11: accepts(symPrint, word(35)),
	12: accepts(symEq, on('=', 20)),
	13: accepts(symVar, word(35)),
	14: accepts(symDash),
	15: accepts(symBang),
	16: accepts(symBang, on('=', 21)),
	17: accepts(symPlus),
	18: accepts(symStar),
	19: accepts(symSlash),
	20: accepts(symEqEq),
	21: accepts(symBangEq),
	22: accepts(symLt, on('=', 23)),
	23: accepts(symLtEq),
	24: accepts(symGt, on('=', 25)),
	25: accepts(symGtEq),
	26: accepts(symNumberLiteral, on('.', 5), digits(26)),
	27: accepts(symNumberLiteral, digits(27)),
	28: accepts(symStringLiteral),
	29: accepts(symVariable, on('a', 33), word(35)),
	30: accepts(symVariable, on('i', 31), word(35)),
	31: accepts(symVariable, on('n', 34), word(35)),
	32: accepts(symVariable, on('r', 30), word(35)),
	33: accepts(symVariable, on('r', 13), word(35)),
	34: accepts(symVariable, on('t', 11), word(35)),
	35: accepts(symVariable, word(35)),
}

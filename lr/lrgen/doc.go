/*
Package lrgen compiles small context-free grammars into tabula languages.

lrgen is not an industrial-strength parser generator. It exists to produce
the table assets for fixtures and for the languages bundled with tabula,
and it is deliberately simple: SLR(1) tables with yacc-style precedence
resolution, and a lexer automaton per lex mode from a plain subset
construction.

Building a Grammar

Clients construct a grammar either with a builder

    b := lrgen.NewGrammarBuilder("G")
    b.Token("number", lrgen.Plus(lrgen.Class(lrgen.Range('0', '9'))))
    b.Left(1, "+")
    b.LHS("Sum").N("Sum").T("+").N("Product").End()
    b.LHS("Sum").N("Product").End()
    b.LHS("Product").T("number").End()
    g, err := b.Grammar()

or from Go-style EBNF (see golang.org/x/exp/ebnf), where quoted strings
denote literal tokens and names refer to productions or to tokens declared
with Token. Repetitions become auxiliary non-terminals, options and groups
are expanded in place.

Table Construction

    ga := lrgen.Analysis(g)             // FIRST and FOLLOW sets
    gen := lrgen.NewTableGenerator(ga)
    gen.CreateTables()                  // CFSM, GOTO and ACTION tables
    lang, err := gen.Language()         // packed lr.Language

Non-terminals starting with an underscore are hidden, i.e. they do not
appear in the visible syntax tree.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrgen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tabula.lrgen'.
func tracer() tracing.Trace {
	return tracing.Select("tabula.lrgen")
}

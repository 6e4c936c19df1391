/*
Package lr holds the grammar table model of tabula.

A Language is the compiled, read-only form of a grammar: a symbol table,
a lexer automaton and LR action tables. Languages are produced by a
generator (see package lrgen for a small one) and shipped as binary assets.
Parsers never interpret grammar rules; they only look up tables.

Parse Tables

Every parser state has a row of entries, one column per symbol. For terminal
columns the entry is an index into the list of action entries; for
non-terminal columns it is the target state of a goto. The value 0 means
"no entry" in both cases.

States below LargeStateCount are stored as dense rows. All other states are
stored in a compact sparse form, a block of groups where each group lists the
symbols sharing one value:

    groupCount, (value, symbolCount, symbol, symbol, …), …

The block of state s starts at SmallParseTableMap[s-LargeStateCount].
This is the layout tree-sitter uses, so compiled tree-sitter tables may be
transcribed verbatim.

State 0 is reserved for error recovery. It usually holds a Recover action
for every terminal, and its lex mode recognizes every token.

Assets

Languages are written with Language.WriteTo and loaded with Load. An asset
carries a format version and a fingerprint of the tables. Loading validates
the tables and reports inconsistencies as table errors; a language which
passed Load may be shared between any number of goroutines.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tabula.lr'.
func tracer() tracing.Trace {
	return tracing.Select("tabula.lr")
}

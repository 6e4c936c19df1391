/*
Package parser provides the LR automaton driver of tabula. Clients have to use
compiled tables (see package lr) for a language. The parser utilizes these
tables to create a concrete syntax tree for a given input, either provided as
a byte slice and lexed with the language's own lexer, or provided through a
scanner interface.

The driver performs shift, reduce and accept actions as dictated by the tables.
It never tries to resolve conflicts: if a table entry lists more than one
action, the first one is taken. Repetitions are built iteratively, with
flattened repetition nodes, so arbitrarily long lists neither deepen the
tree nor the stack.

Usage

	p, err := parser.NewParser(lang)          // lang is a validated *lr.Language
	t := p.Parse([]byte("print 1 + 2;"))
	fmt.Println(t)                             // (source_file (print_statement …))

After the source has changed, update the tree and re-parse:

	t.Edit(tree.NewEdit(start, removed, inserted))
	t = p.Reparse(newSource, t)

Subtrees which have not been touched by the edit will be re-used, keeping
their identity.

Error Recovery

Parsing never fails. If the tables have no action for the current token,
the parser first re-lexes the token with the tokens of the recovery state,
then tries to pop the stack down to a state which is able to continue with
the token, wrapping the popped nodes into an ERROR node. If that fails or has
already been tried at this input position, the token is skipped and
appended to an ERROR node. At the end of input, a parser which cannot
recover returns an ERROR root. Either way the result is a well-formed tree;
Tree.Errors lists the errors encountered.

Concurrency

A Parser holds the state of one parse at a time and must not be used
concurrently. Languages are read-only and may be shared between any number
of parsers.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tabula.parser'.
func tracer() tracing.Trace {
	return tracing.Select("tabula.parser")
}

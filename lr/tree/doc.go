/*
Package tree implements concrete syntax trees and their incremental re-use.

Trees are built bottom-up by a parser, using a Builder. Every node covers
a span of input bytes and owns its children exclusively. Nodes of hidden
and auxiliary grammar symbols are part of the physical tree, but clients
usually see the visible tree only: VisibleChildren, String, Cursor and
Render inline invisible nodes.

Incremental Parsing

Each node remembers how it was parsed: the parser state below it, the end
of all input the lexer examined while the node was completed, and the lex
state of the token following it. After the source text has been changed,
clients describe the change with an Edit and apply it to the old tree:

    t.Edit(tree.NewEdit(start, removedLen, insertedLen))

Edit shifts all positions behind the change and marks every node dirty
whose parse could have been influenced by the change. A parser is then able
to re-use all clean nodes (see package parser, Reparse), which keep their
identity in the new tree. An edited tree must not be used for anything else
than re-parsing, as re-used nodes move to the new tree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tabula.tree'.
func tracer() tracing.Trace {
	return tracing.Select("tabula.tree")
}

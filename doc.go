/*
Package tabula is a table-driven incremental parsing engine.

Tabula consumes compiled grammar tables (a symbol table, a lexer automaton
and LR action tables) and turns source text into concrete syntax trees.
Parsing never fails: syntax errors are recovered locally and surface as
ERROR nodes. After an edit, trees are re-parsed incrementally, re-using
every subtree the edit did not touch. Package structure is as follows:

■ lr: Package lr holds the grammar table model, together with asset encoding
and load-time validation.

■ lr/scanner: Package scanner implements the table-driven lexer.

■ lr/parser: Package parser implements the LR automaton driver and error recovery.

■ lr/tree: Package tree implements concrete syntax trees, edits and subtree reuse.

■ lr/lrgen: Package lrgen compiles small grammars into tables, mainly for tests
and the bundled languages.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tabula

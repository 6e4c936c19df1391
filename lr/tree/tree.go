package tree

import (
	"fmt"

	"github.com/npillmayer/tabula"
	"github.com/npillmayer/tabula/lr"
)

// Tree is a concrete syntax tree for a source text.
type Tree struct {
	root   *Node
	source []byte
	lang   *lr.Language
	reused int
	edited bool
}

// Root returns the root node of a tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Source returns the source text a tree has been parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// Language returns the language of a tree.
func (t *Tree) Language() *lr.Language {
	return t.lang
}

// ReusedNodes returns the number of subtrees taken over from an earlier tree.
func (t *Tree) ReusedNodes() int {
	return t.reused
}

// IsEdited is true after an edit has been applied to t.
func (t *Tree) IsEdited() bool {
	return t.edited
}

// HasError is true if the tree contains syntax or lexical errors.
func (t *Tree) HasError() bool {
	return t.root != nil && t.root.hasError
}

func (t *Tree) String() string {
	if t.root == nil {
		return "()"
	}
	return t.root.String()
}

// Errors lists the errors recorded in a tree, in input order. ERROR nodes
// are reported as syntax errors, tokens which could not be lexed as lexical
// errors.
func (t *Tree) Errors() []*tabula.Error {
	var errs []*tabula.Error
	var collect func(n *Node)
	collect = func(n *Node) {
		if !n.hasError {
			return
		}
		if n.IsError() {
			switch {
			case n.lexErr != tabula.NoError:
				errs = append(errs, tabula.NewError(tabula.LexicalError, n.lexErr, n.span,
					"%s %q", n.lexErr, n.Text(t.source)))
			case onlyLexErrors(n):
				// reported by the children
			case len(n.children) == 0:
				errs = append(errs, tabula.NewError(tabula.SyntaxError, tabula.IncompleteInput, n.span,
					"incomplete input"))
			default:
				errs = append(errs, tabula.NewError(tabula.SyntaxError, tabula.UnexpectedToken, n.span,
					"unexpected %s", describe(n.children[0], t.source)))
			}
		}
		for _, c := range n.children {
			collect(c)
		}
	}
	if t.root != nil {
		collect(t.root)
	}
	return errs
}

func onlyLexErrors(n *Node) bool {
	for _, c := range n.children {
		if c.lexErr == tabula.NoError {
			return false
		}
	}
	return len(n.children) > 0
}

func describe(n *Node, source []byte) string {
	if leaf := n.FirstLeaf(); leaf != nil && !leaf.IsError() {
		if leaf.IsNamed() {
			return fmt.Sprintf("%s %q", leaf.Name(), leaf.Text(source))
		}
		return fmt.Sprintf("%q", leaf.Name())
	}
	return n.Name()
}

// Walk returns a cursor positioned at the root of t.
func (t *Tree) Walk() *Cursor {
	return NewCursor(t.root)
}

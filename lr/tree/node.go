package tree

import (
	"strings"

	"github.com/npillmayer/tabula"
	"github.com/npillmayer/tabula/lr"
)

// Node is a node of a concrete syntax tree. Nodes are immutable for clients.
type Node struct {
	lang     *lr.Language
	symbol   lr.Symbol
	span     tabula.Span
	children []*Node
	hasError bool             // node is or contains an error
	lexErr   tabula.ErrorCode // for error tokens
	// parse information, used for incremental re-use
	state      lr.StateID // parser state below the node
	lookLex    uint16     // lex state of the lookahead which completed the node
	depEnd     uint64     // end of input examined until the node was completed
	fragile    bool       // produced by or bordering a non-reusable action
	dirty      bool       // touched by an edit
	generation uint32     // parse run which created the node
}

// Symbol returns the grammar symbol of a node.
func (n *Node) Symbol() lr.Symbol {
	return n.symbol
}

// Name returns the name of the grammar symbol of a node.
func (n *Node) Name() string {
	return n.lang.SymbolName(n.symbol)
}

// IsNamed is true for nodes of named symbols.
func (n *Node) IsNamed() bool {
	return n.lang.IsNamed(n.symbol)
}

// IsVisible is false for nodes of hidden and auxiliary symbols.
func (n *Node) IsVisible() bool {
	return n.lang.IsVisible(n.symbol)
}

// IsError is true for ERROR nodes and for tokens which could not be lexed.
func (n *Node) IsError() bool {
	return n.symbol == lr.ErrorSymbol
}

// HasError is true if n is or contains an error.
func (n *Node) HasError() bool {
	return n.hasError
}

// LexError returns the lexical error code of an error token.
func (n *Node) LexError() tabula.ErrorCode {
	return n.lexErr
}

// IsLeaf is true for nodes without children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Span returns the span of input bytes covered by n.
func (n *Node) Span() tabula.Span {
	return n.span
}

// StartByte returns the first input byte position of n.
func (n *Node) StartByte() uint64 {
	return n.span.From()
}

// EndByte returns the input byte position behind n.
func (n *Node) EndByte() uint64 {
	return n.span.To()
}

// Text returns the part of source covered by n.
func (n *Node) Text(source []byte) string {
	if n.span.To() > uint64(len(source)) || n.span.IsEmpty() {
		return ""
	}
	return string(source[n.span.From():n.span.To()])
}

// ChildCount returns the number of physical children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the physical child at index i, or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns a copy of the physical children of n.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// VisibleChildren returns the children of n as seen in the visible tree:
// children of invisible nodes are inlined.
func (n *Node) VisibleChildren() []*Node {
	var vis []*Node
	for _, c := range n.children {
		if c.IsVisible() {
			vis = append(vis, c)
		} else {
			vis = append(vis, c.VisibleChildren()...)
		}
	}
	return vis
}

// NamedChildren returns the visible children of n which are named.
func (n *Node) NamedChildren() []*Node {
	var named []*Node
	for _, c := range n.VisibleChildren() {
		if c.IsNamed() {
			named = append(named, c)
		}
	}
	return named
}

// ParseState returns the parser state a node has been pushed onto.
func (n *Node) ParseState() lr.StateID {
	return n.state
}

// LookaheadLexState returns the lex state in which the token following n
// has been lexed.
func (n *Node) LookaheadLexState() uint16 {
	return n.lookLex
}

// DependsUntil returns the end of all input which influenced n.
func (n *Node) DependsUntil() uint64 {
	return n.depEnd
}

// IsDirty is true if n has been invalidated by an edit.
func (n *Node) IsDirty() bool {
	return n.dirty
}

// FirstLeaf returns the first terminal leaf below n, or nil if there is none.
func (n *Node) FirstLeaf() *Node {
	if len(n.children) == 0 {
		if n.lang.IsTerminal(n.symbol) || n.IsError() {
			return n
		}
		return nil
	}
	for _, c := range n.children {
		if leaf := c.FirstLeaf(); leaf != nil {
			return leaf
		}
	}
	return nil
}

// String returns the S-expression of the named visible tree below n.
// Anonymous tokens are left out.
func (n *Node) String() string {
	var b strings.Builder
	n.sexpr(&b)
	return b.String()
}

func (n *Node) sexpr(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(n.Name())
	for _, c := range n.VisibleChildren() {
		if c.IsNamed() {
			b.WriteByte(' ')
			c.sexpr(b)
		}
	}
	b.WriteByte(')')
}

// Equal compares two trees structurally: symbols, spans, error status and
// children have to match. Parse information is not compared.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.symbol != b.symbol || a.span != b.span || a.hasError != b.hasError ||
		a.lexErr != b.lexErr || len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

// EqualVisible compares the visible trees below a and b by symbol names and
// spans. Use it for trees of different languages.
func EqualVisible(a, b *Node) bool {
	if a.Name() != b.Name() || a.span != b.span || a.hasError != b.hasError {
		return false
	}
	ac, bc := a.VisibleChildren(), b.VisibleChildren()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !EqualVisible(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

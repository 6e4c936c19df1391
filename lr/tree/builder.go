package tree

import (
	"sync/atomic"

	"github.com/npillmayer/tabula"
	"github.com/npillmayer/tabula/lr"
)

// ParseInfo is what a parser knows about a node when creating it.
type ParseInfo struct {
	State    lr.StateID // parser state below the node
	LexState uint16     // lex state of the lookahead token
	Examined uint64     // end of input examined by the lookahead token
	Fragile  bool       // action producing the node was not reusable
}

var generations uint32

// Builder creates the nodes of one parse run. Nodes created by a builder are
// "fresh" and may still be extended by repetition reductions of the same run.
// Nodes re-used from earlier trees are never modified.
type Builder struct {
	lang       *lr.Language
	generation uint32
	reused     int
}

// NewBuilder creates a builder for a new parse run.
func NewBuilder(lang *lr.Language) *Builder {
	return &Builder{
		lang:       lang,
		generation: atomic.AddUint32(&generations, 1),
	}
}

// Owns is true if n has been created by b.
func (b *Builder) Owns(n *Node) bool {
	return n.generation == b.generation
}

func (b *Builder) node(sym lr.Symbol, span tabula.Span, info ParseInfo) *Node {
	return &Node{
		lang:       b.lang,
		symbol:     sym,
		span:       span,
		state:      info.State,
		lookLex:    info.LexState,
		depEnd:     info.Examined,
		fragile:    info.Fragile,
		generation: b.generation,
	}
}

// Leaf creates a node for a shifted token.
func (b *Builder) Leaf(sym lr.Symbol, span tabula.Span, info ParseInfo) *Node {
	return b.node(sym, span, info)
}

// ErrorLeaf creates a node for a token which could not be lexed.
func (b *Builder) ErrorLeaf(code tabula.ErrorCode, span tabula.Span, info ParseInfo) *Node {
	n := b.node(lr.ErrorSymbol, span, info)
	n.hasError = true
	n.lexErr = code
	n.fragile = true
	return n
}

// Reduce creates the node for a reduction of children to sym. Empty
// reductions are located at position at.
//
// For repetition reductions, children of the same auxiliary symbol are
// flattened; if the first child is a fresh node of that symbol, it is
// extended in place and returned. Reductions of a hidden symbol to a single
// child return the child itself.
func (b *Builder) Reduce(sym lr.Symbol, children []*Node, info ParseInfo, repetition bool, at uint64) *Node {
	if repetition && len(children) > 0 {
		if acc := children[0]; acc.symbol == sym && b.Owns(acc) {
			acc.children = b.spliced(sym, acc.children, children[1:])
			acc.update(info)
			return acc
		}
		n := b.node(sym, tabula.Span{at, at}, info)
		n.children = b.spliced(sym, nil, children)
		n.update(info)
		return n
	}
	if len(children) == 1 && !b.lang.IsVisible(sym) && b.lang.IsNamed(sym) {
		return children[0]
	}
	n := b.node(sym, tabula.Span{at, at}, info)
	n.children = children
	n.update(info)
	return n
}

// spliced appends children to list, inlining children of nodes of the
// repetition symbol sym.
func (b *Builder) spliced(sym lr.Symbol, list []*Node, children []*Node) []*Node {
	for _, c := range children {
		if c.symbol == sym && len(c.children) > 0 {
			list = append(list, c.children...)
		} else {
			list = append(list, c)
		}
	}
	return list
}

// update recomputes the derived attributes of a node from its children.
func (n *Node) update(info ParseInfo) {
	if len(n.children) > 0 {
		n.span = tabula.Span{n.children[0].span.From(), n.children[len(n.children)-1].span.To()}
	}
	n.depEnd = info.Examined
	n.fragile = info.Fragile
	n.lookLex = info.LexState
	for _, c := range n.children {
		if c.hasError || c.IsError() {
			n.hasError = true
		}
		if c.depEnd > n.depEnd {
			n.depEnd = c.depEnd
		}
	}
	if len(n.children) > 0 {
		n.fragile = n.fragile || n.children[0].fragile || n.children[len(n.children)-1].fragile
	}
	if n.IsError() {
		n.hasError = true
	}
}

// Error creates an ERROR node wrapping children, located at position at if
// there are no children.
func (b *Builder) Error(children []*Node, at uint64) *Node {
	n := b.node(lr.ErrorSymbol, tabula.Span{at, at}, ParseInfo{Fragile: true})
	n.children = children
	n.update(ParseInfo{Fragile: true})
	return n
}

// AppendError adds a child to a fresh ERROR node. It reports false if errNode
// is not a fresh ERROR node.
func (b *Builder) AppendError(errNode *Node, child *Node) bool {
	if errNode.symbol != lr.ErrorSymbol || !b.Owns(errNode) || errNode.lexErr != tabula.NoError {
		return false
	}
	errNode.children = append(errNode.children, child)
	errNode.update(ParseInfo{Fragile: true, Examined: errNode.depEnd})
	return true
}

// Adopt returns a node like root, with additional children before and after
// the original ones. Fresh roots are extended in place.
func (b *Builder) Adopt(root *Node, before, after []*Node) *Node {
	if len(before) == 0 && len(after) == 0 {
		return root
	}
	children := make([]*Node, 0, len(before)+len(root.children)+len(after))
	children = append(children, before...)
	children = append(children, root.children...)
	children = append(children, after...)
	info := ParseInfo{State: root.state, LexState: root.lookLex, Examined: root.depEnd, Fragile: root.fragile}
	n := root
	if !b.Owns(root) {
		n = b.node(root.symbol, root.span, info)
	}
	n.children = children
	n.update(info)
	return n
}

// Reused records that n has been taken over from an earlier tree.
func (b *Builder) Reused(n *Node) {
	b.reused++
	tracer().Debugf("re-using %s %s", n.Name(), n.span)
}

// ReusedCount returns the number of nodes re-used so far.
func (b *Builder) ReusedCount() int {
	return b.reused
}

// Tree creates the tree for a root node.
func (b *Builder) Tree(root *Node, source []byte) *Tree {
	return &Tree{
		root:   root,
		source: source,
		lang:   b.lang,
		reused: b.reused,
	}
}

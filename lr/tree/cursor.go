package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"github.com/npillmayer/tabula"
)

// A Cursor is a movable mark within a syntax tree, intended for navigating over
// the visible nodes. It abstracts away hidden and auxiliary nodes, which are
// inlined into their parents.
type Cursor struct {
	startNode *Node
	stack     []level
}

// level is a list of visible siblings and the position of the cursor within it.
type level struct {
	siblings []*Node
	at       int
	dir      Direction
}

// NewCursor sets up a cursor at a given node.
func NewCursor(n *Node) *Cursor {
	if n == nil {
		return nil
	}
	return &Cursor{
		startNode: n,
		stack:     append(make([]level, 0, 32), level{siblings: []*Node{n}, dir: LtoR}),
	}
}

// Node returns the node the cursor is positioned at.
func (c *Cursor) Node() *Node {
	top := c.stack[len(c.stack)-1]
	return top.siblings[top.at]
}

// Depth returns the number of Down-moves from the start node to the current node.
func (c *Cursor) Depth() int {
	return len(c.stack) - 1
}

// Up moves the cursor up to the parent node of the current node, if any.
func (c *Cursor) Up() (*Node, bool) {
	if len(c.stack) == 1 {
		return c.Node(), false
	}
	c.stack = c.stack[:len(c.stack)-1]
	tracer().Debugf("UP Cursor @ %v", c.Node().Name())
	return c.Node(), true
}

// Down moves the cursor down to the first visible child of the curent node,
// if any. dir lets clients start at either the leftmost child (default) or
// the rightmost child.
func (c *Cursor) Down(dir Direction) (*Node, bool) {
	children := c.Node().VisibleChildren()
	if len(children) == 0 {
		return c.Node(), false
	}
	at := 0
	if dir == RtoL {
		at = len(children) - 1
	} else {
		dir = LtoR
	}
	c.stack = append(c.stack, level{siblings: children, at: at, dir: dir})
	tracer().Debugf("DOWN Cursor @ %v", c.Node().Name())
	return c.Node(), true
}

// Sibling moves the cursor to the next sibling of the current node, if any.
// The direction is the one given to the Down-move reaching the current level.
func (c *Cursor) Sibling() (*Node, bool) {
	top := &c.stack[len(c.stack)-1]
	next := top.at + int(top.dir)
	if len(c.stack) == 1 || next < 0 || next >= len(top.siblings) {
		return c.Node(), false
	}
	top.at = next
	tracer().Debugf("SIBLING Cursor @ %v", c.Node().Name())
	return c.Node(), true
}

// TopDown traverses a sub-tree top-down, applying Listener-methods for all nodes
// encountered. It returns a user-defined value, calculated by the listener.
func (c *Cursor) TopDown(listener Listener, dir Direction, breakmode Breakmode) interface{} {
	c.startNode = c.Node()
	tracer().Debugf("TopDown starting at node %v", c.startNode.Name())
	return c.traverseTopDown(listener, dir, breakmode, 0)
}

func (c *Cursor) traverseTopDown(listener Listener, dir Direction, breakmode Breakmode, lvl int) interface{} {
	node := c.Node()
	children := node.VisibleChildren()
	if len(children) == 0 {
		ctxt := makeCtxt(node.Span(), lvl, nil)
		return listener.Terminal(node, ctxt)
	}
	rhsNodes := make([]*RuleNode, len(children))
	for i, ch := range children {
		rhsNodes[i] = &RuleNode{Node: ch}
	}
	ctxt := makeCtxt(node.Span(), lvl, listener.MakeAttrs(node))
	doContinue := listener.EnterRule(node, rhsNodes, ctxt)
	if doContinue || breakmode == Continue { // listener signalled us to traverse children nodes
		i := 0
		if dir == RtoL {
			i = len(rhsNodes) - 1
		}
		if _, ok := c.Down(dir); ok {
			for ; ok; _, ok = c.Sibling() {
				rhsNodes[i].Value = c.traverseTopDown(listener, dir, breakmode, lvl+1)
				i += int(dir)
			}
			c.Up()
		}
	}
	return listener.ExitRule(node, rhsNodes, ctxt)
}

// Direction lets clients decide wether children nodes should be traversed left-to-right
// (default) or right-to-left.
type Direction int

// Children nodes may be traversed left-to-right (default) or right-to-left.
const (
	LtoR Direction = 1
	RtoL Direction = -1
)

// Breakmode is a client hint wether to stop traversing on break-signals or not.
type Breakmode int

// Setting Continue will always traverse a complete (sub-)tree. Break will skip
// traversing sub-tree as soon as an Enter-function signals a break.
const (
	Continue Breakmode = iota
	Break
)

// --- Listener --------------------------------------------------------------

// RuleNode is a visible child of a node during a tree walk, together with
// the value the listener computed for it.
type RuleNode struct {
	Node  *Node
	Value interface{} // user-defined value of a node
}

// Listener is a type for walking a syntax tree.
//
// Arguments are:
//
//     - *Node:       the node at the current position
//     - []*RuleNode: the visible children of the node
//     - RuleCtxt:    contextual information for the node
//
// EnterRule returns a boolean value indicating if the traversal should continue to
// the children of this node. ExitRule and Terminal may return user-defined values
// to be propagated upwards of the tree.
type Listener interface {
	EnterRule(*Node, []*RuleNode, RuleCtxt) bool
	ExitRule(*Node, []*RuleNode, RuleCtxt) interface{}
	Terminal(*Node, RuleCtxt) interface{}
	MakeAttrs(*Node) interface{}
}

// RuleCtxt is a context structure for Listeners.
type RuleCtxt struct {
	Span  tabula.Span // span of input bytes covered by this node
	Level int         // nesting level
	Attrs interface{} // client-defined attributes local to node
}

func makeCtxt(span tabula.Span, lvl int, attrs interface{}) RuleCtxt {
	return RuleCtxt{
		Span:  span,
		Level: lvl,
		Attrs: attrs,
	}
}

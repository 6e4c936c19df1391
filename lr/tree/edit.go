package tree

import "fmt"

// Edit describes a change of the source text: the bytes from StartByte to
// OldEndByte have been replaced by new text now ending at NewEndByte.
type Edit struct {
	StartByte  uint64
	OldEndByte uint64
	NewEndByte uint64
}

// NewEdit describes the replacement of removed bytes at position start by
// inserted bytes.
func NewEdit(start, removed, inserted uint64) Edit {
	return Edit{
		StartByte:  start,
		OldEndByte: start + removed,
		NewEndByte: start + inserted,
	}
}

func (e Edit) String() string {
	return fmt.Sprintf("edit[%d:%d→%d]", e.StartByte, e.OldEndByte, e.NewEndByte)
}

// shift maps a position of the old text to the new text. Positions inside
// the replaced range move to the end of the new text.
func (e Edit) shift(pos uint64) uint64 {
	switch {
	case pos >= e.OldEndByte:
		return pos - e.OldEndByte + e.NewEndByte
	case pos > e.StartByte:
		return e.NewEndByte
	}
	return pos
}

// touches is true if the edit changes any byte of [from, to), or inserts
// text strictly inside of it.
func (e Edit) touches(from, to uint64) bool {
	if e.OldEndByte > e.StartByte {
		return from < e.OldEndByte && e.StartByte < to
	}
	return from < e.StartByte && e.StartByte < to
}

// Edit applies an edit to t. Positions of all nodes are moved to the
// coordinates of the new text. Nodes are marked dirty if the edit changes
// any input they depend upon, including the input examined by the lexer
// when deciding where a node ends. Nodes produced by non-reusable actions
// are marked dirty if the edit is merely adjacent to them. Ancestors of dirty
// nodes are dirty as well.
func (t *Tree) Edit(e Edit) {
	if e.OldEndByte < e.StartByte {
		e.OldEndByte = e.StartByte
	}
	t.edited = true
	if t.root != nil {
		t.root.edit(e)
	}
	tracer().Debugf("applied %s", e)
}

func (n *Node) edit(e Edit) bool {
	from, to := n.span.From(), n.span.To()
	dirty := e.touches(from, n.depEnd)
	if n.fragile && e.StartByte <= to && e.OldEndByte >= from {
		dirty = true
	}
	for _, c := range n.children {
		if c.edit(e) {
			dirty = true
		}
	}
	n.span[0], n.span[1] = e.shift(from), e.shift(to)
	n.depEnd = e.shift(n.depEnd)
	if dirty {
		n.dirty = true
	}
	return n.dirty
}

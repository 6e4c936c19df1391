package tree

import "sort"

// ReuseIndex finds subtrees of an edited tree which may be taken over by a
// new parse.
//
// Candidates are clean, error-free, non-empty nodes of non-auxiliary
// non-terminals which lie completely inside the new text. Nodes of
// auxiliary repetition symbols are never candidates: they are extended in
// place while parsing. Nodes whose lookahead ran into an ERROR region of
// the old tree are left out as well: the new parse has to go through the
// same recovery steps, which start before the node is complete. Whether a candidate fits is decided by the parser,
// which compares the candidate's parse state and first token with its own.
type ReuseIndex struct {
	byStart map[uint64][]*Node
	size    int
}

// NewReuseIndex indexes the re-usable nodes of an edited tree. textLen is the
// length of the new text.
func NewReuseIndex(old *Tree, textLen uint64) *ReuseIndex {
	ri := &ReuseIndex{byStart: make(map[uint64][]*Node)}
	if old == nil || old.root == nil {
		return ri
	}
	errStarts := errorStarts(old.root)
	var collect func(n *Node)
	collect = func(n *Node) {
		if len(n.children) == 0 {
			return
		}
		if !n.dirty && !n.hasError && !n.IsError() && !n.lang.IsAuxiliary(n.symbol) &&
			!n.span.IsEmpty() && n.span.To() <= textLen &&
			!errorWithin(errStarts, n.span.To(), n.depEnd) {
			ri.byStart[n.span.From()] = append(ri.byStart[n.span.From()], n)
			ri.size++
		}
		for _, c := range n.children {
			collect(c)
		}
	}
	collect(old.root)
	tracer().Debugf("%d candidates for re-use", ri.size)
	return ri
}

// errorStarts collects the start positions of all ERROR nodes, ascending.
func errorStarts(root *Node) []uint64 {
	var starts []uint64
	var collect func(n *Node)
	collect = func(n *Node) {
		if n.IsError() {
			starts = append(starts, n.span.From())
		}
		if n.hasError || n.IsError() {
			for _, c := range n.children {
				collect(c)
			}
		}
	}
	collect(root)
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })
	return starts
}

// errorWithin is true if an ERROR node starts in [from, to].
func errorWithin(starts []uint64, from, to uint64) bool {
	i := sort.Search(len(starts), func(i int) bool { return starts[i] >= from })
	return i < len(starts) && starts[i] <= to
}

// Candidates returns the candidates starting at position pos, outermost first.
func (ri *ReuseIndex) Candidates(pos uint64) []*Node {
	if ri == nil {
		return nil
	}
	return ri.byStart[pos]
}

// Size returns the number of candidates.
func (ri *ReuseIndex) Size() int {
	if ri == nil {
		return 0
	}
	return ri.size
}

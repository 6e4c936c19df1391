package tree

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Render renders the visible tree of t for debugging, one node per line.
// Anonymous tokens are shown with their text.
func Render(t *Tree) (string, error) {
	if t.root == nil {
		return "", nil
	}
	var ll pterm.LeveledList
	var collect func(n *Node, lvl int)
	collect = func(n *Node, lvl int) {
		ll = append(ll, pterm.LeveledListItem{Level: lvl, Text: label(n, t.source)})
		for _, c := range n.VisibleChildren() {
			collect(c, lvl+1)
		}
	}
	collect(t.root, 0)
	root := pterm.NewTreeFromLeveledList(ll)
	return pterm.DefaultTree.WithRoot(root).Srender()
}

func label(n *Node, source []byte) string {
	switch {
	case n.IsError() && n.IsLeaf():
		return fmt.Sprintf("ERROR %s %q", n.span, n.Text(source))
	case n.IsLeaf() && !n.IsNamed():
		return fmt.Sprintf("%q %s", n.Name(), n.span)
	case n.IsLeaf():
		return fmt.Sprintf("%s %s %q", n.Name(), n.span, n.Text(source))
	}
	return fmt.Sprintf("%s %s", n.Name(), n.span)
}

package doctree

import (
	"fmt"
	"strings"
)

// Action tells VisitParents how to proceed after visiting a node.
type Action int

const (
	Continue Action = iota // Descend into the node's children.
	Skip                   // Do not descend into the node's children.
	Exit                   // Stop the walk.
)

// VisitFunc is called for every element. ancestors runs from the root to the
// element's parent; it is reused between calls and must be copied to be kept.
type VisitFunc func(el *Node, ancestors []*Node) Action

// VisitParents walks the tree depth-first, top-down, calling visit for each
// element node.
//
// A visitor may replace the visited element, or its parent, in the parent's
// children. Nodes spliced in that way are stepped over and never visited.
func VisitParents(root *Node, visit VisitFunc) {
	var stack []*Node
	var walk func(n *Node) Action
	walk = func(n *Node) Action {
		if n.Type == ElementNode {
			switch visit(n, stack) {
			case Skip:
				return Continue
			case Exit:
				return Exit
			}
		}

		stack = append(stack, n)
		for i := 0; i < len(n.Children); {
			child := n.Children[i]
			before := len(n.Children)
			if walk(child) == Exit {
				return Exit
			}
			if i < len(n.Children) && n.Children[i] == child {
				i++
				continue
			}
			// child was replaced: jump over whatever took its place.
			i += len(n.Children) - before + 1
		}
		stack = stack[:len(stack)-1]
		return Continue
	}
	walk(root)
}

// Path describes where el sits in the tree as an element path, e.g.
// "/html[1]/body[1]/p[2]/span[1]". Indexes count same-tag element siblings,
// starting at 1.
func Path(ancestors []*Node, el *Node) string {
	chain := make([]*Node, 0, len(ancestors)+1)
	chain = append(chain, ancestors...)
	chain = append(chain, el)

	var b strings.Builder
	for i, n := range chain {
		if n.Type != ElementNode {
			continue
		}
		pos := 1
		if i > 0 {
			for _, sib := range chain[i-1].Children {
				if sib == n {
					break
				}
				if sib.Type == ElementNode && sib.Tag == n.Tag {
					pos++
				}
			}
		}
		fmt.Fprintf(&b, "/%s[%d]", n.Tag, pos)
	}
	return b.String()
}

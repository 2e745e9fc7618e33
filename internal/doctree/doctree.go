package doctree

import (
	"slices"
	"strings"
)

// NodeType identifies the kind of a Node.
type NodeType uint8

const (
	RootNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
	DoctypeNode
)

// ClassNameProp is the property key holding an element's class list.
const ClassNameProp = "className"

// Node is a node in a mutable, ordered document tree.
//
// Nodes carry no parent pointer. Code that needs a node's parent gets it from
// the ancestor chain passed by VisitParents.
type Node struct {
	Type      NodeType
	Tag       string         // Element tag name, lower-case
	Namespace string         // "" for HTML, "math" or "svg" for foreign content
	Props     map[string]any // Element attributes; ClassNameProp holds a []string
	Children  []*Node
	Value     string // Text, comment or doctype content
}

// NewRoot returns a root node holding children.
func NewRoot(children ...*Node) *Node {
	return &Node{Type: RootNode, Children: children}
}

// NewElement returns an HTML element node.
func NewElement(tag string, props map[string]any, children ...*Node) *Node {
	if props == nil {
		props = map[string]any{}
	}
	return &Node{Type: ElementNode, Tag: tag, Props: props, Children: children}
}

// NewText returns a text node.
func NewText(value string) *Node {
	return &Node{Type: TextNode, Value: value}
}

// IsElement reports whether n is an element with the given tag.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Type == ElementNode && n.Tag == tag
}

// IndexOf returns the position of child in n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// Replace substitutes old with nodes, in order, at old's position.
// It reports whether old was a child of n.
func (n *Node) Replace(old *Node, nodes ...*Node) bool {
	i := n.IndexOf(old)
	if i < 0 {
		return false
	}
	n.Children = slices.Replace(n.Children, i, i+1, nodes...)
	return true
}

// ClassList returns the class tokens of an element. Anything other than a
// list of strings (absent, a plain string, other types) yields an empty list.
func ClassList(n *Node) []string {
	if n == nil || n.Props == nil {
		return nil
	}
	switch v := n.Props[ClassNameProp].(type) {
	case []string:
		return v
	case []any:
		classes := make([]string, 0, len(v))
		for _, c := range v {
			if s, ok := c.(string); ok {
				classes = append(classes, s)
			}
		}
		return classes
	}
	return nil
}

// HasClass reports whether n's class list contains class.
func HasClass(n *Node, class string) bool {
	return slices.Contains(ClassList(n), class)
}

// TextContent concatenates every descendant text node of n in document
// order. Whitespace is kept exactly as it appears in the tree.
func TextContent(n *Node) string {
	var buf strings.Builder
	var extract func(*Node)
	extract = func(n *Node) {
		if n.Type == TextNode {
			buf.WriteString(n.Value)
			return
		}
		for _, c := range n.Children {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

// Clone returns a deep copy of n.
func Clone(n *Node) *Node {
	c := &Node{Type: n.Type, Tag: n.Tag, Namespace: n.Namespace, Value: n.Value}
	if n.Props != nil {
		c.Props = make(map[string]any, len(n.Props))
		for k, v := range n.Props {
			if list, ok := v.([]string); ok {
				v = slices.Clone(list)
			}
			c.Props[k] = v
		}
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = Clone(child)
		}
	}
	return c
}

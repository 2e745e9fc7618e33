package doctree

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return FromHTML(doc), nil
}

// ParseFragment parses markup as a standalone fragment in a <body> context
// and returns its top-level nodes.
func ParseFragment(markup string) ([]*Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if c := FromHTML(n); c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

// ParseFragmentRoot parses markup as a fragment and wraps the result in a
// root node.
func ParseFragmentRoot(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	nodes, err := ParseFragment(string(data))
	if err != nil {
		return nil, err
	}
	return NewRoot(nodes...), nil
}

// FromHTML converts an x/net/html node and its descendants.
func FromHTML(n *html.Node) *Node {
	var out *Node
	switch n.Type {
	case html.DocumentNode:
		out = &Node{Type: RootNode}
	case html.ElementNode:
		out = &Node{Type: ElementNode, Tag: n.Data, Namespace: n.Namespace, Props: attrsToProps(n.Attr)}
	case html.TextNode:
		return &Node{Type: TextNode, Value: n.Data}
	case html.CommentNode:
		return &Node{Type: CommentNode, Value: n.Data}
	case html.DoctypeNode:
		return &Node{Type: DoctypeNode, Value: n.Data, Props: attrsToProps(n.Attr)}
	default:
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := FromHTML(c); child != nil {
			out.Children = append(out.Children, child)
		}
	}
	return out
}

// ToHTML converts n and its descendants into x/net/html nodes.
func ToHTML(n *Node) *html.Node {
	var out *html.Node
	switch n.Type {
	case RootNode:
		out = &html.Node{Type: html.DocumentNode}
	case ElementNode:
		out = &html.Node{Type: html.ElementNode, Data: n.Tag, Namespace: n.Namespace, Attr: propsToAttrs(n.Props)}
		if n.Namespace == "" {
			out.DataAtom = atom.Lookup([]byte(n.Tag))
		}
	case TextNode:
		return &html.Node{Type: html.TextNode, Data: n.Value}
	case CommentNode:
		return &html.Node{Type: html.CommentNode, Data: n.Value}
	case DoctypeNode:
		return &html.Node{Type: html.DoctypeNode, Data: n.Value, Attr: propsToAttrs(n.Props)}
	}
	for _, c := range n.Children {
		out.AppendChild(ToHTML(c))
	}
	return out
}

// Render serializes n as HTML. A root node renders as its children.
func Render(w io.Writer, n *Node) error {
	if n.Type != RootNode {
		return html.Render(w, ToHTML(n))
	}
	for _, c := range n.Children {
		if err := html.Render(w, ToHTML(c)); err != nil {
			return err
		}
	}
	return nil
}

// RenderString is Render into a string.
func RenderString(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func attrsToProps(attrs []html.Attribute) map[string]any {
	props := make(map[string]any, len(attrs))
	for _, a := range attrs {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		if key == "class" {
			props[ClassNameProp] = strings.Fields(a.Val)
			continue
		}
		props[key] = a.Val
	}
	return props
}

func propsToAttrs(props map[string]any) []html.Attribute {
	if len(props) == 0 {
		return nil
	}
	attrs := make([]html.Attribute, 0, len(props))
	for key, v := range props {
		var val string
		switch v := v.(type) {
		case string:
			val = v
		case []string:
			val = strings.Join(v, " ")
		case []any:
			parts := make([]string, 0, len(v))
			for _, p := range v {
				parts = append(parts, fmt.Sprint(p))
			}
			val = strings.Join(parts, " ")
		case bool:
			if !v {
				continue
			}
		case nil:
			continue
		default:
			val = fmt.Sprint(v)
		}
		if key == ClassNameProp {
			key = "class"
		}
		attrs = append(attrs, html.Attribute{Key: key, Val: val})
	}
	// Props are a map; sort so output is stable.
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })
	return attrs
}
